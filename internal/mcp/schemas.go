package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// readFileTool returns the tool definition for read_file
func readFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "read_file",
		Description: "Read a file using the size-appropriate strategy (buffered, memory-mapped, or streaming)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the file to read",
				},
				"as_lines": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, return content split on universal newline boundaries",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// writeFileTool returns the tool definition for write_file
func writeFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "write_file",
		Description: "Write UTF-8 content to a file, truncating, appending, or atomically replacing it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the file to write",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "UTF-8 content to write",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Write mode: truncate (default), append, or atomic (temp file + rename)",
					"enum":        []string{"truncate", "append", "atomic"},
					"default":     "truncate",
				},
			},
			Required: []string{"path", "content"},
		},
	}
}

// chunkTextTool returns the tool definition for chunk_text
func chunkTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_text",
		Description: "Split text into chunks that never break UTF-8 codepoints, with optional overlap",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Text to chunk",
				},
				"max_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum chunk size in bytes",
					"minimum":     1,
				},
				"overlap_size": map[string]interface{}{
					"type":        "integer",
					"description": "Overlap between consecutive chunks in bytes (must be smaller than max_chunk_size)",
					"minimum":     0,
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Boundary detection strategy",
					"enum":        []string{"fixed_size", "sentence_boundary", "paragraph_boundary"},
					"default":     "sentence_boundary",
				},
			},
			Required: []string{"content"},
		},
	}
}

// ingestDirectoryTool returns the tool definition for ingest_directory
func ingestDirectoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ingest_directory",
		Description: "Chunk and index every matching file under a directory",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory root",
				},
				"patterns": map[string]interface{}{
					"type":        "array",
					"description": "Glob patterns to include (e.g. '**/*.md'); all regular files when omitted",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-ingest files whose content hash is unchanged",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// listFilesTool returns the tool definition for list_files
func listFilesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_files",
		Description: "List regular files under a directory, filtered by glob patterns",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory root",
				},
				"patterns": map[string]interface{}{
					"type":        "array",
					"description": "Glob patterns to include; all regular files when omitted",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report document and chunk counts in the index",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
