package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fileseg/fileseg/internal/chunker"
	"github.com/fileseg/fileseg/internal/fileio"
	"github.com/fileseg/fileseg/internal/pipeline"
	"github.com/fileseg/fileseg/internal/scanner"
	"github.com/fileseg/fileseg/internal/storage"
	"github.com/fileseg/fileseg/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeAccessDenied       = -32001 // Path rejected by the security policy
	ErrorCodeNotFound           = -32002 // File or directory does not exist
	ErrorCodeEncodingError      = -32003 // Content is not valid UTF-8
	ErrorCodeIngestInProgress   = -32004 // Another ingestion is already running
	ErrorCodeInvalidChunkConfig = -32005 // Chunking parameters are invalid
)

// handleReadFile handles the read_file tool invocation
func (s *Server) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, missingParamError("path")
	}

	validated, err := s.policy.ValidatePath(path)
	if err != nil {
		return nil, mapDomainError(err)
	}

	asLines := getBoolDefault(args, "as_lines", false)

	reader, err := fileio.OpenReaderWith(validated, s.thresholds)
	if err != nil {
		return nil, mapDomainError(err)
	}
	defer func() { _ = reader.Close() }()

	size, class := reader.Info()
	response := map[string]interface{}{
		"path":       validated,
		"size_bytes": size,
		"size_class": string(class),
	}

	if asLines {
		lines, err := reader.ReadLines()
		if err != nil {
			return nil, mapDomainError(err)
		}
		response["lines"] = lines
	} else {
		content, err := reader.ReadString()
		if err != nil {
			return nil, mapDomainError(err)
		}
		response["content"] = content
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleWriteFile handles the write_file tool invocation
func (s *Server) handleWriteFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, missingParamError("path")
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, missingParamError("content")
	}

	mode := getStringDefault(args, "mode", "truncate")
	if mode != "truncate" && mode != "append" && mode != "atomic" {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid mode", map[string]interface{}{
			"param":   "mode",
			"value":   mode,
			"allowed": []string{"truncate", "append", "atomic"},
		})
	}

	validated, err := s.policy.ValidateWritePath(path)
	if err != nil {
		return nil, mapDomainError(err)
	}

	if err := s.writeContent(validated, content, mode); err != nil {
		return nil, mapDomainError(err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"path":          validated,
		"bytes_written": len(content),
		"mode":          mode,
	})), nil
}

func (s *Server) writeContent(path, content, mode string) error {
	switch mode {
	case "atomic":
		w, err := fileio.NewAtomicWriter(path)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		if _, err := w.WriteString(content); err != nil {
			return err
		}
		return w.Commit()
	case "append":
		writer, err := fileio.OpenWriter(path)
		if err != nil {
			return err
		}
		return writer.AppendString(content)
	default:
		writer, err := fileio.OpenWriter(path)
		if err != nil {
			return err
		}
		return writer.WriteString(content)
	}
}

// handleChunkText handles the chunk_text tool invocation
func (s *Server) handleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content, ok := args["content"].(string)
	if !ok {
		return nil, missingParamError("content")
	}

	cfg := s.chunkCfg
	cfg.MaxChunkSize = getIntDefault(args, "max_chunk_size", cfg.MaxChunkSize)
	cfg.OverlapSize = getIntDefault(args, "overlap_size", cfg.OverlapSize)
	if strategy := getStringDefault(args, "strategy", ""); strategy != "" {
		cfg.Strategy = types.ChunkStrategy(strategy)
	}

	engine, err := chunker.NewEngine(cfg)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidChunkConfig, "invalid chunking parameters", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chunks, err := engine.Chunk(content)
	if err != nil {
		return nil, mapDomainError(err)
	}

	results := make([]map[string]interface{}, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, map[string]interface{}{
			"id":           c.ID,
			"content":      c.Content,
			"chunk_index":  c.Metadata.ChunkIndex,
			"total_chunks": c.Metadata.TotalChunks,
			"byte_range":   []int{c.Metadata.ByteRange.Start, c.Metadata.ByteRange.End},
			"char_range":   []int{c.Metadata.CharRange.Start, c.Metadata.CharRange.End},
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"strategy":     string(cfg.Strategy),
		"chunk_count":  len(chunks),
		"chunks":       results,
		"overlap_size": cfg.OverlapSize,
	})), nil
}

// handleIngestDirectory handles the ingest_directory tool invocation
func (s *Server) handleIngestDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, missingParamError("path")
	}

	cfg := &pipeline.Config{
		Patterns: getStringSlice(args, "patterns"),
		Force:    getBoolDefault(args, "force", false),
	}

	stats, err := s.pipeline.IngestDirectory(ctx, path, cfg)
	if err != nil {
		if errors.Is(err, types.ErrConcurrency) {
			return nil, newMCPError(ErrorCodeIngestInProgress, "ingestion already in progress", nil)
		}
		return nil, mapDomainError(err)
	}

	response := map[string]interface{}{
		"files_ingested": stats.FilesIngested,
		"files_skipped":  stats.FilesSkipped,
		"files_failed":   stats.FilesFailed,
		"chunks_created": stats.ChunksCreated,
		"duration_ms":    stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListFiles handles the list_files tool invocation
func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, missingParamError("path")
	}

	sc, err := scanner.NewDirectoryScanner(getStringSlice(args, "patterns")...)
	if err != nil {
		return nil, mapDomainError(err)
	}

	files, err := sc.Scan(path)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"path":  path,
		"count": len(files),
		"files": files,
	})), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.storage.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"document_count":      status.DocumentCount,
		"chunk_count":         status.ChunkCount,
		"total_bytes":         status.TotalBytes,
		"database_accessible": status.DatabaseAccessible,
		"build_mode":          storage.BuildMode,
	}
	if !status.LastIngestedAt.IsZero() {
		response["last_ingested_at"] = status.LastIngestedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func missingParamError(param string) error {
	return newMCPError(ErrorCodeInvalidParams, param+" parameter is required", map[string]interface{}{
		"param":  param,
		"reason": "missing or empty",
	})
}

// mapDomainError translates typed domain errors into MCP error codes.
func mapDomainError(err error) error {
	var secErr *types.SecurityError
	var encErr *types.EncodingError
	var patErr *types.PatternError

	switch {
	case errors.As(err, &secErr):
		return newMCPError(ErrorCodeAccessDenied, "access denied", map[string]interface{}{
			"path":   secErr.Path,
			"reason": secErr.Reason,
		})
	case errors.Is(err, types.ErrPermissionDenied):
		return newMCPError(ErrorCodeAccessDenied, "access denied", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrNotAFile), errors.Is(err, types.ErrInvalidPath):
		return newMCPError(ErrorCodeNotFound, "path not usable", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.As(err, &encErr):
		return newMCPError(ErrorCodeEncodingError, "content is not valid UTF-8", map[string]interface{}{
			"path": encErr.Path,
		})
	case errors.As(err, &patErr):
		return newMCPError(ErrorCodeInvalidParams, "invalid glob pattern", map[string]interface{}{
			"pattern": patErr.Pattern,
			"reason":  patErr.Reason,
		})
	case errors.Is(err, types.ErrUnsupportedStrategy):
		return newMCPError(ErrorCodeInvalidChunkConfig, "unsupported chunking strategy", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, "operation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter
func getStringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
