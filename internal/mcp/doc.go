// Package mcp exposes the file I/O and chunking surface as an MCP server
// speaking JSON-RPC over stdio.
//
// # Tools
//
// The server registers six tools:
//
//   - read_file: read a file through the size-aware I/O layer
//   - write_file: write or append file content, optionally atomically
//   - chunk_text: split text into boundary-safe chunks
//   - ingest_directory: discover, chunk, and index every matching file
//   - list_files: enumerate files under a directory by glob patterns
//   - get_status: report chunk index statistics
//
// # Errors
//
// Handlers validate arguments before touching the filesystem and return
// MCPError values with JSON-RPC error codes. Policy violations (path outside
// the configured base directory, denied patterns) map to ErrorCodeAccessDenied
// rather than the generic internal error.
//
// # Transport
//
// Only stdio transport is supported. Stdout carries the protocol stream, so
// all logging must go to stderr.
package mcp
