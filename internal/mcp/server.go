package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fileseg/fileseg/internal/chunker"
	"github.com/fileseg/fileseg/internal/config"
	"github.com/fileseg/fileseg/internal/logging"
	"github.com/fileseg/fileseg/internal/pipeline"
	"github.com/fileseg/fileseg/internal/security"
	"github.com/fileseg/fileseg/internal/storage"
	"github.com/fileseg/fileseg/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "fileseg"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp        *server.MCPServer
	storage    storage.Storage
	pipeline   *pipeline.Pipeline
	policy     *security.Config
	thresholds types.Thresholds
	chunkCfg   types.ChunkingConfig
	log        *charmlog.Logger
}

// NewServer creates a new MCP server instance from the loaded configuration.
func NewServer(cfg *config.Config, logger *charmlog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	chunkCfg := cfg.ChunkingDefaults()
	engine, err := chunker.NewEngine(chunkCfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to build chunking engine: %w", err)
	}

	policy := cfg.SecurityPolicy()
	pipe := pipeline.New(engine, store, policy).
		WithThresholds(cfg.Thresholds()).
		WithLogger(logger)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:        mcpServer,
		storage:    store,
		pipeline:   pipe,
		policy:     policy,
		thresholds: cfg.Thresholds(),
		chunkCfg:   chunkCfg,
		log:        logger,
	}

	if err := s.registerTools(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.log.Info("serving MCP on stdio", "name", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(readFileTool(), s.handleReadFile)
	s.mcp.AddTool(writeFileTool(), s.handleWriteFile)
	s.mcp.AddTool(chunkTextTool(), s.handleChunkText)
	s.mcp.AddTool(ingestDirectoryTool(), s.handleIngestDirectory)
	s.mcp.AddTool(listFilesTool(), s.handleListFiles)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	return nil
}
