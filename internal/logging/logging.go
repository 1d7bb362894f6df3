// Package logging constructs the shared structured logger. Logs always go to
// stderr in the server binary because stdout carries the MCP protocol stream.
package logging

import (
	"io"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New builds a logger for the given level ("DEBUG", "INFO", "WARN", "ERROR")
// and format ("text" or "json").
func New(out io.Writer, level, format string) *charmlog.Logger {
	logger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		Level:           parseLevel(level),
	})
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(charmlog.JSONFormatter)
	} else {
		logger.SetFormatter(charmlog.TextFormatter)
	}
	return logger
}

// Nop returns a logger that discards everything, for use in tests and as the
// default when no logger is injected.
func Nop() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{})
}

func parseLevel(level string) charmlog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return charmlog.DebugLevel
	case "WARN":
		return charmlog.WarnLevel
	case "ERROR":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
