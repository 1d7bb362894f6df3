package logging

import (
	"bytes"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN", "text")

	logger.Info("suppressed")
	logger.Warn("emitted", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
	assert.Contains(t, out, "value")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Info("hello", "k", "v")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, charmlog.InfoLevel, parseLevel("chatty"))
	assert.Equal(t, charmlog.DebugLevel, parseLevel("debug"))
}

func TestNop_DiscardsOutput(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("dropped") })
}
