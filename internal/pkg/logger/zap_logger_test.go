package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromCore(core)

	l.Info("WIZARD", "section submitted", map[string]interface{}{"section": "context"})
	l.Debug("WIZARD", "no details", nil)
	l.Error("REWRITE", "backend failed", map[string]interface{}{"error": errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "section submitted", entries[0].Message)
	assert.Equal(t, "WIZARD", first["module"])
	assert.Equal(t, map[string]interface{}{"section": "context"}, first["details"])

	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])

	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap(), "error_ref")
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Warn("X", "ignored", nil)
		_ = l.Sync()
	})
}
