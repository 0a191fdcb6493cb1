package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(true, "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = New(false, "loud")
	assert.Error(t, err)
}

func TestSetDefault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetDefault(zap.New(core))
	t.Cleanup(func() { SetDefault(zap.NewNop()) })

	Info("recipe saved", zap.String("recipeName", "Banana Bread"))
	Warn("slow query")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "recipe saved", entry.Message)
	assert.Equal(t, "Banana Bread", entry.ContextMap()["recipeName"])
}
