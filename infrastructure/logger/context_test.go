package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalabar794/landgenai/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_EmptyContextFallsBack(t *testing.T) {
	t.Parallel()

	fallback := logger.FromContext(context.Background())
	require.NotNil(t, fallback)

	// Fallback is warn-level; lower levels are filtered but must not panic.
	fallback.Debug("debug message")
	fallback.Warn("warn message", logger.String("key", "value"))
}

func TestFromContextOr(t *testing.T) {
	t.Parallel()

	def := logger.NewNop()
	assert.Same(t, def, logger.FromContextOr(context.Background(), def))

	stored := logger.Must(logger.Config{Level: "error", OutputPaths: []string{"stderr"}})
	ctx := logger.WithContext(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOr(ctx, def))
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "verbose", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.NotNil(t, l.With(logger.String("service", "landgenai")))
}

func TestNop_DiscardsAndSyncs(t *testing.T) {
	t.Parallel()

	l := logger.NewNop()
	l.Info("ignored", logger.Int("n", 1))
	assert.Same(t, l, l.With(logger.Bool("x", true)))
	assert.NoError(t, l.Sync())
}
