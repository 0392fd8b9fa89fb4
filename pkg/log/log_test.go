package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupConfiguresNewLoggers(t *testing.T) {
	restoreDefault(t)
	ctx := context.Background()

	Setup("error")
	quiet := WithModule("client")
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelError))

	Setup("debug")
	verbose := WithModule("client")
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))

	// A logger built before Setup keeps the handler it was created with,
	// which is why callers must run Setup before WithModule.
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))
}

func TestSetupUnknownLevelFallsBackToInfo(t *testing.T) {
	restoreDefault(t)
	ctx := context.Background()

	Setup("bogus")
	logger := WithModule("client")
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
}
