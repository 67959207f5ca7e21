package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context still yields a usable logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))
	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextCarriage verifies ToContext/WithName/WithKV attach a scoped logger
// that subsequent helpers pick up.
func TestContextCarriage(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	scoped := zap.New(core).Sugar()

	ctx := ToContext(context.Background(), scoped)
	require.Same(t, scoped, FromContext(ctx))

	ctx = WithName(ctx, "panel")
	ctx = WithKV(ctx, "sensor", "front door")
	InfoKV(ctx, "sensor tripped", "active", true)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "sensor tripped", entries[0].Message)
	require.Equal(t, "panel", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	require.Equal(t, "front door", fields["sensor"])
	require.Equal(t, true, fields["active"])
}
