package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	From(context.Background()).Info("global", Op("test"))

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "test", logs.All()[0].ContextMap()["op"])
}

func TestFromReturnsScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core).With(RequestID("01HX"))

	ctx := ToContext(context.Background(), scoped)
	From(ctx).Info("scoped", UserID("u1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "01HX", fields["request_id"])
	require.Equal(t, "u1", fields["user_id"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	require.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}
