package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCtx_PrefersAttachedLogger(t *testing.T) {
	base := zap.NewNop().Sugar()
	attached := zap.NewExample().Sugar()

	ctx := WithLogger(context.Background(), attached)
	require.Same(t, attached, FromCtx(ctx, base))
}

func TestFromCtx_EnrichesWithTraceID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	ctx := WithTraceID(context.Background(), "trace-1")
	FromCtx(ctx, base).Infow("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "trace-1", logs.All()[0].ContextMap()["trace_id"])
}

func TestFromCtx_FallsBackToBase(t *testing.T) {
	base := zap.NewNop().Sugar()
	require.Same(t, base, FromCtx(context.Background(), base))
	require.Same(t, base, FromGin(nil, base))
}
