package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Setup(ctx, "recipe-book-api-test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	spanCtx, span := otel.Tracer("telemetry_test").Start(ctx, "test")
	require.True(t, span.SpanContext().IsValid())
	require.True(t, span.SpanContext().HasTraceID())
	span.End()
	require.NotNil(t, spanCtx)

	require.NoError(t, shutdown(ctx))
}
