package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"festdraft/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, "roster.list_teams", tracer.String("search", "axis"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int("total", 4))
	span.AddEvent("page.clamped", tracer.Bool("reset", true))
	span.End(errors.New("ignored"))
}

func TestOTelTracer_WithInjectedTracer(t *testing.T) {
	tr := tracer.NewOTel("", tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), "roster.create_team",
		tracer.String("name", "Axis"),
		tracer.Int64("team_id", 42),
		tracer.Bool("admin", true),
		tracer.Attribute{Key: "unsupported", Value: struct{}{}},
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Int("count", 1))
	span.AddEvent("created")
	span.End(nil)
}

func TestOTelTracer_GlobalProvider(t *testing.T) {
	tr := tracer.NewOTel("festdraft/roster")
	_, span := tr.Start(context.Background(), "roster.start_auction")
	span.End(errors.New("access code mismatch"))
}
