package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMethodCall_NoTransaction(t *testing.T) {
	tracer := TraceMethodCall(context.Background(), "metrics", "Test")
	assert.Nil(t, tracer)

	assert.NotPanics(t, func() {
		tracer.AddAttribute("key", "value")
		tracer.AddAttributes(map[string]interface{}{"key": 1})
		tracer.OnError(errors.New("failure"))
		tracer.End()
	})
}

func TestRecord_NoApplication(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordCount(ctx, "count", 1)
		RecordDuration(ctx, "duration", time.Second)
		RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})
	})
}

func TestNewContext(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("escrow-auction-test"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	ctx := NewContext(context.Background(), app)
	actual, ok := ctx.Value(NewRelicContextKey{}).(*newrelic.Application)
	require.True(t, ok)
	assert.Equal(t, app, actual)

	assert.NotPanics(t, func() {
		RecordCount(ctx, "count", 1)
		RecordDuration(ctx, "duration", time.Second)
		RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})
	})
}
