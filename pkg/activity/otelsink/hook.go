// Package otelsink records jag activity as events on the active OpenTelemetry
// span.
package otelsink

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-jag/pkg/activity"
)

// Hook adds a span event per activity event. Events emitted outside a
// recording span are dropped.
type Hook struct{}

// Notify implements activity.ActivityHook.
func (Hook) Notify(ctx context.Context, event activity.Event) error {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}
	attrs := []attribute.KeyValue{
		attribute.String("jag.object_type", event.ObjectType),
		attribute.String("jag.object_id", event.ObjectID),
	}
	if event.Channel != "" {
		attrs = append(attrs, attribute.String("jag.channel", event.Channel))
	}
	for key, value := range event.Metadata {
		attrs = append(attrs, metadataAttribute("jag."+key, value))
	}
	span.AddEvent(event.Verb, trace.WithAttributes(attrs...), trace.WithTimestamp(event.OccurredAt))
	return nil
}

func metadataAttribute(key string, value any) attribute.KeyValue {
	switch typed := value.(type) {
	case string:
		return attribute.String(key, typed)
	case int:
		return attribute.Int(key, typed)
	case int64:
		return attribute.Int64(key, typed)
	case bool:
		return attribute.Bool(key, typed)
	case float64:
		return attribute.Float64(key, typed)
	case []string:
		return attribute.StringSlice(key, typed)
	default:
		return attribute.String(key, fmt.Sprint(typed))
	}
}
