// Package zapsink writes jag activity and evaluator events to a zap logger.
package zapsink

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	jag "github.com/goliatone/go-jag"
	"github.com/goliatone/go-jag/pkg/activity"
)

// Hook logs every activity event at Level.
type Hook struct {
	Logger *zap.Logger
	Level  zapcore.Level
}

// New returns a Hook logging at debug level.
func New(logger *zap.Logger) Hook {
	return Hook{Logger: logger, Level: zapcore.DebugLevel}
}

// Notify implements activity.ActivityHook.
func (h Hook) Notify(_ context.Context, event activity.Event) error {
	if h.Logger == nil {
		return nil
	}
	ce := h.Logger.Check(h.Level, event.Verb)
	if ce == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("object_type", event.ObjectType),
		zap.String("object_id", event.ObjectID),
		zap.String("channel", event.Channel),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}
	ce.Write(fields...)
	return nil
}

// EvaluatorLogger returns a jag.EvaluatorLogger that records evaluations on
// logger. Failed evaluations are logged at warn level, the rest at debug.
func EvaluatorLogger(logger *zap.Logger) jag.EvaluatorLogger {
	if logger == nil {
		return nil
	}
	return jag.EvaluatorLoggerFunc(func(event jag.EvaluatorLogEvent) {
		fields := []zap.Field{
			zap.String("engine", event.Engine),
			zap.String("expr", event.Expr),
			zap.String("layer_id", event.LayerID),
			zap.Duration("duration", event.Duration),
		}
		if event.Err != nil {
			logger.Warn("jag evaluation failed", append(fields, zap.Error(event.Err))...)
			return
		}
		logger.Debug("jag evaluation", fields...)
	})
}
