package jag

import (
	"context"

	"github.com/goliatone/go-jag/pkg/activity"
)

// WithActivityHooks attaches activity hooks notified on layer transitions.
// Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks ...activity.ActivityHook) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *storeConfig) {
		cfg.activityHooks = append(cfg.activityHooks, normalized...)
	}
}

// WithChannel overrides the activity channel, activity.DefaultChannel by default.
func WithChannel(channel string) Option {
	return func(cfg *storeConfig) {
		cfg.channel = channel
	}
}

// WithActor stamps emitted activity events with actorID.
func WithActor(actorID string) Option {
	return func(cfg *storeConfig) {
		cfg.actorID = actorID
	}
}

// ActivityHooks returns a cloned slice of the hooks configured on the store.
// The returned slice can be safely mutated by the caller.
func (s *Store) ActivityHooks() activity.Hooks {
	if s == nil {
		return nil
	}
	return cloneActivityHooks(s.cfg.activityHooks)
}

func cloneActivityHooks(hooks []activity.ActivityHook) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

// emit notifies activity hooks. Hook failures never affect scoping.
func (s *Store) emit(ctx context.Context, verb string, scope *Scope) {
	if !s.emitter.Enabled() {
		return
	}
	input := activity.LayerEventInput{
		LayerID:   scope.ID(),
		ParentID:  scope.Parent().ID(),
		Label:     scope.Label(),
		Namespace: scope.Namespace(),
		Depth:     scope.Depth(),
		Keys:      scope.layerKeys(),
	}
	var event activity.Event
	if verb == activity.VerbLayerReleased {
		event = activity.BuildLayerReleasedEvent(input)
	} else {
		event = activity.BuildLayerDefinedEvent(input)
	}
	_ = s.emitter.Emit(ctx, event)
}
