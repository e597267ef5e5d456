package jag

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-jag/pkg/activity"
)

func TestWithActivityHooksClonesAndFiltersNil(t *testing.T) {
	hook := activity.HookFunc(func(context.Context, activity.Event) error { return nil })

	store := New(WithActivityHooks(nil, hook))
	hooks := store.ActivityHooks()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	hooks[0] = nil
	again := store.ActivityHooks()
	if len(again) != 1 || again[0] == nil {
		t.Fatalf("expected cloned hooks unaffected by mutation, got %+v", again)
	}
}

func TestActivityHooksDefaultNil(t *testing.T) {
	if hooks := New().ActivityHooks(); hooks != nil {
		t.Fatalf("expected nil hooks by default, got %+v", hooks)
	}
}

func TestWithEmitsDefinedAndReleased(t *testing.T) {
	capture := &activity.CaptureHook{}
	store := New(WithActivityHooks(capture), WithActor("worker-1"), WithChannel("jobs"))

	err := store.With(context.Background(), Bindings{"b": 2, "a": 1}, func(ctx context.Context) error {
		if verbs := capture.Verbs(); !reflect.DeepEqual(verbs, []string{activity.VerbLayerDefined}) {
			t.Fatalf("expected only the define inside the block, got %v", verbs)
		}
		return nil
	}, WithLayerID("layer-1"), WithLayerLabel("request"))
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	events := capture.Events()
	if len(events) != 2 {
		t.Fatalf("expected two events, got %d", len(events))
	}
	if events[1].Verb != activity.VerbLayerReleased {
		t.Fatalf("expected release last, got %q", events[1].Verb)
	}
	for _, event := range events {
		if event.ObjectType != activity.ObjectTypeLayer || event.ObjectID != "layer-1" {
			t.Fatalf("unexpected object %s/%s", event.ObjectType, event.ObjectID)
		}
		if event.ActorID != "worker-1" || event.Channel != "jobs" {
			t.Fatalf("expected configured actor and channel, got %q/%q", event.ActorID, event.Channel)
		}
		if event.Metadata["label"] != "request" || event.Metadata["depth"] != 1 {
			t.Fatalf("unexpected metadata %#v", event.Metadata)
		}
		if !reflect.DeepEqual(event.Metadata["keys"], []string{"a", "b"}) {
			t.Fatalf("expected sorted layer keys, got %#v", event.Metadata["keys"])
		}
	}
}

func TestWithEmitsReleaseOnError(t *testing.T) {
	capture := &activity.CaptureHook{}
	store := New(WithActivityHooks(capture))
	boom := errors.New("boom")

	if err := store.With(context.Background(), Bindings{"hey": 1}, func(context.Context) error {
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	want := []string{activity.VerbLayerDefined, activity.VerbLayerReleased}
	if verbs := capture.Verbs(); !reflect.DeepEqual(verbs, want) {
		t.Fatalf("expected %v, got %v", want, verbs)
	}
}

func TestHookErrorsDoNotAffectScoping(t *testing.T) {
	capture := &activity.CaptureHook{Err: errors.New("sink down")}
	store := New(WithActivityHooks(capture))

	ctx := store.Define(context.Background(), Bindings{"hey": 1})
	if got := mustGet(t, ctx, store.Getter("hey")); got != 1 {
		t.Fatalf("expected define to succeed despite hook error, got %v", got)
	}
	if len(capture.Events()) != 1 {
		t.Fatalf("expected the hook to still be notified")
	}
}

func TestPackageAndUnitEventsCarryNamespace(t *testing.T) {
	capture := &activity.CaptureHook{}
	store := New(WithActivityHooks(capture))
	parent := store.Define(context.Background(), Bindings{"hey": 1}, WithLayerID("root"))

	unit := store.NewUnit(parent, Inherit)
	acq := unit.DefineIn(store.Package("mypkg"), Bindings{"hey": 2}, WithLayerID("pkg-layer"))
	if err := acq.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	events := capture.Events()
	if len(events) != 3 {
		t.Fatalf("expected three events, got %d", len(events))
	}
	for _, event := range events[1:] {
		if event.ObjectID != "pkg-layer" {
			t.Fatalf("unexpected object id %q", event.ObjectID)
		}
		if event.Metadata["namespace"] != "mypkg" || event.Metadata["parent_id"] != "root" {
			t.Fatalf("unexpected metadata %#v", event.Metadata)
		}
		if !reflect.DeepEqual(event.Metadata["keys"], []string{"hey.mypkg"}) {
			t.Fatalf("expected rewritten keys, got %#v", event.Metadata["keys"])
		}
	}
	if events[2].Verb != activity.VerbLayerReleased {
		t.Fatalf("expected release last, got %q", events[2].Verb)
	}
}
