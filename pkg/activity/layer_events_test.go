package activity

import (
	"context"
	"testing"
)

func TestBuildLayerDefinedEventIncludesLayerMetadata(t *testing.T) {
	keys := []string{"hey", "other"}
	input := LayerEventInput{
		LayerID:   "layer-2",
		ParentID:  "layer-1",
		Label:     "request",
		Namespace: "mypkg",
		Depth:     2,
		Keys:      keys,
		Metadata:  map[string]any{"custom": "value"},
	}

	event := BuildLayerDefinedEvent(input)

	if event.Verb != VerbLayerDefined {
		t.Fatalf("expected verb %s got %s", VerbLayerDefined, event.Verb)
	}
	if event.ObjectType != ObjectTypeLayer || event.ObjectID != "layer-2" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.Metadata["parent_id"] != "layer-1" || event.Metadata["depth"] != 2 {
		t.Fatalf("expected parent and depth metadata, got %+v", event.Metadata)
	}
	if event.Metadata["namespace"] != "mypkg" || event.Metadata["label"] != "request" {
		t.Fatalf("expected namespace and label metadata, got %+v", event.Metadata)
	}
	if event.Metadata["custom"] != "value" {
		t.Fatalf("expected custom metadata preserved, got %+v", event.Metadata)
	}
	gotKeys, ok := event.Metadata["keys"].([]string)
	if !ok || len(gotKeys) != 2 {
		t.Fatalf("expected keys metadata, got %v", event.Metadata["keys"])
	}
	gotKeys[0] = "changed"
	if keys[0] != "hey" {
		t.Fatalf("expected input keys untouched, got %v", keys)
	}
}

func TestBuildLayerReleasedEventFallsBackToObjectType(t *testing.T) {
	event := BuildLayerReleasedEvent(LayerEventInput{})
	if event.Verb != VerbLayerReleased {
		t.Fatalf("expected verb %s got %s", VerbLayerReleased, event.Verb)
	}
	if event.ObjectID != ObjectTypeLayer {
		t.Fatalf("expected fallback object ID %q, got %q", ObjectTypeLayer, event.ObjectID)
	}
	if _, ok := event.Metadata["parent_id"]; ok {
		t.Fatalf("expected root layer to omit parent_id, got %+v", event.Metadata)
	}
}

func TestBuildLayerEventsWorkWithHooks(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	if err := hooks.Notify(context.Background(), BuildLayerDefinedEvent(LayerEventInput{LayerID: "a", Depth: 1})); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := hooks.Notify(context.Background(), BuildLayerReleasedEvent(LayerEventInput{LayerID: "a", Depth: 1})); err != nil {
		t.Fatalf("notify: %v", err)
	}
	verbs := capture.Verbs()
	if len(verbs) != 2 || verbs[0] != VerbLayerDefined || verbs[1] != VerbLayerReleased {
		t.Fatalf("unexpected verbs: %v", verbs)
	}
}
