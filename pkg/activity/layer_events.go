package activity

import (
	"strings"
	"time"
)

const (
	// VerbLayerDefined is emitted when a layer becomes active.
	VerbLayerDefined = "jag.layer.defined"
	// VerbLayerReleased is emitted when a layer is released and the previous
	// mapping restored.
	VerbLayerReleased = "jag.layer.released"
	// ObjectTypeLayer identifies jag layers as activity objects.
	ObjectTypeLayer = "jag.layer"
)

// LayerEventInput describes a layer transition.
type LayerEventInput struct {
	LayerID    string
	ParentID   string
	Label      string
	Namespace  string
	Depth      int
	Keys       []string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildLayerDefinedEvent constructs the event for a layer entering scope.
func BuildLayerDefinedEvent(input LayerEventInput) Event {
	return buildLayerEvent(VerbLayerDefined, input)
}

// BuildLayerReleasedEvent constructs the event for a layer leaving scope.
func BuildLayerReleasedEvent(input LayerEventInput) Event {
	return buildLayerEvent(VerbLayerReleased, input)
}

func buildLayerEvent(verb string, input LayerEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = ensureMetadata(metadata)
	metadata["depth"] = input.Depth
	if input.ParentID != "" {
		metadata["parent_id"] = input.ParentID
	}
	if input.Label != "" {
		metadata["label"] = input.Label
	}
	if input.Namespace != "" {
		metadata["namespace"] = input.Namespace
	}
	if len(input.Keys) > 0 {
		metadata["keys"] = append([]string{}, input.Keys...)
	}

	objectID := strings.TrimSpace(input.LayerID)
	if objectID == "" {
		objectID = ObjectTypeLayer
	}

	return Event{
		Verb:       verb,
		ObjectType: ObjectTypeLayer,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
