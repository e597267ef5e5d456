package jag

import (
	"encoding/json"
)

// Trace captures provenance for one key across the layers of a mapping,
// innermost first.
type Trace struct {
	Key    string       `json:"key"`
	Found  bool         `json:"found"`
	Value  any          `json:"value,omitempty"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one layer contributed to a traced key.
type Provenance struct {
	LayerID   string `json:"layer_id"`
	Label     string `json:"label,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Depth     int    `json:"depth"`
	Bound     bool   `json:"bound"`
	Value     any    `json:"value,omitempty"`
}

// Source returns the innermost layer that bound the key.
func (t Trace) Source() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Bound {
			return layer, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

func traceKey(scope *Scope, key string) Trace {
	trace := Trace{Key: key}
	trace.Value, trace.Found = scope.Lookup(key)
	for layer := scope; layer != nil; layer = layer.parent {
		value, bound := layer.layer[key]
		trace.Layers = append(trace.Layers, Provenance{
			LayerID:   layer.id,
			Label:     layer.label,
			Namespace: layer.namespace,
			Depth:     layer.depth,
			Bound:     bound,
			Value:     value,
		})
	}
	return trace
}
