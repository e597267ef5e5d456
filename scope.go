package jag

import (
	"sort"

	"github.com/google/uuid"

	"github.com/goliatone/go-jag/internal/layering"
)

// Bindings maps jag keys to values for a single define.
type Bindings map[string]any

// Scope is an immutable snapshot of the jags visible to one execution unit.
// Every Scope records the layer that produced it and points at the Scope it
// was layered on, so restoring a previous mapping is a pointer swap. A nil
// *Scope is the default empty mapping and is safe to use.
type Scope struct {
	parent    *Scope
	id        string
	label     string
	namespace string
	depth     int
	layer     map[string]any
	values    map[string]any
}

// LayerOption configures metadata recorded on a new layer.
type LayerOption func(*layerConfig)

type layerConfig struct {
	id        string
	label     string
	namespace string
}

// WithLayerID overrides the generated layer identifier.
func WithLayerID(id string) LayerOption {
	return func(cfg *layerConfig) {
		cfg.id = id
	}
}

// WithLayerLabel attaches a human-friendly label to the layer.
func WithLayerLabel(label string) LayerOption {
	return func(cfg *layerConfig) {
		cfg.label = label
	}
}

func withLayerNamespace(namespace string) LayerOption {
	return func(cfg *layerConfig) {
		cfg.namespace = namespace
	}
}

// NewScope builds a root layer holding bindings.
func NewScope(bindings Bindings, opts ...LayerOption) *Scope {
	var empty *Scope
	return empty.With(bindings, opts...)
}

// With returns a new Scope equal to s overlaid with bindings. Keys in bindings
// replace keys of the same name; s itself is never modified.
func (s *Scope) With(bindings Bindings, opts ...LayerOption) *Scope {
	cfg := layerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	layer := layering.Clone(bindings)
	return &Scope{
		parent:    s,
		id:        cfg.id,
		label:     cfg.label,
		namespace: cfg.namespace,
		depth:     s.Depth() + 1,
		layer:     layer,
		values:    layering.MergeLayers(layer, s.visible()),
	}
}

func (s *Scope) visible() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Lookup returns the value bound to key.
func (s *Scope) Lookup(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[key]
	return value, ok
}

// Has reports whether key is bound.
func (s *Scope) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Len returns the number of visible keys.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Keys returns the visible keys sorted alphabetically.
func (s *Scope) Keys() []string {
	if s.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a detached copy of the visible mapping.
func (s *Scope) Snapshot() map[string]any {
	if s.Len() == 0 {
		return map[string]any{}
	}
	return layering.MergeLayers(s.values)
}

// Parent returns the Scope this layer was defined on, nil for a root layer.
func (s *Scope) Parent() *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}

// Depth is the number of layers in the chain, zero for the empty mapping.
func (s *Scope) Depth() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// ID returns the layer identifier.
func (s *Scope) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Label returns the optional layer label.
func (s *Scope) Label() string {
	if s == nil {
		return ""
	}
	return s.label
}

// Namespace returns the package namespace that defined this layer, empty for
// root-namespace defines.
func (s *Scope) Namespace() string {
	if s == nil {
		return ""
	}
	return s.namespace
}

// Bindings returns a copy of the bindings introduced by this layer only.
func (s *Scope) Bindings() Bindings {
	if s == nil {
		return nil
	}
	return Bindings(layering.Clone(s.layer))
}

func (s *Scope) layerKeys() []string {
	if s == nil || len(s.layer) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.layer))
	for key := range s.layer {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
