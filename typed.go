package jag

import (
	"context"
	"fmt"

	"github.com/goliatone/go-jag/internal/hydrate"
)

// Typed is a getter that converts its value to T.
type Typed[T any] struct {
	getter *Getter
	strict bool
}

// TypedOption configures a Typed accessor.
type TypedOption func(*typedConfig)

type typedConfig struct {
	strict bool
}

// Strict rejects unknown fields when hydrating map values into structs.
func Strict() TypedOption {
	return func(cfg *typedConfig) {
		cfg.strict = true
	}
}

// As wraps g in a typed accessor.
func As[T any](g *Getter, opts ...TypedOption) Typed[T] {
	cfg := typedConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return Typed[T]{getter: g, strict: cfg.strict}
}

// Getter returns the underlying getter.
func (t Typed[T]) Getter() *Getter {
	return t.getter
}

// Get reads the value from the mapping carried by ctx and converts it to T.
// Values already of type T are returned as-is; map and slice values are
// hydrated through JSON; anything else fails with ErrTypeMismatch.
func (t Typed[T]) Get(ctx context.Context) (T, error) {
	var zero T
	value, err := t.getter.Get(ctx)
	if err != nil {
		return zero, err
	}
	if typed, ok := value.(T); ok {
		return typed, nil
	}
	switch value.(type) {
	case map[string]any, Bindings, []any:
	default:
		return zero, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, t.getter.QualifiedName(), value)
	}
	var opts []hydrate.DecoderOption[T]
	if t.strict {
		opts = append(opts, hydrate.WithDisallowUnknownFields[T]())
	}
	decoded, err := hydrate.NewDecoder[T](opts...).Decode(hydrate.Context{
		Key:       t.getter.name,
		Namespace: t.getter.namespace,
	}, value)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return decoded, nil
}

// GetAs reads key from the mapping carried by ctx as T using Default.
func GetAs[T any](ctx context.Context, key string, opts ...TypedOption) (T, error) {
	return As[T](Default.Getter(key), opts...).Get(ctx)
}
