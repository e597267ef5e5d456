package jag

import "context"

type scopeKey struct{}

// Inheritance selects what mapping a spawned execution unit starts with.
type Inheritance int

const (
	// Fresh starts the child with the default empty mapping.
	Fresh Inheritance = iota
	// Inherit starts the child with the spawner's mapping captured at spawn
	// time.
	Inherit
)

func (i Inheritance) String() string {
	switch i {
	case Inherit:
		return "inherit"
	default:
		return "fresh"
	}
}

// WithScope returns a child of ctx carrying scope as its jag mapping.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, scope)
}

// FromContext returns the jag mapping carried by ctx. Contexts that never had
// a mapping installed yield the empty (nil) Scope.
func FromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	scope, _ := ctx.Value(scopeKey{}).(*Scope)
	return scope
}

// Fork prepares ctx for handing to a new execution unit. Inherit captures the
// current snapshot; since scopes are immutable, later defines on either side
// are invisible to the other. Fresh installs the empty mapping while keeping
// ctx's cancellation and deadline.
func Fork(ctx context.Context, inheritance Inheritance) context.Context {
	if inheritance == Inherit {
		return WithScope(ctx, FromContext(ctx))
	}
	return WithScope(ctx, nil)
}
