package jag

import (
	"context"
	"fmt"

	"github.com/goliatone/go-jag/pkg/activity"
)

// Unit is the jag state of one execution unit when scoping is expressed as
// explicit acquire/release pairs rather than nested contexts. A Unit belongs
// to a single goroutine and is not safe for concurrent use; hand other
// goroutines a Fork instead.
type Unit struct {
	store   *Store
	base    context.Context
	current *Scope
	stack   []*Acquisition
}

// Acquisition is the handle returned by Unit.Define. Releasing it restores
// the mapping that was active immediately before the define.
type Acquisition struct {
	unit     *Unit
	scope    *Scope
	previous *Scope
	released bool
}

// NewUnit creates a Unit whose initial mapping is either the one carried by
// ctx (Inherit) or empty (Fresh). ctx also supplies cancellation for
// contexts derived through Unit.Context.
func (s *Store) NewUnit(ctx context.Context, inheritance Inheritance) *Unit {
	if ctx == nil {
		ctx = context.Background()
	}
	var scope *Scope
	if inheritance == Inherit {
		scope = FromContext(ctx)
	}
	return &Unit{store: s, base: ctx, current: scope}
}

// Fork creates a Unit for a new execution unit. Inherit snapshots the current
// mapping; the child's defines and releases never reach u and vice versa.
func (u *Unit) Fork(inheritance Inheritance) *Unit {
	child := &Unit{store: u.store, base: u.base}
	if inheritance == Inherit {
		child.current = u.current
	}
	return child
}

// Scope returns the active mapping.
func (u *Unit) Scope() *Scope {
	return u.current
}

// Context returns a context carrying the active mapping, for handing to
// context-based readers such as Getter.Get.
func (u *Unit) Context() context.Context {
	return WithScope(u.base, u.current)
}

// Get reads key from the active mapping.
func (u *Unit) Get(key string) (any, error) {
	value, ok := u.current.Lookup(key)
	if !ok {
		return nil, notDefined(key, "")
	}
	return value, nil
}

// Open returns the number of acquisitions not yet released.
func (u *Unit) Open() int {
	return len(u.stack)
}

// Define activates a layer overlaying bindings on the active mapping.
func (u *Unit) Define(bindings Bindings, opts ...LayerOption) *Acquisition {
	return u.acquire(bindings, "", opts)
}

// DefineIn activates a layer adding bindings under pkg's namespace.
func (u *Unit) DefineIn(pkg *Package, bindings Bindings, opts ...LayerOption) *Acquisition {
	return u.acquire(pkg.rewrite(bindings), pkg.name, opts)
}

func (u *Unit) acquire(bindings Bindings, namespace string, opts []LayerOption) *Acquisition {
	scope := u.store.layer(u.current, bindings, namespace, opts)
	acq := &Acquisition{unit: u, scope: scope, previous: u.current}
	u.current = scope
	u.stack = append(u.stack, acq)
	u.store.emit(u.Context(), activity.VerbLayerDefined, scope)
	return acq
}

// Scope returns the mapping activated by this acquisition.
func (a *Acquisition) Scope() *Scope {
	return a.scope
}

// Release restores the mapping active before the acquisition. Acquisitions
// must be released innermost first.
func (a *Acquisition) Release() error {
	if a.released {
		return fmt.Errorf("%w: layer %s", ErrReleased, a.scope.ID())
	}
	u := a.unit
	if n := len(u.stack); n == 0 || u.stack[n-1] != a {
		return fmt.Errorf("%w: layer %s is not the innermost", ErrReleaseOrder, a.scope.ID())
	}
	u.stack = u.stack[:len(u.stack)-1]
	u.current = a.previous
	a.released = true
	u.store.emit(WithScope(u.base, a.scope), activity.VerbLayerReleased, a.scope)
	return nil
}
