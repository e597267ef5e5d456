package jag

import (
	"context"
	"sync"

	"github.com/goliatone/go-jag/pkg/activity"
)

// Store owns the getter and package memo tables for one family of jags,
// along with the activity and evaluator configuration used when defining
// and evaluating them. The mapping itself is not held by the Store: it
// travels with each execution unit's context, so a single Store can be shared
// by any number of goroutines.
type Store struct {
	cfg      storeConfig
	emitter  *activity.Emitter
	getters  memo[*Getter]
	packages memo[*Package]

	evalOnce  sync.Once
	evaluator Evaluator
}

// Default is the process-wide Store behind the package-level helpers.
var Default = New()

// New constructs a Store.
func New(opts ...Option) *Store {
	cfg := applyOptions(opts)
	return &Store{
		cfg: cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{
			Enabled: len(cfg.activityHooks) > 0,
			Channel: cfg.channel,
			ActorID: cfg.actorID,
		}),
	}
}

// Define returns a child of ctx whose mapping is the current mapping overlaid
// with bindings. The mapping carried by ctx is left untouched, so the prior
// state is restored by continuing to use ctx.
func (s *Store) Define(ctx context.Context, bindings Bindings, opts ...LayerOption) context.Context {
	next, _ := s.define(ctx, bindings, "", opts)
	return next
}

// With runs fn inside a layer overlaid with bindings. The release event fires
// even when fn panics.
func (s *Store) With(ctx context.Context, bindings Bindings, fn func(context.Context) error, opts ...LayerOption) error {
	return s.with(ctx, bindings, "", fn, opts)
}

func (s *Store) define(ctx context.Context, bindings Bindings, namespace string, opts []LayerOption) (context.Context, *Scope) {
	if ctx == nil {
		ctx = context.Background()
	}
	scope := s.layer(FromContext(ctx), bindings, namespace, opts)
	next := WithScope(ctx, scope)
	s.emit(next, activity.VerbLayerDefined, scope)
	return next, scope
}

func (s *Store) with(ctx context.Context, bindings Bindings, namespace string, fn func(context.Context) error, opts []LayerOption) error {
	next, scope := s.define(ctx, bindings, namespace, opts)
	defer s.emit(next, activity.VerbLayerReleased, scope)
	if fn == nil {
		return nil
	}
	return fn(next)
}

func (s *Store) layer(parent *Scope, bindings Bindings, namespace string, opts []LayerOption) *Scope {
	if namespace != "" {
		opts = append(opts[:len(opts):len(opts)], withLayerNamespace(namespace))
	}
	return parent.With(bindings, opts...)
}

// Get reads key from the mapping carried by ctx.
func (s *Store) Get(ctx context.Context, key string) (any, error) {
	value, ok := FromContext(ctx).Lookup(key)
	if !ok {
		return nil, notDefined(key, "")
	}
	return value, nil
}

// Getter returns the memoized getter for name. Repeated calls with the same
// name return the same *Getter.
func (s *Store) Getter(name string) *Getter {
	return s.getters.get(name, func() *Getter {
		return newGetter(name, "", name)
	})
}

// Resolve maps an accessor attribute of the form get_<name> to Getter(name).
// Any other attribute fails with an *UnknownAttributeError.
func (s *Store) Resolve(attr string) (*Getter, error) {
	name, ok := getterName(attr)
	if !ok {
		return nil, &UnknownAttributeError{Owner: "jag", Attr: attr}
	}
	return s.Getter(name), nil
}

// Package returns the memoized namespace handle for name.
func (s *Store) Package(name string) *Package {
	return s.packages.get(name, func() *Package {
		return &Package{store: s, name: name}
	})
}

// ResolvePackage is the namespace-of-namespaces accessor: any attribute that
// is a usable namespace resolves to its memoized Package. Empty names and
// names containing dots or whitespace are rejected since they cannot be
// split back out of a namespaced key.
func (s *Store) ResolvePackage(attr string) (*Package, error) {
	if !validPackageName(attr) {
		return nil, &UnknownAttributeError{Owner: "jag.pkg", Attr: attr}
	}
	return s.Package(attr), nil
}

// Trace reports which layers of the mapping carried by ctx bound key.
func (s *Store) Trace(ctx context.Context, key string) Trace {
	return traceKey(FromContext(ctx), key)
}

// Reset clears the getter and package memo tables. Handles obtained before
// Reset keep working but are no longer returned by lookups.
func (s *Store) Reset() {
	s.getters.reset()
	s.packages.reset()
}
