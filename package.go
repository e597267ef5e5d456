package jag

import (
	"context"
	"strings"
	"unicode"

	"github.com/goliatone/go-jag/internal/layering"
)

// Package groups jags under a namespace. Keys defined through a Package are
// stored as "<name>.<namespace>" so they never collide with root jags or with
// other packages.
type Package struct {
	store   *Store
	name    string
	getters memo[*Getter]
}

// Name returns the namespace.
func (p *Package) Name() string {
	return p.name
}

// Key returns the mapping key used for name inside this package.
func (p *Package) Key(name string) string {
	return name + "." + p.name
}

// Define returns a child of ctx whose mapping adds bindings under this
// package's namespace.
func (p *Package) Define(ctx context.Context, bindings Bindings, opts ...LayerOption) context.Context {
	next, _ := p.store.define(ctx, p.rewrite(bindings), p.name, opts)
	return next
}

// With runs fn inside a layer adding bindings under this package's namespace.
func (p *Package) With(ctx context.Context, bindings Bindings, fn func(context.Context) error, opts ...LayerOption) error {
	return p.store.with(ctx, p.rewrite(bindings), p.name, fn, opts)
}

// Get reads name from this package in the mapping carried by ctx.
func (p *Package) Get(ctx context.Context, name string) (any, error) {
	return p.Getter(name).Get(ctx)
}

// Getter returns the memoized getter for name inside this package.
func (p *Package) Getter(name string) *Getter {
	return p.getters.get(name, func() *Getter {
		return newGetter(name, p.name, p.Key(name))
	})
}

// Resolve maps a get_<name> attribute to the package getter for name.
func (p *Package) Resolve(attr string) (*Getter, error) {
	name, ok := getterName(attr)
	if !ok {
		return nil, &UnknownAttributeError{Owner: "package " + p.name, Attr: attr}
	}
	return p.Getter(name), nil
}

// Trace reports which layers bound name inside this package.
func (p *Package) Trace(ctx context.Context, name string) Trace {
	return traceKey(FromContext(ctx), p.Key(name))
}

func (p *Package) rewrite(bindings Bindings) Bindings {
	return layering.RewriteKeys(bindings, p.Key)
}

func validPackageName(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	return strings.IndexFunc(name, unicode.IsSpace) < 0
}
