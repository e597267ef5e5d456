// Package jag provides scoped, hierarchical named values ("jags").
//
// A jag is defined for the dynamic extent of a block and is readable by any
// code running inside that extent, including goroutines that are explicitly
// handed the defining context. The mapping is an immutable Scope carried by
// context.Context, so defining a jag never affects the caller's context,
// sibling goroutines, or the goroutine that spawned the current one.
//
//	ctx = jag.Define(ctx, jag.Bindings{"hey": 1})
//	v, err := jag.GetGetter("hey").Get(ctx) // 1, nil
//
// Namespaced jags live under a Package and are stored as "name.namespace":
//
//	ctx = jag.Pkg("mypkg").Define(ctx, jag.Bindings{"hey": 1})
//	v, err = jag.Pkg("mypkg").Getter("hey").Get(ctx)
//
// Spawned goroutines choose explicitly between Inherit and Fresh via Fork
// or Group.Go. Reading a key that is not defined returns an error matching
// ErrNotDefined; there are no defaults.
package jag

import "context"

// Define overlays bindings on the mapping carried by ctx using Default.
func Define(ctx context.Context, bindings Bindings, opts ...LayerOption) context.Context {
	return Default.Define(ctx, bindings, opts...)
}

// With runs fn inside a layer overlaid with bindings using Default.
func With(ctx context.Context, bindings Bindings, fn func(context.Context) error, opts ...LayerOption) error {
	return Default.With(ctx, bindings, fn, opts...)
}

// Get reads key from the mapping carried by ctx.
func Get(ctx context.Context, key string) (any, error) {
	return Default.Get(ctx, key)
}

// GetGetter returns the memoized Default getter for name.
func GetGetter(name string) *Getter {
	return Default.Getter(name)
}

// Resolve maps a get_<name> attribute to its Default getter.
func Resolve(attr string) (*Getter, error) {
	return Default.Resolve(attr)
}

// Pkg returns the memoized Default package handle for name.
func Pkg(name string) *Package {
	return Default.Package(name)
}

// ResolvePackage resolves a namespace attribute on Default.
func ResolvePackage(attr string) (*Package, error) {
	return Default.ResolvePackage(attr)
}
