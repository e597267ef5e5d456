package jag

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group spawns goroutines with an explicit inheritance choice per goroutine.
// It wraps errgroup: the first error cancels the group's context and is
// returned from Wait.
type Group struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewGroup returns a Group whose goroutines derive cancellation from ctx.
func NewGroup(ctx context.Context) *Group {
	if ctx == nil {
		ctx = context.Background()
	}
	group, groupCtx := errgroup.WithContext(ctx)
	return &Group{group: group, ctx: groupCtx}
}

// SetLimit bounds the number of active goroutines; see errgroup.Group.SetLimit.
func (g *Group) SetLimit(n int) {
	g.group.SetLimit(n)
}

// Go runs fn in a new goroutine. With Inherit the mapping carried by ctx is
// captured now, at spawn time; with Fresh the goroutine starts empty. Either
// way fn observes the group's cancellation.
func (g *Group) Go(ctx context.Context, inheritance Inheritance, fn func(context.Context) error) {
	var scope *Scope
	if inheritance == Inherit {
		scope = FromContext(ctx)
	}
	child := WithScope(g.ctx, scope)
	g.group.Go(func() error {
		return fn(child)
	})
}

// Wait blocks until all goroutines return and reports the first error.
func (g *Group) Wait() error {
	return g.group.Wait()
}
