package jag

import (
	"context"
	"errors"
	"testing"
)

func TestUnitAcquireRelease(t *testing.T) {
	store := New()
	unit := store.NewUnit(context.Background(), Fresh)

	if _, err := unit.Get("hey"); !IsNotDefined(err) {
		t.Fatalf("expected fresh unit to be empty, got %v", err)
	}

	outer := unit.Define(Bindings{"hey": 1})
	inner := unit.Define(Bindings{"hey": 2})
	if unit.Open() != 2 {
		t.Fatalf("expected two open acquisitions, got %d", unit.Open())
	}
	if got := mustGet(t, unit.Context(), store.Getter("hey")); got != 2 {
		t.Fatalf("expected 2 through the unit context, got %v", got)
	}
	if inner.Scope() != unit.Scope() {
		t.Fatalf("expected the innermost acquisition to own the active scope")
	}

	if err := inner.Release(); err != nil {
		t.Fatalf("release inner: %v", err)
	}
	if got, _ := unit.Get("hey"); got != 1 {
		t.Fatalf("expected 1 after inner release, got %v", got)
	}
	if err := outer.Release(); err != nil {
		t.Fatalf("release outer: %v", err)
	}
	if unit.Scope() != nil || unit.Open() != 0 {
		t.Fatalf("expected the unit to be back at the empty mapping")
	}
}

func TestUnitReleaseOutOfOrder(t *testing.T) {
	unit := New().NewUnit(context.Background(), Fresh)
	outer := unit.Define(Bindings{"hey": 1})
	inner := unit.Define(Bindings{"hey": 2})

	if err := outer.Release(); !errors.Is(err, ErrReleaseOrder) {
		t.Fatalf("expected ErrReleaseOrder, got %v", err)
	}
	if got, _ := unit.Get("hey"); got != 2 {
		t.Fatalf("expected a rejected release to leave the mapping alone, got %v", got)
	}
	if err := inner.Release(); err != nil {
		t.Fatalf("release inner: %v", err)
	}
	if err := outer.Release(); err != nil {
		t.Fatalf("release outer: %v", err)
	}
}

func TestUnitDoubleRelease(t *testing.T) {
	unit := New().NewUnit(context.Background(), Fresh)
	acq := unit.Define(Bindings{"hey": 1})
	if err := acq.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := acq.Release(); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
}

func TestUnitInheritsContext(t *testing.T) {
	store := New()
	ctx := store.Define(context.Background(), Bindings{"hey": 1})

	inherited := store.NewUnit(ctx, Inherit)
	if got, _ := inherited.Get("hey"); got != 1 {
		t.Fatalf("expected inherited unit to see 1, got %v", got)
	}
	fresh := store.NewUnit(ctx, Fresh)
	if _, err := fresh.Get("hey"); !IsNotDefined(err) {
		t.Fatalf("expected fresh unit to be empty, got %v", err)
	}

	acq := inherited.Define(Bindings{"hey": 2})
	if got := mustGet(t, ctx, store.Getter("hey")); got != 1 {
		t.Fatalf("expected unit defines not to reach the source context, got %v", got)
	}
	if err := acq.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestUnitDefineIn(t *testing.T) {
	store := New()
	mypkg := store.Package("mypkg")
	unit := store.NewUnit(context.Background(), Fresh)

	acq := unit.DefineIn(mypkg, Bindings{"hey": 1})
	if got := mustGet(t, unit.Context(), mypkg.Getter("hey")); got != 1 {
		t.Fatalf("expected package getter to see 1, got %v", got)
	}
	if acq.Scope().Namespace() != "mypkg" {
		t.Fatalf("expected layer namespace mypkg, got %q", acq.Scope().Namespace())
	}
	if _, err := unit.Get("hey"); !IsNotDefined(err) {
		t.Fatalf("expected root hey to stay undefined, got %v", err)
	}
	if err := acq.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestUnitForkFresh(t *testing.T) {
	unit := New().NewUnit(context.Background(), Fresh)
	acq := unit.Define(Bindings{"hey": 1})

	child := unit.Fork(Fresh)
	if _, err := child.Get("hey"); !IsNotDefined(err) {
		t.Fatalf("expected fresh fork to be empty, got %v", err)
	}
	if child.Open() != 0 {
		t.Fatalf("expected fork to start with no acquisitions")
	}
	if err := acq.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}
