package jag

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-jag/internal/layering"
)

const (
	// Recommended tier priorities for common seeding patterns. Higher numbers win.
	TierPrioritySystem = 100
	TierPriorityTenant = 200
	TierPriorityOrg    = 300
	TierPriorityTeam   = 400
	TierPriorityUser   = 500
)

// Tier names a precedence bucket (system, tenant, user, etc.) that contributes
// one layer when seeding a mapping. Higher priorities shadow lower ones.
type Tier struct {
	Name     string
	Label    string
	Priority int
}

// TierOption configures a Tier.
type TierOption func(*Tier)

// WithTierLabel sets a human-friendly label, used as the layer label.
func WithTierLabel(label string) TierOption {
	return func(t *Tier) {
		t.Label = label
	}
}

// NewTier builds a Tier. Validation is deferred to NewStack.
func NewTier(name string, priority int, opts ...TierOption) Tier {
	tier := Tier{Name: name, Priority: priority}
	for _, opt := range opts {
		if opt != nil {
			opt(&tier)
		}
	}
	return tier
}

// Seed pairs a tier with the bindings it contributes.
type Seed struct {
	Tier     Tier
	Bindings Bindings
	LayerID  string
}

// SeedOption configures a Seed.
type SeedOption func(*Seed)

// WithSeedLayerID fixes the identifier of the layer produced by the seed.
func WithSeedLayerID(id string) SeedOption {
	return func(s *Seed) {
		s.LayerID = id
	}
}

// NewSeed copies bindings so later caller mutations do not reach the stack.
func NewSeed(tier Tier, bindings Bindings, opts ...SeedOption) Seed {
	seed := Seed{Tier: tier, Bindings: Bindings(layering.Clone(bindings))}
	for _, opt := range opts {
		if opt != nil {
			opt(&seed)
		}
	}
	return seed
}

func (s Seed) clone() Seed {
	s.Bindings = Bindings(layering.Clone(s.Bindings))
	return s
}

func (s Seed) layerOptions() []LayerOption {
	label := s.Tier.Label
	if label == "" {
		label = s.Tier.Name
	}
	opts := []LayerOption{WithLayerLabel(label)}
	if s.LayerID != "" {
		opts = append(opts, WithLayerID(s.LayerID))
	}
	return opts
}

var (
	// ErrTierNameRequired indicates a seed without a tier name.
	ErrTierNameRequired = errors.New("jag: tier name must be provided")
	// ErrDuplicateTier indicates NewStack received the same tier twice.
	ErrDuplicateTier = errors.New("jag: tier names must be unique")
	// ErrPriorityOrder indicates two tiers share a priority.
	ErrPriorityOrder = errors.New("jag: tier priorities must be strictly ordered")
)

// Stack is an immutable set of seeds ordered from strongest to weakest tier.
type Stack struct {
	seeds []Seed
}

// NewStack validates and sorts seeds so that the strongest tier is first.
func NewStack(seeds ...Seed) (*Stack, error) {
	if len(seeds) == 0 {
		return &Stack{}, nil
	}

	seen := make(map[string]struct{}, len(seeds))
	copied := make([]Seed, len(seeds))
	for i, seed := range seeds {
		if seed.Tier.Name == "" {
			return nil, ErrTierNameRequired
		}
		if _, ok := seen[seed.Tier.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTier, seed.Tier.Name)
		}
		seen[seed.Tier.Name] = struct{}{}
		copied[i] = seed.clone()
	}

	sort.Slice(copied, func(i, j int) bool {
		if copied[i].Tier.Priority == copied[j].Tier.Priority {
			return copied[i].Tier.Name < copied[j].Tier.Name
		}
		return copied[i].Tier.Priority > copied[j].Tier.Priority
	})

	for i := 1; i < len(copied); i++ {
		if copied[i-1].Tier.Priority <= copied[i].Tier.Priority {
			return nil, fmt.Errorf("%w: %d", ErrPriorityOrder, copied[i].Tier.Priority)
		}
	}

	return &Stack{seeds: copied}, nil
}

// Seeds returns copies of the seeds, strongest first.
func (s *Stack) Seeds() []Seed {
	if s == nil || len(s.seeds) == 0 {
		return nil
	}
	out := make([]Seed, len(s.seeds))
	for i := range s.seeds {
		out[i] = s.seeds[i].clone()
	}
	return out
}

// Len returns the number of seeds.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.seeds)
}

// Scope layers the seeds on base, weakest first, so the strongest tier ends
// up innermost and Trace reports every tier that bound a key.
func (s *Stack) Scope(base *Scope) *Scope {
	scope := base
	for i := s.Len() - 1; i >= 0; i-- {
		seed := s.seeds[i]
		scope = scope.With(seed.Bindings, seed.layerOptions()...)
	}
	return scope
}

// Seed returns a child of ctx with every tier of stack defined on top of the
// current mapping, weakest first. Each tier emits its own defined event.
func (st *Store) Seed(ctx context.Context, stack *Stack) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	for i := stack.Len() - 1; i >= 0; i-- {
		seed := stack.seeds[i]
		ctx, _ = st.define(ctx, seed.Bindings, "", seed.layerOptions())
	}
	return ctx
}
