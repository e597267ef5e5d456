package jag

import (
	"context"
	"strings"
	"sync"
)

const getterPrefix = "get_"

// Getter reads one jag key from the mapping of the calling execution unit.
// Stores hand out a single *Getter per name, so metadata attached with SetDoc
// is visible to every later lookup of the same name.
type Getter struct {
	name      string
	namespace string
	key       string

	mu  sync.RWMutex
	doc string
}

func newGetter(name, namespace, key string) *Getter {
	return &Getter{name: name, namespace: namespace, key: key}
}

// Name returns the accessor name, get_<name>.
func (g *Getter) Name() string {
	return getterPrefix + g.name
}

// QualifiedName prefixes Name with the package namespace when there is one.
func (g *Getter) QualifiedName() string {
	if g.namespace == "" {
		return g.Name()
	}
	return g.namespace + "." + g.Name()
}

// Key returns the mapping key the getter reads.
func (g *Getter) Key() string {
	return g.key
}

// Namespace returns the owning package namespace, empty for root getters.
func (g *Getter) Namespace() string {
	return g.namespace
}

// Get reads the key from the mapping carried by ctx.
func (g *Getter) Get(ctx context.Context) (any, error) {
	return g.Lookup(FromContext(ctx))
}

// Lookup reads the key from scope.
func (g *Getter) Lookup(scope *Scope) (any, error) {
	value, ok := scope.Lookup(g.key)
	if !ok {
		return nil, notDefined(g.name, g.namespace)
	}
	return value, nil
}

// Doc returns the documentation attached to the getter.
func (g *Getter) Doc() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.doc
}

// SetDoc attaches documentation to the getter.
func (g *Getter) SetDoc(doc string) {
	g.mu.Lock()
	g.doc = doc
	g.mu.Unlock()
}

func (g *Getter) String() string {
	return g.QualifiedName()
}

// getterName extracts X from an attribute of the form get_X.
func getterName(attr string) (string, bool) {
	name, ok := strings.CutPrefix(attr, getterPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
