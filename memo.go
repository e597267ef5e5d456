package jag

import "sync"

// memo is a process-lifetime memoization table keyed by name. Entries are
// never evicted; reset exists for test isolation only.
type memo[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

func (m *memo[V]) get(name string, construct func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.entries[name]; ok {
		return value
	}
	if m.entries == nil {
		m.entries = make(map[string]V)
	}
	value := construct()
	m.entries[name] = value
	return value
}

func (m *memo[V]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *memo[V]) reset() {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
}
