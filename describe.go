package jag

import (
	"fmt"
	"strings"
)

// FieldDescriptor describes one visible key and the dynamic type of its value.
type FieldDescriptor struct {
	Key       string
	Name      string
	Namespace string
	Type      string
}

// Describe lists the visible keys sorted by key. Namespaced keys are split
// into name and namespace at the last dot.
func (s *Scope) Describe() []FieldDescriptor {
	keys := s.Keys()
	if len(keys) == 0 {
		return []FieldDescriptor{}
	}
	fields := make([]FieldDescriptor, 0, len(keys))
	for _, key := range keys {
		name, namespace := splitKey(key)
		fields = append(fields, FieldDescriptor{
			Key:       key,
			Name:      name,
			Namespace: namespace,
			Type:      typeName(s.values[key]),
		})
	}
	return fields
}

func splitKey(key string) (name, namespace string) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
