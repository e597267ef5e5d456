package layering

// MergeLayers composes binding maps ordered from strongest to weakest,
// returning a new map where keys from stronger layers shadow weaker ones.
// Inputs are never mutated and the result shares no map storage with them.
func MergeLayers(layers ...map[string]any) map[string]any {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	merged := make(map[string]any, size)
	for i := len(layers) - 1; i >= 0; i-- {
		for key, value := range layers[i] {
			merged[key] = value
		}
	}
	return merged
}

// Clone returns a detached copy of bindings. Nil and empty inputs yield nil.
func Clone(bindings map[string]any) map[string]any {
	if len(bindings) == 0 {
		return nil
	}
	out := make(map[string]any, len(bindings))
	for key, value := range bindings {
		out[key] = value
	}
	return out
}

// RewriteKeys returns a copy of bindings with every key passed through fn.
func RewriteKeys(bindings map[string]any, fn func(string) string) map[string]any {
	if len(bindings) == 0 {
		return nil
	}
	out := make(map[string]any, len(bindings))
	for key, value := range bindings {
		out[fn(key)] = value
	}
	return out
}
