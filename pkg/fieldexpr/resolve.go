package fieldexpr

import "strings"

// ResolveField walks a dot-separated path through a nested data map.
//
// Two distinct "missing" outcomes are preserved: an intermediate explicit
// null short-circuits to nil before further indexing, while a genuinely
// absent key surfaces as Undefined. A segment resolving to a list is
// returned as that list; there is no index or wildcard syntax.
func ResolveField(root map[string]any, path string) any {
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		if IsUndefined(current) {
			return Undefined
		}
		m, ok := current.(map[string]any)
		if !ok {
			return Undefined
		}
		next, present := m[segment]
		if !present {
			current = Undefined
			continue
		}
		current = next
	}
	return current
}
