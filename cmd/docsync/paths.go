// FILE: docsync/cmd/docsync/paths.go
package main

import (
	"fmt"
	"strconv"
	"strings"
)

// splitPath splits a dot-notation key into segments, rejecting empty ones.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("invalid key %q: empty segment", path)
		}
	}
	return segments, nil
}

// lookupPath walks a document tree along dot-notation segments. Numeric
// segments index sequences.
func lookupPath(tree any, segments []string) (any, bool) {
	current := tree
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			value, exists := node[segment]
			if !exists {
				return nil, false
			}
			current = value
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// setNestedValue sets a value in a nested map using path segments.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, segments []string, value any) {
	current := nested

	for _, segment := range segments[:len(segments)-1] {
		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// flattenMap converts a nested map to a flat map with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap && len(nestedMap) > 0 {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}
