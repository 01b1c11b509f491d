package table

import "strings"

// StateMap maps state keys to colors, preserving declaration order.
type StateMap struct {
	keys   []string
	colors map[string]string
}

// ParseStateMap parses the `'key','color','key','color'` notation used by
// state columns. Entries are trimmed and single quotes stripped. Keys sit at
// even positions; a trailing key without a color maps to "". Later
// duplicates override earlier colors but keep the first position.
func ParseStateMap(raw string) StateMap {
	out := StateMap{colors: make(map[string]string)}
	if strings.TrimSpace(raw) == "" {
		return out
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(parts[i]), "'", "")
	}
	for i := 0; i < len(parts); i += 2 {
		key := parts[i]
		color := ""
		if i+1 < len(parts) {
			color = parts[i+1]
		}
		if _, exists := out.colors[key]; !exists {
			out.keys = append(out.keys, key)
		}
		out.colors[key] = color
	}
	return out
}

// Color returns the color for key and whether key is mapped.
func (m StateMap) Color(key string) (string, bool) {
	if m.colors == nil {
		return "", false
	}
	color, ok := m.colors[key]
	return color, ok
}

// Keys returns the state keys in declaration order.
func (m StateMap) Keys() []string {
	if len(m.keys) == 0 {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len reports the number of distinct states.
func (m StateMap) Len() int {
	return len(m.keys)
}
