package styling

import "strings"

// MapResolver resolves tokens from a static map.
type MapResolver map[string]string

// ResolveStyle implements StyleResolver. Blank values count as unset.
func (m MapResolver) ResolveStyle(name string) (string, bool) {
	value, ok := m[name]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// ResolverFunc adapts a function to StyleResolver.
type ResolverFunc func(name string) (string, bool)

// ResolveStyle implements StyleResolver.
func (f ResolverFunc) ResolveStyle(name string) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(name)
}

// Chain consults resolvers in order and returns the first hit.
func Chain(resolvers ...StyleResolver) StyleResolver {
	return chain(resolvers)
}

type chain []StyleResolver

func (c chain) ResolveStyle(name string) (string, bool) {
	for _, resolver := range c {
		if resolver == nil {
			continue
		}
		if value, ok := resolver.ResolveStyle(name); ok {
			return value, true
		}
	}
	return "", false
}
