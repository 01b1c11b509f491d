package styling

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Catalog is an in-memory theme.ThemeSelector over registered manifests.
// The zero value is not usable; call NewCatalog.
type Catalog struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog returns an empty catalog whose Select falls back to the given
// theme and variant when callers pass blanks.
func NewCatalog(defaultTheme, defaultVariant string) *Catalog {
	return &Catalog{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
}

// Register adds a manifest keyed by its name.
func (c *Catalog) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("styling: manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return fmt.Errorf("styling: manifest name is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.manifests[name]; exists {
		return fmt.Errorf("styling: theme %q already registered", name)
	}
	c.manifests[name] = manifest
	if c.defaultTheme == "" {
		c.defaultTheme = name
	}
	return nil
}

// Names lists registered theme names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = c.defaultTheme
		if variant == "" {
			variant = c.defaultVariant
		}
	}

	c.mu.RLock()
	manifest, ok := c.manifests[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("styling: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("styling: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// SelectionTokens merges the manifest tokens with the selected variant's
// overrides.
func SelectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := mergeMaps(selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		tokens = mergeMaps(tokens, variant.Tokens)
	}
	return tokens
}

// NewSelectionResolver exposes a theme selection as a StyleResolver. Token
// keys may be declared with or without the leading "--".
func NewSelectionResolver(selection *theme.Selection) StyleResolver {
	tokens := SelectionTokens(selection)
	resolver := make(MapResolver, len(tokens))
	for key, value := range tokens {
		resolver[cssVarName(key)] = value
	}
	return resolver
}

// RendererConfig derives the renderer-facing theme configuration from a
// selection: merged tokens, CSS variables, template partials and an asset
// URL resolver. It returns nil for a nil selection.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	tokens := SelectionTokens(selection)

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars[cssVarName(key)] = value
	}

	partials := mergeMaps(manifest.Templates)
	assets := manifest.Assets
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		partials = mergeMaps(partials, variant.Templates)
		assets = theme.Assets{
			Prefix: firstNonEmpty(variant.Assets.Prefix, manifest.Assets.Prefix),
			Files:  mergeMaps(manifest.Assets.Files, variant.Assets.Files),
		}
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(assets),
	}
}

func assetResolver(assets theme.Assets) func(string) string {
	return func(key string) string {
		file, ok := assets.Files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		if assets.Prefix == "" {
			return file
		}
		return path.Join(assets.Prefix, file)
	}
}

func cssVarName(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "--") {
		return key
	}
	return "--" + key
}

func mergeMaps(maps ...map[string]string) map[string]string {
	var out map[string]string
	for _, m := range maps {
		for key, value := range m {
			if out == nil {
				out = make(map[string]string)
			}
			out[key] = value
		}
	}
	return out
}
