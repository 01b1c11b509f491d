package widget

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Base element names. Registered tags carry a version suffix so several
// builds of a widget can coexist on one page.
const (
	ElementTableEditor  = "widget-tableedit"
	ElementFormRenderer = "widget-form"
)

// DefaultVersion is used when a definition does not declare one.
const DefaultVersion = "versionplaceholder"

// TagName returns the versioned tag for base, e.g. widget-form-1.4.0.
func TagName(base, version string) string {
	base = strings.TrimSpace(base)
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}
	return base + "-" + version
}

// Definition describes a registrable element.
type Definition struct {
	Name    string
	Version string
	New     func() Element
}

// Tag returns the definition's versioned tag.
func (d Definition) Tag() string {
	return TagName(d.Name, d.Version)
}

// Element is the common surface of the widgets.
type Element interface {
	Tag() string
}

// Registry stores element definitions by versioned tag. Registering the same
// tag twice fails; the same name under different versions is fine.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]Definition)}
}

// Define registers def under its versioned tag.
func (r *Registry) Define(def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("widget: element name is required")
	}
	if def.New == nil {
		return fmt.Errorf("widget: element %q has no constructor", def.Name)
	}
	tag := def.Tag()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[tag]; exists {
		return fmt.Errorf("widget: element %q already defined", tag)
	}
	r.definitions[tag] = def
	return nil
}

// Create instantiates the element registered under tag.
func (r *Registry) Create(tag string) (Element, error) {
	r.mu.RLock()
	def, ok := r.definitions[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("widget: element %q not defined", tag)
	}
	return def.New(), nil
}

// Tags lists registered tags sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.definitions))
	for tag := range r.definitions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefineBuiltins registers the table editor and form renderer at version.
// Options are applied to every element the registry creates.
func DefineBuiltins(r *Registry, version string, tableOpts []TableOption, formOpts []FormOption) error {
	if err := r.Define(Definition{
		Name:    ElementTableEditor,
		Version: version,
		New: func() Element {
			return NewTableEditor(append([]TableOption{WithTableVersion(version)}, tableOpts...)...)
		},
	}); err != nil {
		return err
	}
	return r.Define(Definition{
		Name:    ElementFormRenderer,
		Version: version,
		New: func() Element {
			return NewFormRenderer(append([]FormOption{WithFormVersion(version)}, formOpts...)...)
		},
	})
}
