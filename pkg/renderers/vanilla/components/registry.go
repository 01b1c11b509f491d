package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-dashwidgets/pkg/form"
	rendertemplate "github.com/goliatone/go-dashwidgets/pkg/render/template"
)

// Renderer writes the HTML for one control into buf.
type Renderer func(buf *bytes.Buffer, control form.Control, data ComponentData) error

// ComponentData carries what component renderers need beyond the control.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys (e.g. "widgets.select") to replacement
	// templates, typically supplied by a theme.
	Partials map[string]string
	// ID is the DOM id assigned to the control.
	ID string
	// Invalid marks controls that failed validation on the last submit.
	Invalid bool
	// EmptyOption labels the blank choice of select controls.
	EmptyOption string
}

// Descriptor bundles a component renderer with the templates it needs, so
// they can be parsed ahead of time.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Templates   []string
	Stylesheets []string
}

// Registry tracks component descriptors keyed by name. Callers can register
// new components or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy that can be mutated independently.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with name, replacing any existing entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns the registered component names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Templates returns the de-duplicated templates used by the named components,
// or by every component when names is empty.
func (r *Registry) Templates(names ...string) []string {
	if len(names) == 0 {
		names = r.Names()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, tmpl := range descriptor.Templates {
			if _, exists := seen[tmpl]; exists || tmpl == "" {
				continue
			}
			seen[tmpl] = struct{}{}
			out = append(out, tmpl)
		}
	}
	return out
}

// Stylesheets resolves the stylesheet URLs the named components depend on.
func (r *Registry) Stylesheets(names []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if _, exists := seen[href]; exists || href == "" {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Templates:   slices.Clone(src.Templates),
		Stylesheets: slices.Clone(src.Stylesheets),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
