package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-atomic/pkg/render/template"
	"github.com/goliatone/go-atomic/pkg/tags"
)

// Renderer writes the HTML for one component instance into buf.
type Renderer func(buf *bytes.Buffer, rc *tags.RenderContext, data ComponentData) error

// ComponentData carries the collaborators a Renderer may use.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys (such as "molecules.divider") to template
	// paths that replace the built-in template.
	Partials map[string]string
}

// Descriptor bundles a component renderer with the asset base names its
// scripts and stylesheets are published under.
type Descriptor struct {
	Name        string
	TemplateRef string
	PartialKey  string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []string
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

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with the provided name. Existing entries
// are replaced. A descriptor without a Renderer falls back to rendering its
// TemplateRef.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		if descriptor.TemplateRef == "" {
			return fmt.Errorf("components: renderer for %q is nil", name)
		}
		descriptor.Renderer = templateComponentRenderer(descriptor.PartialKey, descriptor.TemplateRef)
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

// Names returns a sorted slice of registered component names.
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

// Assets aggregates the asset base names of the named components, keeping
// first-seen order and dropping duplicates. Unknown names are skipped.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []string) {
	if len(names) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, style := range descriptor.Stylesheets {
			if style == "" {
				continue
			}
			if _, exists := seenStyles[style]; exists {
				continue
			}
			seenStyles[style] = struct{}{}
			stylesheets = append(stylesheets, style)
		}
		for _, script := range descriptor.Scripts {
			if script == "" {
				continue
			}
			if _, exists := seenScripts[script]; exists {
				continue
			}
			seenScripts[script] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		TemplateRef: src.TemplateRef,
		PartialKey:  src.PartialKey,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
