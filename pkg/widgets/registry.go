package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers exposed by the registry.
const (
	NamePassword = "password"
	NameText     = "text"
	NameNumber   = "number"
	NameSearch   = "search"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field Bound) bool

// Hinted is implemented by fields that name their widget explicitly.
type Hinted interface {
	WidgetHint() string
}

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu      sync.RWMutex
	rules   []rule
	widgets map[string]Widget
}

// NewRegistry constructs a registry with the built-in input widgets and their
// matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{widgets: make(map[string]Widget)}
	reg.registerBuiltins()
	return reg
}

// Add makes a widget available by name, replacing any earlier widget with the
// same name.
func (r *Registry) Add(widget Widget) {
	if r == nil || widget == nil {
		return
	}
	name := normalize(widget.Name())
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.widgets == nil {
		r.widgets = make(map[string]Widget)
	}
	r.widgets[name] = widget
}

// Register adds a matcher for the named widget. Higher priority values take
// precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := normalize(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Widget returns the widget registered under name.
func (r *Registry) Widget(name string) (Widget, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	widget, ok := r.widgets[normalize(name)]
	return widget, ok
}

// ResolveName returns the widget name for a field. An explicit hint is
// honoured before matcher evaluation.
func (r *Registry) ResolveName(field Bound) (string, bool) {
	if hinted, ok := field.(Hinted); ok {
		if explicit := normalize(hinted.WidgetHint()); explicit != "" {
			return explicit, true
		}
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Resolve returns the widget that should render field.
func (r *Registry) Resolve(field Bound) (Widget, bool) {
	name, ok := r.ResolveName(field)
	if !ok {
		return nil, false
	}
	return r.Widget(name)
}

func (r *Registry) registerBuiltins() {
	r.Add(PasswordInput{})
	r.Add(TextInput{})
	r.Add(NumberInput{})
	r.Add(SearchInput{})

	r.Register(NamePassword, 90, func(field Bound) bool {
		if attrType(field) == "password" {
			return true
		}
		return strings.Contains(strings.ToLower(field.FieldName()), "password")
	})

	r.Register(NameSearch, 80, func(field Bound) bool {
		if attrType(field) == "search" {
			return true
		}
		name := strings.ToLower(field.FieldName())
		return name == "q" || strings.Contains(name, "search")
	})

	r.Register(NameNumber, 70, func(field Bound) bool {
		if attrType(field) == "number" {
			return true
		}
		switch field.FieldValue().(type) {
		case int, int32, int64, uint, uint32, uint64, float32, float64:
			return true
		}
		return false
	})

	r.Register(NameText, 0, func(Bound) bool { return true })
}

func attrType(field Bound) string {
	attrs := field.FieldAttrs()
	if attrs == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(attrs["type"]))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
