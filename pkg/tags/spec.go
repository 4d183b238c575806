package tags

import (
	"fmt"
	"slices"
	"strings"
)

// Component kinds understood by Normalize.
const (
	KindText          = "text"
	KindTitle         = "title"
	KindDivider       = "divider"
	KindInputCheckbox = "input_checkbox"
	KindBreadcrumb    = "breadcrumb"
	KindDropdown      = "dropdown"
	KindInputText     = "input_text"
	KindInputPassword = "input_password"
	KindInputNumber   = "input_number"
	KindInputSearch   = "input_search"
	KindBaseInput     = "base_input"
)

// Param is a recognized argument and its default.
type Param struct {
	Name    string
	Default any
}

// ComponentSpec declares what a component kind accepts. Params bind
// positionally (or by name); Options bind by name only.
type ComponentSpec struct {
	Name        string
	Level       string
	TemplateRef string
	Params      []Param
	Options     []Param
	// VarArgs captures surplus positional arguments instead of rejecting them.
	VarArgs bool
	// HTMLAttrs marks kinds that forward unconsumed named arguments as raw
	// attributes.
	HTMLAttrs bool

	build func(b *binding) *RenderContext
}

// Defaults returns every recognized argument with its default value.
func (s ComponentSpec) Defaults() map[string]any {
	out := make(map[string]any, len(s.Params)+len(s.Options))
	for _, p := range s.Params {
		out[p.Name] = p.Default
	}
	for _, p := range s.Options {
		out[p.Name] = p.Default
	}
	return out
}

// Recognized returns the names of every recognized argument, params first.
func (s ComponentSpec) Recognized() []string {
	out := make([]string, 0, len(s.Params)+len(s.Options))
	for _, p := range s.Params {
		out = append(out, p.Name)
	}
	for _, p := range s.Options {
		out = append(out, p.Name)
	}
	return out
}

var inputOptions = []Param{
	{Name: "placeholder", Default: "Placeholder"},
	{Name: "left_icon"},
	{Name: "value"},
	{Name: "disabled", Default: false},
	{Name: "error", Default: false},
}

var specs = map[string]ComponentSpec{
	KindText: {
		Name: KindText, Level: "atoms", TemplateRef: "atoms/text.tmpl",
		Params:  []Param{{Name: "text", Default: "Text"}},
		Options: []Param{{Name: "size", Default: "1"}, {Name: "style", Default: "default"}},
		build: func(b *binding) *RenderContext {
			opts := DefaultTextOptions()
			opts.Text = b.str("text", opts.Text)
			opts.Size = b.str("size", opts.Size)
			opts.Style = b.str("style", opts.Style)
			return opts.Context()
		},
	},
	KindTitle: {
		Name: KindTitle, Level: "atoms", TemplateRef: "atoms/title.tmpl",
		Params:  []Param{{Name: "title", Default: "Title"}},
		Options: []Param{{Name: "size", Default: "1"}, {Name: "style", Default: "default"}},
		build: func(b *binding) *RenderContext {
			opts := DefaultTitleOptions()
			opts.Title = b.str("title", opts.Title)
			opts.Size = b.str("size", opts.Size)
			opts.Style = b.str("style", opts.Style)
			return opts.Context()
		},
	},
	KindDivider: {
		Name: KindDivider, Level: "molecules", TemplateRef: "molecules/divider.tmpl",
		Params:  []Param{{Name: "title"}},
		Options: []Param{{Name: "type", Default: "horizontal"}, {Name: "orientation", Default: "center"}},
		build: func(b *binding) *RenderContext {
			opts := DefaultDividerOptions()
			opts.Title = b.optStr("title")
			opts.Type = b.str("type", opts.Type)
			opts.Orientation = b.str("orientation", opts.Orientation)
			return opts.Context()
		},
	},
	KindInputCheckbox: {
		Name: KindInputCheckbox, Level: "molecules", TemplateRef: "molecules/input_checkbox.tmpl",
		Options: []Param{
			{Name: "label"},
			{Name: "checked", Default: false},
			{Name: "disabled", Default: false},
			{Name: "indeterminate", Default: false},
		},
		build: func(b *binding) *RenderContext {
			opts := DefaultCheckboxOptions()
			opts.Label = b.optStr("label")
			opts.Checked = b.boolean("checked", opts.Checked)
			opts.Disabled = b.boolean("disabled", opts.Disabled)
			opts.Indeterminate = b.boolean("indeterminate", opts.Indeterminate)
			return opts.Context()
		},
	},
	KindBreadcrumb: {
		Name: KindBreadcrumb, Level: "molecules", TemplateRef: "molecules/breadcrumb.tmpl",
		Params:  []Param{{Name: "item1", Default: "Home"}, {Name: "item2", Default: "Overview"}},
		Options: []Param{{Name: "type", Default: "2"}, {Name: "item3", Default: "Info"}},
		build: func(b *binding) *RenderContext {
			opts := DefaultBreadcrumbOptions()
			opts.Item1 = b.str("item1", opts.Item1)
			opts.Item2 = b.str("item2", opts.Item2)
			opts.Type = b.str("type", opts.Type)
			opts.Item3 = b.str("item3", opts.Item3)
			return opts.Context()
		},
	},
	KindDropdown: {
		Name: KindDropdown, Level: "molecules", TemplateRef: "molecules/dropdown.tmpl",
		Params:  []Param{{Name: "title"}},
		Options: []Param{{Name: "type", Default: "secondary"}, {Name: "items"}},
		build: func(b *binding) *RenderContext {
			opts := DefaultDropdownOptions()
			opts.Title = b.optStr("title")
			opts.Type = b.str("type", opts.Type)
			opts.Items = b.items("items")
			return opts.Context()
		},
	},
	KindInputText: {
		Name: KindInputText, Level: "molecules", TemplateRef: "molecules/input_text.tmpl",
		Options: inputOptions,
		build: func(b *binding) *RenderContext {
			return b.input().Context()
		},
	},
	KindInputPassword: {
		Name: KindInputPassword, Level: "molecules", TemplateRef: "molecules/input_password.tmpl",
		Options: inputOptions,
		build: func(b *binding) *RenderContext {
			return b.input().Context()
		},
	},
	KindInputNumber: {
		Name: KindInputNumber, Level: "molecules", TemplateRef: "molecules/input_number.tmpl",
		Options:   inputOptions,
		HTMLAttrs: true,
		build: func(b *binding) *RenderContext {
			opts := b.input()
			opts.Extra = AttrsFromKwargs(b.kwargs)
			return opts.AttrsContext()
		},
	},
	KindInputSearch: {
		Name: KindInputSearch, Level: "molecules", TemplateRef: "molecules/input_search.tmpl",
		Options:   inputOptions,
		HTMLAttrs: true,
		build: func(b *binding) *RenderContext {
			opts := b.input()
			opts.Extra = AttrsFromKwargs(b.kwargs)
			return opts.SearchContext()
		},
	},
	KindBaseInput: {
		Name: KindBaseInput, Level: "molecules", TemplateRef: "molecules/base_input.tmpl",
		Options: []Param{
			{Name: "placeholder", Default: "Placeholder"},
			{Name: "left_icon"},
			{Name: "right_icon"},
			{Name: "on_right_icon_click"},
			{Name: "value"},
			{Name: "disabled", Default: false},
			{Name: "error", Default: false},
			{Name: "type", Default: "text"},
			{Name: "widget"},
		},
		VarArgs:   true,
		HTMLAttrs: true,
		build: func(b *binding) *RenderContext {
			opts := DefaultBaseInputOptions()
			opts.Placeholder = b.str("placeholder", opts.Placeholder)
			opts.LeftIcon = b.optStr("left_icon")
			opts.RightIcon = b.optStr("right_icon")
			opts.OnRightIconClick = b.optStr("on_right_icon_click")
			opts.Value = b.optStr("value")
			opts.Disabled = b.boolean("disabled", opts.Disabled)
			opts.Error = b.boolean("error", opts.Error)
			opts.Type = b.str("type", opts.Type)
			opts.Widget, _ = b.kwargs.Lookup("widget")
			opts.Args = append([]any(nil), b.args...)
			opts.Extra = AttrsFromKwargs(b.kwargs, b.spec.Recognized()...)
			return opts.Context()
		},
	},
}

// Lookup returns the spec registered for kind.
func Lookup(kind string) (ComponentSpec, bool) {
	spec, ok := specs[normalizeKind(kind)]
	return spec, ok
}

// Specs returns every component spec sorted by name.
func Specs() []ComponentSpec {
	out := make([]ComponentSpec, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec)
	}
	slices.SortFunc(out, func(a, b ComponentSpec) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Kinds returns the sorted list of component kinds.
func Kinds() []string {
	out := make([]string, 0, len(specs))
	for name := range specs {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Normalize binds an invocation of kind against its spec and returns the
// render context. Missing arguments resolve to their defaults; unrecognized
// named arguments are dropped unless the kind forwards html_attrs.
func Normalize(kind string, args []any, kwargs Kwargs) (*RenderContext, error) {
	spec, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, kind)
	}
	if !spec.VarArgs && len(args) > len(spec.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrTooManyArgs, spec.Name, len(spec.Params), len(args))
	}

	b := &binding{spec: spec, args: args, kwargs: kwargs}
	rc := spec.build(b)
	if b.err != nil {
		return nil, b.err
	}
	return rc, nil
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

// binding resolves arguments for one invocation, keeping the first error.
type binding struct {
	spec   ComponentSpec
	args   []any
	kwargs Kwargs
	err    error
}

func (b *binding) lookup(name string) (any, bool) {
	for idx, p := range b.spec.Params {
		if p.Name == name && idx < len(b.args) && !b.spec.VarArgs {
			return b.args[idx], true
		}
	}
	return b.kwargs.Lookup(name)
}

func (b *binding) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *binding) str(name, def string) string {
	raw, ok := b.lookup(name)
	if !ok {
		return def
	}
	value, err := coerceString(name, raw)
	if err != nil {
		b.fail(err)
		return def
	}
	return value
}

func (b *binding) optStr(name string) *string {
	raw, ok := b.lookup(name)
	if !ok {
		return nil
	}
	value, err := coerceOptionalString(name, raw)
	if err != nil {
		b.fail(err)
		return nil
	}
	return value
}

func (b *binding) boolean(name string, def bool) bool {
	raw, ok := b.lookup(name)
	if !ok {
		return def
	}
	value, err := coerceBool(name, raw)
	if err != nil {
		b.fail(err)
		return def
	}
	return value
}

func (b *binding) items(name string) []DropdownItem {
	raw, ok := b.lookup(name)
	if !ok || raw == nil {
		return nil
	}
	items, err := coerceItems(name, raw)
	if err != nil {
		b.fail(err)
		return nil
	}
	return items
}

func (b *binding) input() InputOptions {
	opts := DefaultInputOptions()
	opts.Placeholder = b.str("placeholder", opts.Placeholder)
	opts.LeftIcon = b.optStr("left_icon")
	opts.Value = b.optStr("value")
	opts.Disabled = b.boolean("disabled", opts.Disabled)
	opts.Error = b.boolean("error", opts.Error)
	return opts
}

func coerceItems(option string, raw any) ([]DropdownItem, error) {
	switch v := raw.(type) {
	case []DropdownItem:
		return append([]DropdownItem(nil), v...), nil
	case []map[string]any:
		out := make([]DropdownItem, 0, len(v))
		for _, entry := range v {
			item, err := itemFromMap(option, entry)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case []any:
		out := make([]DropdownItem, 0, len(v))
		for _, entry := range v {
			switch e := entry.(type) {
			case DropdownItem:
				out = append(out, e)
			case map[string]any:
				item, err := itemFromMap(option, e)
				if err != nil {
					return nil, err
				}
				out = append(out, item)
			default:
				return nil, typeError(option, "list of items", raw)
			}
		}
		return out, nil
	default:
		return nil, typeError(option, "list of items", raw)
	}
}

func itemFromMap(option string, entry map[string]any) (DropdownItem, error) {
	var (
		item DropdownItem
		err  error
	)
	if label, ok := entry["label"]; ok {
		if item.Label, err = coerceString(option+".label", label); err != nil {
			return DropdownItem{}, err
		}
	}
	if active, ok := entry["active"]; ok {
		if item.Active, err = coerceBool(option+".active", active); err != nil {
			return DropdownItem{}, err
		}
	}
	if disabled, ok := entry["disabled"]; ok {
		if item.Disabled, err = coerceBool(option+".disabled", disabled); err != nil {
			return DropdownItem{}, err
		}
	}
	return item, nil
}
