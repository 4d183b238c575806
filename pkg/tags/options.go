package tags

// TextOptions configures the text atom.
type TextOptions struct {
	Text  string
	Size  string
	Style string
}

// DefaultTextOptions returns the text atom defaults.
func DefaultTextOptions() TextOptions {
	return TextOptions{Text: "Text", Size: "1", Style: "default"}
}

// Context renders the options into the text template context.
func (o TextOptions) Context() *RenderContext {
	return NewRenderContext(3).
		Set("size", o.Size).
		Set("text", o.Text).
		Set("style", o.Style)
}

// TitleOptions configures the title atom.
type TitleOptions struct {
	Title string
	Size  string
	Style string
}

// DefaultTitleOptions returns the title atom defaults.
func DefaultTitleOptions() TitleOptions {
	return TitleOptions{Title: "Title", Size: "1", Style: "default"}
}

func (o TitleOptions) Context() *RenderContext {
	return NewRenderContext(3).
		Set("size", o.Size).
		Set("title", o.Title).
		Set("style", o.Style)
}

// DividerOptions configures the divider molecule. A nil Title renders a plain
// rule.
type DividerOptions struct {
	Title       *string
	Type        string
	Orientation string
}

func DefaultDividerOptions() DividerOptions {
	return DividerOptions{Type: "horizontal", Orientation: "center"}
}

func (o DividerOptions) Context() *RenderContext {
	return NewRenderContext(3).
		Set("type", o.Type).
		Set("title", deref(o.Title)).
		Set("orientation", o.Orientation)
}

// CheckboxOptions configures the input_checkbox molecule.
type CheckboxOptions struct {
	Label         *string
	Checked       bool
	Disabled      bool
	Indeterminate bool
}

func DefaultCheckboxOptions() CheckboxOptions {
	return CheckboxOptions{}
}

func (o CheckboxOptions) Context() *RenderContext {
	return NewRenderContext(4).
		Set("label", deref(o.Label)).
		Set("checked", o.Checked).
		Set("disabled", o.Disabled).
		Set("indeterminate", o.Indeterminate)
}

// BreadcrumbOptions configures the breadcrumb molecule. Type "2" renders two
// crumbs, "3" adds Item3.
type BreadcrumbOptions struct {
	Item1 string
	Item2 string
	Type  string
	Item3 string
}

func DefaultBreadcrumbOptions() BreadcrumbOptions {
	return BreadcrumbOptions{Item1: "Home", Item2: "Overview", Type: "2", Item3: "Info"}
}

func (o BreadcrumbOptions) Context() *RenderContext {
	return NewRenderContext(4).
		Set("item1", o.Item1).
		Set("item2", o.Item2).
		Set("type", o.Type).
		Set("item3", o.Item3)
}

// DropdownItem is one entry of a dropdown menu.
type DropdownItem struct {
	Label    string `json:"label"`
	Active   bool   `json:"active,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// DropdownOptions configures the dropdown molecule. Type is one of secondary,
// primary, borderless or icon.
type DropdownOptions struct {
	Title *string
	Type  string
	Items []DropdownItem
}

func DefaultDropdownOptions() DropdownOptions {
	return DropdownOptions{Type: "secondary"}
}

func (o DropdownOptions) Context() *RenderContext {
	var items any
	if o.Items != nil {
		items = append([]DropdownItem(nil), o.Items...)
	}
	return NewRenderContext(3).
		Set("title", deref(o.Title)).
		Set("type", o.Type).
		Set("items", items)
}

// InputOptions configures input_text, input_password, input_number and
// input_search. Extra is only rendered by kinds that forward raw attributes.
type InputOptions struct {
	Placeholder string
	LeftIcon    *string
	Value       *string
	Disabled    bool
	Error       bool
	Extra       HTMLAttrs
}

func DefaultInputOptions() InputOptions {
	return InputOptions{Placeholder: "Placeholder"}
}

// Context returns the five shared input keys.
func (o InputOptions) Context() *RenderContext {
	return NewRenderContext(6).
		Set("placeholder", o.Placeholder).
		Set("left_icon", deref(o.LeftIcon)).
		Set("value", deref(o.Value)).
		Set("disabled", o.Disabled).
		Set("error", o.Error)
}

// AttrsContext returns the shared input keys followed by html_attrs.
func (o InputOptions) AttrsContext() *RenderContext {
	return o.Context().Set("html_attrs", o.Extra.Fragments())
}

// SearchContext orders keys the way the search template historically
// received them: html_attrs first.
func (o InputOptions) SearchContext() *RenderContext {
	return NewRenderContext(6).
		Set("html_attrs", o.Extra.Fragments()).
		Set("error", o.Error).
		Set("placeholder", o.Placeholder).
		Set("value", deref(o.Value)).
		Set("disabled", o.Disabled).
		Set("left_icon", deref(o.LeftIcon))
}

// BaseInputOptions configures the base_input molecule that every concrete
// input template builds on. Args are captured verbatim from the positional
// arguments and render ahead of Extra.
type BaseInputOptions struct {
	Placeholder      string
	LeftIcon         *string
	RightIcon        *string
	OnRightIconClick *string
	Value            *string
	Disabled         bool
	Error            bool
	Type             string
	Widget           any
	Args             []any
	Extra            HTMLAttrs
}

func DefaultBaseInputOptions() BaseInputOptions {
	return BaseInputOptions{Placeholder: "Placeholder", Type: "text"}
}

func (o BaseInputOptions) Context() *RenderContext {
	attrs := make([]any, 0, len(o.Args)+len(o.Extra))
	attrs = append(attrs, o.Args...)
	for _, fragment := range o.Extra.Fragments() {
		attrs = append(attrs, fragment)
	}
	return NewRenderContext(10).
		Set("placeholder", o.Placeholder).
		Set("left_icon", deref(o.LeftIcon)).
		Set("right_icon", deref(o.RightIcon)).
		Set("on_right_icon_click", deref(o.OnRightIconClick)).
		Set("value", deref(o.Value)).
		Set("disabled", o.Disabled).
		Set("error", o.Error).
		Set("type", o.Type).
		Set("html_attrs", attrs).
		Set("widget", o.Widget)
}
