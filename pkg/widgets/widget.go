package widgets

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-atomic/pkg/tags"
)

// Bound is the capability a form field must expose to be rendered through a
// widget: its name, visibility, requirement flag, current value and any
// attributes the field itself contributes.
type Bound interface {
	FieldName() string
	Hidden() bool
	Required() bool
	FieldValue() any
	FieldAttrs() map[string]string
}

// Widget adapts a bound field into the render context of a component
// template.
type Widget interface {
	Name() string
	TemplateRef() string
	Context(field Bound, attrs map[string]string) *tags.RenderContext
}

// Field is a plain Bound implementation for callers without their own form
// abstraction.
type Field struct {
	Name       string
	IsHidden   bool
	IsRequired bool
	Value      any
	Attrs      map[string]string
	// Widget names the widget to use, bypassing registry matchers.
	Widget string
}

func (f Field) FieldName() string             { return f.Name }
func (f Field) Hidden() bool                  { return f.IsHidden }
func (f Field) Required() bool                { return f.IsRequired }
func (f Field) FieldValue() any               { return f.Value }
func (f Field) FieldAttrs() map[string]string { return f.Attrs }
func (f Field) WidgetHint() string            { return f.Widget }

// Base carries what every input widget shares. Embedding types supply the
// template and any extra top-level keys.
type Base struct {
	Attrs    map[string]string
	LeftIcon *string
}

// BuildAttrs merges the widget's own attributes, then the field's, then the
// per-call attributes. Later sources win.
func (b Base) BuildAttrs(field Bound, extra map[string]string) map[string]string {
	out := make(map[string]string, len(b.Attrs)+len(extra))
	maps.Copy(out, b.Attrs)
	if field != nil {
		maps.Copy(out, field.FieldAttrs())
	}
	maps.Copy(out, extra)
	return out
}

func (b Base) context(templateRef string, field Bound, attrs map[string]string) *tags.RenderContext {
	widget := tags.NewRenderContext(6)
	if field != nil {
		widget.Set("name", field.FieldName()).
			Set("is_hidden", field.Hidden()).
			Set("required", field.Required()).
			Set("value", FormatValue(field.FieldValue()))
	} else {
		widget.Set("name", "").
			Set("is_hidden", false).
			Set("required", false).
			Set("value", nil)
	}
	widget.Set("attrs", b.BuildAttrs(field, attrs)).
		Set("template_ref", templateRef)

	var leftIcon any
	if b.LeftIcon != nil {
		leftIcon = *b.LeftIcon
	}
	return tags.NewRenderContext(2).
		Set("widget", widget).
		Set("left_icon", leftIcon)
}

// RenderContext exposes the shared {widget, left_icon} context so widgets
// defined outside this package can reuse it with their own template.
func (b Base) RenderContext(templateRef string, field Bound, attrs map[string]string) *tags.RenderContext {
	return b.context(templateRef, field, attrs)
}

// FormatValue renders a field value for an input element. Nil and empty
// strings yield nil so templates can omit the value attribute.
func FormatValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return v
	case *string:
		if v == nil || *v == "" {
			return nil
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// PasswordInput renders a field with the input_password molecule.
type PasswordInput struct {
	Base
}

// NewPasswordInput builds a password widget with an optional left icon (an
// icon class list such as "bi bi-lock").
func NewPasswordInput(attrs map[string]string, leftIcon string) PasswordInput {
	return PasswordInput{Base: newBase(attrs, leftIcon)}
}

func (PasswordInput) Name() string        { return NamePassword }
func (PasswordInput) TemplateRef() string { return "molecules/input_password.tmpl" }

// Context returns {widget: {...}, left_icon}.
func (w PasswordInput) Context(field Bound, attrs map[string]string) *tags.RenderContext {
	return w.context(w.TemplateRef(), field, attrs)
}

// TextInput renders a field with the input_text molecule.
type TextInput struct {
	Base
}

func NewTextInput(attrs map[string]string, leftIcon string) TextInput {
	return TextInput{Base: newBase(attrs, leftIcon)}
}

func (TextInput) Name() string        { return NameText }
func (TextInput) TemplateRef() string { return "molecules/input_text.tmpl" }

func (w TextInput) Context(field Bound, attrs map[string]string) *tags.RenderContext {
	return w.context(w.TemplateRef(), field, attrs)
}

// NumberInput renders a field with the input_number molecule. Min, Max and
// Step land in the widget attrs unless the field or call overrides them.
type NumberInput struct {
	Base
	Min  string
	Max  string
	Step string
}

func NewNumberInput(attrs map[string]string, leftIcon string) NumberInput {
	return NumberInput{Base: newBase(attrs, leftIcon)}
}

func (NumberInput) Name() string        { return NameNumber }
func (NumberInput) TemplateRef() string { return "molecules/input_number.tmpl" }

func (w NumberInput) Context(field Bound, attrs map[string]string) *tags.RenderContext {
	base := w.Base
	base.Attrs = maps.Clone(w.Attrs)
	if base.Attrs == nil {
		base.Attrs = map[string]string{}
	}
	for key, value := range map[string]string{"min": w.Min, "max": w.Max, "step": w.Step} {
		if value != "" {
			if _, ok := base.Attrs[key]; !ok {
				base.Attrs[key] = value
			}
		}
	}
	return base.context(w.TemplateRef(), field, attrs)
}

// SearchInput renders a field with the input_search molecule.
type SearchInput struct {
	Base
}

func NewSearchInput(attrs map[string]string, leftIcon string) SearchInput {
	return SearchInput{Base: newBase(attrs, leftIcon)}
}

func (SearchInput) Name() string        { return NameSearch }
func (SearchInput) TemplateRef() string { return "molecules/input_search.tmpl" }

func (w SearchInput) Context(field Bound, attrs map[string]string) *tags.RenderContext {
	return w.context(w.TemplateRef(), field, attrs)
}

func newBase(attrs map[string]string, leftIcon string) Base {
	base := Base{Attrs: maps.Clone(attrs)}
	if leftIcon != "" {
		base.LeftIcon = tags.String(leftIcon)
	}
	return base
}
