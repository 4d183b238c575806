package template

import (
	"io"
)

// TemplateRenderer is the engine contract used by the component library and
// the demo server. Render accepts either a template name or inline template
// content; RenderTemplate always resolves a named template.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
