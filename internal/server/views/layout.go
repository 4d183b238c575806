// Package views holds the templ components that frame the demo pages.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-atomic/pkg/render/template"
)

const (
	bootstrapCSS      = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	bootstrapIconsCSS = "https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css"
	bootstrapJS       = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
)

// Page is the chrome around a page body. Every field except Title holds
// HTML already produced by the component library.
type Page struct {
	Title       string
	Stylesheets string
	Scripts     string
	Breadcrumb  string
	Heading     string
	Flash       string
}

// Layout renders the document shell and places the children from ctx
// inside <main>.
func Layout(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		parts := []templ.Component{
			templ.Raw(`<!DOCTYPE html>` + "\n" + `<html lang="en">` + "\n<head>\n" +
				`<meta charset="utf-8">` + "\n" +
				`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n" +
				"<title>" + templ.EscapeString(page.Title) + " | go-atomic</title>\n" +
				`<link rel="stylesheet" href="` + bootstrapCSS + `">` + "\n" +
				`<link rel="stylesheet" href="` + bootstrapIconsCSS + `">` + "\n"),
			templ.Raw(page.Stylesheets),
			templ.Raw("</head>\n<body>\n" + `<main class="container py-4">` + "\n"),
			templ.Raw(page.Breadcrumb),
			templ.Raw(page.Heading),
			templ.Raw(page.Flash),
			body,
			templ.Raw("\n</main>\n" + `<script src="` + bootstrapJS + `"></script>` + "\n"),
			templ.Raw(page.Scripts),
			templ.Raw("</body>\n</html>\n"),
		}
		return templ.Join(parts...).Render(ctx, w)
	})
}

// Fragment renders a named template from renderer as a templ component.
func Fragment(renderer template.TemplateRenderer, name string, data map[string]any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := renderer.RenderTemplate(name, data, w)
		return err
	})
}
