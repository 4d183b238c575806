package server

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-atomic/internal/server/views"
)

// renderComponent buffers cmp so a failing template still yields a clean
// error response.
func renderComponent(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// page renders a named page template with the shared layout data.
func (s *Server) page(c echo.Context, name string, data map[string]any, kinds ...string) error {
	return s.renderStatus(c, http.StatusOK, name, s.layout(c, data, kinds...))
}

// renderStatus renders the page body template inside the templ layout.
func (s *Server) renderStatus(c echo.Context, code int, name string, data map[string]any) error {
	if _, ok := data["stylesheets"]; !ok {
		data = s.layout(c, data)
	}
	body := views.Fragment(s.lib.TemplateRenderer(), name, data)
	shell := views.Layout(views.Page{
		Title:       stringValue(data, "title"),
		Stylesheets: stringValue(data, "stylesheets"),
		Scripts:     stringValue(data, "scripts"),
		Breadcrumb:  stringValue(data, "breadcrumb"),
		Heading:     stringValue(data, "heading"),
		Flash:       stringValue(data, "flash"),
	})
	return renderComponent(c, code, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return shell.Render(templ.WithChildren(ctx, body), w)
	}))
}

func stringValue(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
