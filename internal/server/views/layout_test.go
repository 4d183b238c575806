package views

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	calls []string
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.calls = append(s.calls, name)
	html := "<p>" + data.(map[string]any)["message"].(string) + "</p>"
	for _, w := range out {
		if _, err := io.WriteString(w, html); err != nil {
			return "", err
		}
	}
	return html, nil
}

func (s *stubRenderer) RenderString(string, any, ...io.Writer) (string, error) { return "", nil }

func (s *stubRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (s *stubRenderer) GlobalContext(any) error { return nil }

func TestLayoutWrapsChildren(t *testing.T) {
	renderer := &stubRenderer{}
	body := Fragment(renderer, "pages/thanks.tmpl", map[string]any{"message": "done"})

	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	err := Layout(Page{
		Title:       "Q & A",
		Stylesheets: `<link rel="stylesheet" href="/static/css/atoms/text.css">`,
		Heading:     "<h1>Q &amp; A</h1>",
		Flash:       `<p class="flash">Saved</p>`,
	}).Render(ctx, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Q &amp; A | go-atomic</title>")
	assert.Contains(t, out, `href="/static/css/atoms/text.css">`+"</head>")
	assert.Equal(t, []string{"pages/thanks.tmpl"}, renderer.calls)

	heading := strings.Index(out, "<h1>")
	flash := strings.Index(out, `<p class="flash">`)
	content := strings.Index(out, "<p>done</p>")
	closing := strings.Index(out, "</main>")
	assert.True(t, heading < flash && flash < content && content < closing, out)
}

func TestLayoutWithoutChildren(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Layout(Page{Title: "Empty"}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<main class=\"container py-4\">\n\n</main>")
}

func TestFragmentStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := &stubRenderer{}
	err := Fragment(renderer, "pages/index.tmpl", map[string]any{"message": "x"}).Render(ctx, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, renderer.calls)
}
