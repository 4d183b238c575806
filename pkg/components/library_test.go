package components

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-atomic/pkg/assets"
	"github.com/goliatone/go-atomic/pkg/tags"
	"github.com/goliatone/go-atomic/pkg/testsupport"
	"github.com/goliatone/go-atomic/pkg/widgets"
)

func newLibrary(t *testing.T, opts ...Option) *Library {
	t.Helper()
	lib, err := NewLibrary(opts...)
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	return lib
}

func TestLibrary_RenderGolden(t *testing.T) {
	lib := newLibrary(t)

	cases := []struct {
		name   string
		kind   string
		args   []any
		kwargs tags.Kwargs
	}{
		{name: "text_default", kind: tags.KindText},
		{name: "title_sized", kind: tags.KindTitle, args: []any{"Polls"}, kwargs: tags.KV("size", "2")},
		{name: "divider_plain", kind: tags.KindDivider},
		{name: "divider_titled", kind: tags.KindDivider, args: []any{"Divider"}, kwargs: tags.KV("orientation", "left")},
		{name: "checkbox_checked", kind: tags.KindInputCheckbox, kwargs: tags.KV("label", "Checkbox", "checked", true)},
		{name: "breadcrumb_three", kind: tags.KindBreadcrumb, kwargs: tags.KV("item1", "Home", "item2", "General", "type", "3")},
		{name: "input_text_default", kind: tags.KindInputText},
		{name: "input_password_icon", kind: tags.KindInputPassword, kwargs: tags.KV("left_icon", "bi bi-lock")},
		{name: "input_number_range", kind: tags.KindInputNumber, kwargs: tags.KV("min", "2", "max", "10", "step", "2")},
		{name: "input_search_autofocus", kind: tags.KindInputSearch, kwargs: tags.KV("placeholder", "Search", "autofocus", true)},
		{name: "base_input_positional", kind: tags.KindBaseInput, args: []any{`min="2"`}, kwargs: tags.KV("type", "number")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lib.Render(tc.kind, tc.args, tc.kwargs)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			testsupport.AssertGoldenHTML(t, filepath.Join("testdata", tc.name+".golden.html"), got)
		})
	}
}

func TestLibrary_RenderEscapesValues(t *testing.T) {
	lib := newLibrary(t)

	got, err := lib.Render(tags.KindText, []any{`<b>"hi"</b>`}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped text, got %s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;") {
		t.Fatalf("expected &lt;b&gt; in %s", got)
	}
}

func TestLibrary_RenderInputs(t *testing.T) {
	lib := newLibrary(t)

	cases := []struct {
		name    string
		kind    string
		args    []any
		kwargs  tags.Kwargs
		want    []string
		notWant []string
	}{
		{
			name:   "number forwards html attrs",
			kind:   tags.KindInputNumber,
			kwargs: tags.KV("min", "2", "max", "10", "step", "2", "placeholder", "Enter a number", "disabled", true),
			want: []string{
				`type="number"`,
				` placeholder="Enter a number" disabled min="2" max="10" step="2">`,
				`onclick="increaseInputNumber(this)" disabled`,
				`atomic-input--disabled`,
			},
		},
		{
			name:   "password toggles visibility",
			kind:   tags.KindInputPassword,
			kwargs: tags.KV("left_icon", "bi bi-lock", "error", true, "value", "Some text"),
			want: []string{
				`atomic-input atomic-input--error`,
				`<i class="atomic-input__icon bi bi-lock"></i>`,
				`type="password" value="Some text" placeholder="Placeholder">`,
				`onclick="toggleRightIcon(this)"`,
			},
		},
		{
			name:    "search keeps flags",
			kind:    tags.KindInputSearch,
			kwargs:  tags.KV("autofocus", true, "readonly", false),
			want:    []string{`type="search"`, ` autofocus>`, `handleSearch(this)`},
			notWant: []string{"readonly"},
		},
		{
			name:    "text ignores unknown options",
			kind:    tags.KindInputText,
			kwargs:  tags.KV("maxlength", "4"),
			want:    []string{`type="text" placeholder="Placeholder">`},
			notWant: []string{"maxlength"},
		},
		{
			name: "base input renders positional fragments first",
			kind: tags.KindBaseInput,
			args: []any{`data-role="x"`},
			kwargs: tags.KV(
				"type", "email",
				"right_icon", "bi bi-x",
				"on_right_icon_click", "clear(this)",
				"autocomplete", "email",
			),
			want: []string{
				`type="email" placeholder="Placeholder" data-role="x" autocomplete="email">`,
				`<i class="atomic-input__icon atomic-input__icon--right bi bi-x" onclick="clear(this)"></i>`,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lib.Render(tc.kind, tc.args, tc.kwargs)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Fatalf("expected %q in\n%s", fragment, got)
				}
			}
			for _, fragment := range tc.notWant {
				if strings.Contains(got, fragment) {
					t.Fatalf("did not expect %q in\n%s", fragment, got)
				}
			}
		})
	}
}

func TestLibrary_RenderDropdownItems(t *testing.T) {
	lib := newLibrary(t)

	got, err := lib.Render(tags.KindDropdown, nil, tags.KV(
		"title", "English",
		"type", "primary",
		"items", []tags.DropdownItem{
			{Label: "English", Active: true},
			{Label: "Deutsch"},
			{Label: "Klingon", Disabled: true},
		},
	))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`atomic-dropdown--primary`,
		`aria-expanded="false">English</button>`,
		`<a class="dropdown-item active" href="#">English</a>`,
		`<a class="dropdown-item" href="#">Deutsch</a>`,
		`<a class="dropdown-item disabled" href="#">Klingon</a>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in\n%s", fragment, got)
		}
	}
}

func TestLibrary_RenderWidget(t *testing.T) {
	lib := newLibrary(t)

	widget := widgets.NewPasswordInput(map[string]string{"autocomplete": "off"}, "bi bi-alarm-fill")
	field := widgets.Field{Name: "test", IsRequired: true}

	got, err := lib.RenderWidget(widget, field, map[string]string{"id": "id_test"})
	if err != nil {
		t.Fatalf("render widget: %v", err)
	}
	for _, fragment := range []string{
		`<i class="atomic-input__icon bi bi-alarm-fill"></i>`,
		`type="password" name="test" required autocomplete="off" id="id_test">`,
		`toggleRightIcon(this)`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in\n%s", fragment, got)
		}
	}
	if strings.Contains(got, "placeholder=") {
		t.Fatalf("widget render should not invent a placeholder:\n%s", got)
	}
}

func TestLibrary_RenderFieldResolvesWidget(t *testing.T) {
	lib := newLibrary(t)

	got, err := lib.RenderField(widgets.Field{Name: "votes", Value: 3}, nil)
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if !strings.Contains(got, `type="number" name="votes" value="3"`) {
		t.Fatalf("expected number widget, got\n%s", got)
	}
}

func TestLibrary_UnknownComponent(t *testing.T) {
	lib := newLibrary(t)

	_, err := lib.Render("carousel", nil, nil)
	if !errors.Is(err, tags.ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}
	_, err = lib.RenderContext("carousel", tags.NewRenderContext(0))
	if !errors.Is(err, tags.ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestLibrary_ThemePartials(t *testing.T) {
	overlay := fstest.MapFS{
		"acme/text.tmpl":      {Data: []byte(`<span class="acme">{{ text }}</span>`)},
		"acme/dark/text.tmpl": {Data: []byte(`<span class="acme dark">{{ text }}</span>`)},
	}
	selector := NewStaticSelector("acme")
	err := selector.Register(&theme.Manifest{
		Name:      "acme",
		Templates: map[string]string{"atoms.text": "acme/text.tmpl"},
		Variants: map[string]theme.Variant{
			"dark": {Templates: map[string]string{"atoms.text": "acme/dark/text.tmpl"}},
		},
	})
	if err != nil {
		t.Fatalf("register theme: %v", err)
	}

	light := newLibrary(t, WithTemplatesFS(overlay), WithThemeSelector(selector, "", "light"))
	got, err := light.Render(tags.KindText, []any{"Hi"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<span class="acme">Hi</span>` {
		t.Fatalf("light theme render = %q", got)
	}

	dark := newLibrary(t, WithTemplatesFS(overlay), WithThemeSelector(selector, "acme", "dark"))
	got, err = dark.Render(tags.KindText, []any{"Hi"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<span class="acme dark">Hi</span>` {
		t.Fatalf("dark theme render = %q", got)
	}

	// unaffected components keep the built-in template
	got, err = dark.Render(tags.KindDivider, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "<hr") {
		t.Fatalf("divider should use built-in template, got %q", got)
	}
}

func TestLibrary_UnknownThemeFallsBack(t *testing.T) {
	lib := newLibrary(t, WithThemeSelector(NewStaticSelector("missing"), "", ""))
	got, err := lib.Render(tags.KindText, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "atomic-text") {
		t.Fatalf("expected built-in template, got %q", got)
	}
}

func TestLibrary_ScriptsAndStylesheets(t *testing.T) {
	fsys := fstest.MapFS{
		"static/js/molecules/input_password.js": {Data: []byte("x")},
		"static/js/molecules/base_input.js":     {Data: []byte("x")},
		"static/css/atoms/text.css":             {Data: []byte("x")},
		"static/css/molecules/divider.css":      {Data: []byte("x")},
	}
	cache := assets.NewCache(assets.NewResolverFS(fsys))
	lib := newLibrary(t, WithAssets(cache), WithStaticURL("/assets"))

	got, err := lib.Scripts("input_password")
	if err != nil {
		t.Fatalf("scripts: %v", err)
	}
	want := "<script src=\"/assets/js/molecules/input_password.js\"></script>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}

	_, scripts := lib.Assets(tags.KindInputPassword)
	got, err = lib.Scripts(scripts...)
	if err != nil {
		t.Fatalf("scripts: %v", err)
	}
	want = "<script src=\"/assets/js/molecules/base_input.js\"></script>\n" +
		"<script src=\"/assets/js/molecules/input_password.js\"></script>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component scripts mismatch (-want +got):\n%s", diff)
	}

	got, err = lib.Stylesheets()
	if err != nil {
		t.Fatalf("stylesheets: %v", err)
	}
	want = "<link rel=\"stylesheet\" href=\"/assets/css/atoms/text.css\">\n" +
		"<link rel=\"stylesheet\" href=\"/assets/css/molecules/divider.css\">\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary_ScriptsWithoutAssets(t *testing.T) {
	lib := newLibrary(t)
	if _, err := lib.Scripts(); !errors.Is(err, ErrNoAssets) {
		t.Fatalf("expected ErrNoAssets, got %v", err)
	}
}

type recordedCall struct {
	name string
	data any
}

type recordingRenderer struct {
	calls []recordedCall
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.calls = append(r.calls, recordedCall{name: name, data: data})
	return "<" + name + ">", nil
}

func (r *recordingRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingRenderer) GlobalContext(any) error { return nil }

func TestLibrary_PassesNormalizedContextToRenderer(t *testing.T) {
	recorder := &recordingRenderer{}
	lib := newLibrary(t, WithTemplateRenderer(recorder))

	got, err := lib.Render(tags.KindBreadcrumb, []any{"Home", "General"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<molecules/breadcrumb.tmpl>" {
		t.Fatalf("unexpected output %q", got)
	}
	if len(recorder.calls) != 1 {
		t.Fatalf("expected one render call, got %d", len(recorder.calls))
	}
	rc, ok := recorder.calls[0].data.(*tags.RenderContext)
	if !ok {
		t.Fatalf("expected *tags.RenderContext, got %T", recorder.calls[0].data)
	}
	want := map[string]any{"item1": "Home", "item2": "General", "type": "2", "item3": "Info"}
	if diff := cmp.Diff(want, rc.Map()); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary_WithRegistryKeepsSnapshot(t *testing.T) {
	registry := NewDefaultRegistry()
	lib := newLibrary(t, WithRegistry(registry))

	registry.MustRegister(tags.KindText, Descriptor{
		Renderer: func(buf *bytes.Buffer, _ *tags.RenderContext, _ ComponentData) error {
			buf.WriteString("replaced")
			return nil
		},
	})

	got, err := lib.Render(tags.KindText, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "atomic-text") {
		t.Fatalf("library should not see later registry changes, got %q", got)
	}
}

func TestLibrary_TemplatesDirShadowsIncludes(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "molecules"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := `<input type="{{ type }}" data-theme="disk">`
	if err := os.WriteFile(filepath.Join(dir, "molecules", "base_input.tmpl"), []byte(override), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lib := newLibrary(t, WithTemplatesDir(dir))

	got, err := lib.Render(tags.KindInputPassword, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<input type="password" data-theme="disk">` {
		t.Fatalf("expected the disk base input, got %q", got)
	}

	got, err = lib.Render(tags.KindDivider, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "<hr") {
		t.Fatalf("templates missing on disk should come from the built-in set, got %q", got)
	}
}

func TestLibrary_GlobalsReachTemplates(t *testing.T) {
	overlay := fstest.MapFS{
		"pages/hidden.tmpl": {Data: []byte(`<input type="hidden" name="{{ csrf_field }}" value="{{ token }}">`)},
	}
	lib := newLibrary(t, WithTemplatesFS(overlay), WithGlobals(map[string]any{"csrf_field": "_csrf"}))

	got, err := lib.TemplateRenderer().RenderTemplate("pages/hidden.tmpl", map[string]any{"token": "abc"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<input type="hidden" name="_csrf" value="abc">`; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestLibrary_TitleHeadingLevelIsClamped(t *testing.T) {
	lib := newLibrary(t)

	cases := map[string]string{
		"3": `<h3 class="atomic-title atomic-title--size-3 atomic-title--default">Title</h3>`,
		"x": `<h1 class="atomic-title atomic-title--size-x atomic-title--default">Title</h1>`,
		"9": `<h6 class="atomic-title atomic-title--size-9 atomic-title--default">Title</h6>`,
		"0": `<h1 class="atomic-title atomic-title--size-0 atomic-title--default">Title</h1>`,
	}
	for size, want := range cases {
		got, err := lib.Render(tags.KindTitle, nil, tags.KV("size", size))
		if err != nil {
			t.Fatalf("render size %q: %v", size, err)
		}
		if got != want {
			t.Fatalf("size %q:\nwant %s\n got %s", size, want, got)
		}
	}
}
