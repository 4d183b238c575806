package components

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-atomic/pkg/assets"
	rendertemplate "github.com/goliatone/go-atomic/pkg/render/template"
	"github.com/goliatone/go-atomic/pkg/render/template/gotemplate"
	"github.com/goliatone/go-atomic/pkg/tags"
	"github.com/goliatone/go-atomic/pkg/widgets"
)

const (
	scriptsTemplate     = "scripts.tmpl"
	stylesheetsTemplate = "stylesheets.tmpl"
)

// ErrNoAssets is returned by Scripts and Stylesheets when the library has no
// asset cache.
var ErrNoAssets = errors.New("components: asset resolver not configured")

// Option configures a Library.
type Option func(*Library)

// WithRegistry replaces the default component registry. The library keeps a
// snapshot, so later changes to registry do not reach it.
func WithRegistry(registry *Registry) Option {
	return func(l *Library) {
		if registry != nil {
			l.registry = registry.Clone()
		}
	}
}

// WithTemplateRenderer replaces the default pongo2 engine. The renderer must
// be able to resolve the built-in template names unless every component is
// overridden.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(l *Library) {
		if renderer != nil {
			l.renderer = renderer
		}
	}
}

// WithTemplatesFS adds a template source consulted before the built-in
// templates, letting applications shadow individual fragments and add their
// own pages to the same engine.
func WithTemplatesFS(files fs.FS) Option {
	return func(l *Library) {
		if files != nil {
			l.overlays = append(l.overlays, files)
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk ahead of every
// fs.FS source. Theme partials usually live here.
func WithTemplatesDir(dir string) Option {
	return func(l *Library) {
		l.templatesDir = strings.TrimSpace(dir)
	}
}

// WithGlobals makes data visible to every template the library renders.
func WithGlobals(data map[string]any) Option {
	return func(l *Library) {
		if l.globals == nil {
			l.globals = make(map[string]any, len(data))
		}
		maps.Copy(l.globals, data)
	}
}

// WithThemeSelector resolves template partial overrides from a go-theme
// selection for the given theme and variant.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(l *Library) {
		l.selector = selector
		l.themeName = strings.TrimSpace(name)
		l.themeVariant = strings.TrimSpace(variant)
	}
}

// WithAssets sets the manifest cache used by Scripts and Stylesheets.
func WithAssets(cache *assets.Cache) Option {
	return func(l *Library) {
		l.assets = cache
	}
}

// WithStaticURL sets the URL prefix prepended to manifest paths.
func WithStaticURL(prefix string) Option {
	return func(l *Library) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			if !strings.HasSuffix(prefix, "/") {
				prefix += "/"
			}
			l.staticURL = prefix
		}
	}
}

// WithWidgets replaces the widget registry used by RenderField.
func WithWidgets(registry *widgets.Registry) Option {
	return func(l *Library) {
		if registry != nil {
			l.widgets = registry
		}
	}
}

// WithLogger routes library diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// Library renders atoms and molecules by normalizing their arguments and
// handing the resulting context to a template renderer.
type Library struct {
	registry     *Registry
	renderer     rendertemplate.TemplateRenderer
	overlays     []fs.FS
	templatesDir string
	globals      map[string]any
	widgets      *widgets.Registry
	assets       *assets.Cache
	logger       zerolog.Logger

	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	staticURL    string
}

// NewLibrary builds a Library. Without WithTemplateRenderer it constructs a
// pongo2 engine over the overlays followed by the embedded templates.
func NewLibrary(opts ...Option) (*Library, error) {
	l := &Library{
		registry:  NewDefaultRegistry(),
		widgets:   widgets.NewRegistry(),
		logger:    zerolog.Nop(),
		staticURL: "/" + assets.StaticDir + "/",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	if l.renderer == nil {
		engineOpts := make([]gotemplate.Option, 0, len(l.overlays)+4)
		if l.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(l.templatesDir))
		}
		for _, overlay := range l.overlays {
			engineOpts = append(engineOpts, gotemplate.WithFS(overlay))
		}
		engineOpts = append(engineOpts,
			gotemplate.WithFS(Templates()),
			gotemplate.WithLogger(l.logger),
			gotemplate.WithGlobalData(l.globals),
		)
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("components: create template engine: %w", err)
		}
		l.renderer = engine
	}
	return l, nil
}

// Registry exposes the component registry.
func (l *Library) Registry() *Registry { return l.registry }

// TemplateRenderer exposes the engine so pages can share it with components.
func (l *Library) TemplateRenderer() rendertemplate.TemplateRenderer { return l.renderer }

// Render normalizes args and kwargs for kind and renders the component.
func (l *Library) Render(kind string, args []any, kwargs tags.Kwargs) (string, error) {
	rc, err := tags.Normalize(kind, args, kwargs)
	if err != nil {
		return "", err
	}
	return l.RenderContext(kind, rc)
}

// RenderContext renders kind with an already normalized context.
func (l *Library) RenderContext(kind string, rc *tags.RenderContext) (string, error) {
	descriptor, ok := l.registry.Descriptor(kind)
	if !ok {
		return "", fmt.Errorf("%w: %q", tags.ErrUnknownComponent, kind)
	}

	var buf bytes.Buffer
	partials, _ := l.theme()
	data := ComponentData{Template: l.renderer, Partials: partials}
	if err := descriptor.Renderer(&buf, rc, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderWidget renders field through widget's template.
func (l *Library) RenderWidget(widget widgets.Widget, field widgets.Bound, attrs map[string]string) (string, error) {
	if widget == nil {
		return "", errors.New("components: widget is nil")
	}
	rc := widget.Context(field, attrs)

	templateRef := widget.TemplateRef()
	if partials, _ := l.theme(); partials != nil {
		if candidate := strings.TrimSpace(partials["widgets."+widget.Name()]); candidate != "" {
			templateRef = candidate
		}
	}

	rendered, err := l.renderer.RenderTemplate(templateRef, rc)
	if err != nil {
		return "", fmt.Errorf("components: render widget %q: %w", widget.Name(), err)
	}
	return rendered, nil
}

// RenderField picks a widget for field from the widget registry and renders
// it.
func (l *Library) RenderField(field widgets.Bound, attrs map[string]string) (string, error) {
	widget, ok := l.widgets.Resolve(field)
	if !ok {
		return "", fmt.Errorf("components: no widget for field %q", field.FieldName())
	}
	return l.RenderWidget(widget, field, attrs)
}

// Assets returns the stylesheet and script base names the named components
// depend on.
func (l *Library) Assets(names ...string) (stylesheets []string, scripts []string) {
	return l.registry.Assets(names)
}

// Scripts renders <script> tags for the named assets, or for every script
// under the scripts folder when names is empty.
func (l *Library) Scripts(names ...string) (string, error) {
	if l.assets == nil {
		return "", ErrNoAssets
	}
	return l.renderManifest(scriptsTemplate, l.assets.Scripts(names...))
}

// Stylesheets renders <link> tags for the named assets, or for every
// stylesheet when names is empty.
func (l *Library) Stylesheets(names ...string) (string, error) {
	if l.assets == nil {
		return "", ErrNoAssets
	}
	return l.renderManifest(stylesheetsTemplate, l.assets.Stylesheets(names...))
}

func (l *Library) renderManifest(templateName string, manifest assets.Manifest) (string, error) {
	_, prefix := l.theme()
	if prefix == "" {
		prefix = l.staticURL
	}
	payload := map[string]any{
		"path":       []string(manifest),
		"static_url": prefix,
	}
	rendered, err := l.renderer.RenderTemplate(templateName, payload)
	if err != nil {
		return "", fmt.Errorf("components: render %s: %w", templateName, err)
	}
	return rendered, nil
}

// theme resolves the active selection into template partials and an asset
// URL prefix. Selection failures fall back to the built-in templates.
func (l *Library) theme() (map[string]string, string) {
	if l.selector == nil {
		return nil, ""
	}
	selection, err := l.selector.Select(l.themeName, l.themeVariant)
	if err != nil || selection == nil || selection.Manifest == nil {
		if err != nil {
			l.logger.Warn().Err(err).
				Str("theme", l.themeName).
				Str("variant", l.themeVariant).
				Msg("theme selection failed, using built-in templates")
		}
		return nil, ""
	}

	manifest := selection.Manifest
	partials := make(map[string]string, len(manifest.Templates))
	maps.Copy(partials, manifest.Templates)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		maps.Copy(partials, variant.Templates)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return partials, prefix
}
