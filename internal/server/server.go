package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-atomic/internal/config"
	"github.com/goliatone/go-atomic/internal/forms"
	"github.com/goliatone/go-atomic/internal/polls"
	"github.com/goliatone/go-atomic/pkg/assets"
	"github.com/goliatone/go-atomic/pkg/components"
	"github.com/goliatone/go-atomic/web"
)

//go:embed templates
var pageTemplates embed.FS

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the server logger. Components and assets log through
// children of it.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStaticFS serves and resolves assets from files (which must contain a
// static/ directory) instead of the configured root or the embedded demo
// assets.
func WithStaticFS(files fs.FS) Option {
	return func(s *Server) {
		s.static = files
	}
}

// Server is the demo polls application rendered with the component library.
type Server struct {
	cfg    config.Config
	echo   *echo.Echo
	store  *polls.Store
	lib    *components.Library
	assets *assets.Cache
	static fs.FS
	logger zerolog.Logger
}

// New wires the component library, asset cache and HTTP routes.
func New(cfg config.Config, store *polls.Store, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("server: store is required")
	}

	s := &Server{cfg: cfg, store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.static == nil {
		if root := strings.TrimSpace(cfg.Assets.Root); root != "" {
			s.static = os.DirFS(root)
		} else {
			s.static = web.Files()
		}
	}

	resolver := assets.NewResolverFS(s.static,
		assets.WithFolders(cfg.Assets.Scripts, cfg.Assets.Stylesheets),
		assets.WithLogger(s.logger.With().Str("component", "assets").Logger()),
	)
	s.assets = assets.NewCache(resolver)

	lib, err := s.newLibrary()
	if err != nil {
		return nil, err
	}
	s.lib = lib

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Server.ReadTimeout = cfg.Server.ReadTimeout
	s.setupMiddleware()
	s.routes()
	return s, nil
}

func (s *Server) newLibrary() (*components.Library, error) {
	pages, err := fs.Sub(pageTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}

	opts := []components.Option{
		components.WithAssets(s.assets),
		components.WithStaticURL(s.cfg.Assets.URL),
		components.WithTemplatesFS(pages),
		components.WithTemplatesFS(forms.Templates()),
		components.WithLogger(s.logger.With().Str("component", "components").Logger()),
		components.WithGlobals(map[string]any{"csrf_field": csrfField}),
	}

	if manifest := s.cfg.Theme.ThemeManifest(); manifest != nil {
		selector := components.NewStaticSelector(manifest.Name)
		if err := selector.Register(manifest); err != nil {
			return nil, fmt.Errorf("server: register theme: %w", err)
		}
		opts = append(opts, components.WithThemeSelector(selector, manifest.Name, s.cfg.Theme.Variant))
		// theme partials are looked up under <root>/templates
		if root := strings.TrimSpace(s.cfg.Assets.Root); root != "" {
			dir := filepath.Join(root, "templates")
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				opts = append(opts, components.WithTemplatesDir(dir))
			} else {
				s.logger.Warn().Str("dir", dir).Msg("theme templates directory missing, using built-in templates")
			}
		}
	}

	lib, err := components.NewLibrary(opts...)
	if err != nil {
		return nil, fmt.Errorf("server: component library: %w", err)
	}
	return lib, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Library exposes the component library the pages render with.
func (s *Server) Library() *components.Library { return s.lib }

// Start serves until ctx is cancelled, then shuts down gracefully. With
// assets.watch enabled and an on-disk root, asset manifests are invalidated
// as files change.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Assets.Watch && strings.TrimSpace(s.cfg.Assets.Root) != "" {
		dir := filepath.Join(s.cfg.Assets.Root, assets.StaticDir)
		if err := s.assets.Watch(ctx, dir); err != nil {
			return fmt.Errorf("server: watch %s: %w", dir, err)
		}
		defer s.assets.Close()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Server.Addr).Msg("http server listening")
		errCh <- s.echo.Start(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down http server")
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() {
	e := s.echo

	static := strings.TrimSuffix(s.cfg.Assets.URL, "/")
	e.StaticFS(static, echo.MustSubFS(s.static, assets.StaticDir))

	e.GET("/", s.index)
	e.GET("/polls/:id/", s.detail)
	e.GET("/polls/:id/results/", s.results)
	e.POST("/polls/:id/vote/", s.vote)
	e.GET("/contact/", s.contact)
	e.POST("/contact/", s.contact)
	e.GET("/name/", s.name)
	e.POST("/name/", s.name)
	e.GET("/thanks/", s.thanks)
	e.GET("/components/", s.gallery)
}
