package assets

import (
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// StaticDir is the directory under an application root that holds assets.
// Manifest paths are relative to it.
const StaticDir = "static"

// Manifest lists asset paths relative to the static directory, slash
// separated, in the order the directory walk produced them.
type Manifest []string

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger routes resolver diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithFolders overrides the script and stylesheet folders used by Scripts and
// Stylesheets.
func WithFolders(scripts, stylesheets string) Option {
	return func(r *Resolver) {
		if s := strings.Trim(scripts, "/"); s != "" {
			r.scriptsDir = s
		}
		if s := strings.Trim(stylesheets, "/"); s != "" {
			r.stylesDir = s
		}
	}
}

// Resolver finds static assets beneath the static directory of a single
// application root. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	fsys       fs.FS
	logger     zerolog.Logger
	scriptsDir string
	stylesDir  string
}

// NewResolver resolves assets under appRoot/static on the local disk.
func NewResolver(appRoot string, opts ...Option) *Resolver {
	return NewResolverFS(os.DirFS(appRoot), opts...)
}

// NewResolverFS resolves assets under static/ in fsys.
func NewResolverFS(fsys fs.FS, opts ...Option) *Resolver {
	r := &Resolver{
		fsys:       fsys,
		logger:     zerolog.Nop(),
		scriptsDir: "js",
		stylesDir:  "css",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve is a convenience for NewResolver(appRoot).Resolve.
func Resolve(appRoot, folder, extension string, allow []string) Manifest {
	return NewResolver(appRoot).Resolve(folder, extension, allow...)
}

// Resolve walks static/<folder> and returns every regular file whose name ends
// with extension. A non-empty allow list restricts the result to files whose
// name, minus the extension, is listed. Walk failures, including a missing
// folder, produce an empty manifest.
func (r *Resolver) Resolve(folder, extension string, allow ...string) Manifest {
	if r == nil || r.fsys == nil {
		return Manifest{}
	}

	root := path.Join(StaticDir, strings.Trim(folder, "/"))
	if root != StaticDir && !strings.HasPrefix(root, StaticDir+"/") {
		r.logger.Debug().Str("folder", folder).Msg("asset folder escapes the static directory")
		return Manifest{}
	}
	manifest := Manifest{}

	err := fs.WalkDir(r.fsys, root, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		name := entry.Name()
		if !strings.HasSuffix(name, extension) {
			return nil
		}
		if len(allow) > 0 && !slices.Contains(allow, strings.TrimSuffix(name, extension)) {
			return nil
		}
		manifest = append(manifest, strings.TrimPrefix(p, StaticDir+"/"))
		return nil
	})
	if err != nil {
		r.logger.Debug().Err(err).
			Str("folder", folder).
			Str("extension", extension).
			Msg("asset walk failed, returning empty manifest")
		return Manifest{}
	}
	return manifest
}

// Scripts resolves JavaScript assets for the named components (all when
// names is empty).
func (r *Resolver) Scripts(names ...string) Manifest {
	return r.Resolve(r.scriptsDir, ".js", names...)
}

// Stylesheets resolves CSS assets for the named components (all when names is
// empty).
func (r *Resolver) Stylesheets(names ...string) Manifest {
	return r.Resolve(r.stylesDir, ".css", names...)
}
