// Package web bundles the demo application's static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Files returns a filesystem whose root holds the static/ directory, the
// layout assets.NewResolverFS expects.
func Files() fs.FS {
	return static
}
