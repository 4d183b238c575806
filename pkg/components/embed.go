package components

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

// Templates exposes the built-in component templates rooted at their
// level folders (atoms/, molecules/) plus scripts.tmpl and stylesheets.tmpl.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
