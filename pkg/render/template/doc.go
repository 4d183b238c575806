// Package template defines the template rendering seam component libraries
// depend on. Concrete engines live in subpackages; gotemplate wraps pongo2 so
// component fragments keep their Django-style syntax.
package template
