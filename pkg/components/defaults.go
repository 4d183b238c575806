package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-atomic/pkg/tags"
)

// NewDefaultRegistry returns a registry with every built-in atom and molecule.
// Inputs built on base_input also pull in its assets.
func NewDefaultRegistry() *Registry {
	registry := New()

	for _, spec := range tags.Specs() {
		descriptor := Descriptor{
			TemplateRef: spec.TemplateRef,
			PartialKey:  spec.Level + "." + spec.Name,
			Stylesheets: []string{spec.Name},
		}
		switch spec.Name {
		case tags.KindInputText:
			descriptor.Stylesheets = append(descriptor.Stylesheets, tags.KindBaseInput)
			descriptor.Scripts = []string{tags.KindBaseInput}
		case tags.KindInputPassword, tags.KindInputNumber, tags.KindInputSearch:
			descriptor.Stylesheets = append(descriptor.Stylesheets, tags.KindBaseInput)
			descriptor.Scripts = []string{spec.Name, tags.KindBaseInput}
		case tags.KindBaseInput:
			descriptor.Scripts = []string{tags.KindBaseInput}
		}
		descriptor.Renderer = templateComponentRenderer(descriptor.PartialKey, descriptor.TemplateRef)
		registry.MustRegister(spec.Name, descriptor)
	}

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, rc *tags.RenderContext, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.Partials != nil {
			if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, rc)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
