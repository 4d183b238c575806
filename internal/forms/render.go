package forms

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-atomic/pkg/components"
	"github.com/goliatone/go-atomic/pkg/tags"
)

const rowTemplate = "forms/row.tmpl"

// Render renders every field of form as a labelled row. The library must have
// Templates() among its overlays. Each input gets id="id_<name>" unless the
// field already sets one; error messages go through the text atom.
func Render(lib *components.Library, form Form) (string, error) {
	var out strings.Builder
	for _, field := range form.Fields() {
		id := "id_" + field.Input.Name
		if custom, ok := field.Input.Attrs["id"]; ok && custom != "" {
			id = custom
		}
		attrs := map[string]string{"id": id}

		var (
			input string
			err   error
		)
		if field.Widget != nil {
			input, err = lib.RenderWidget(field.Widget, field.Input, attrs)
		} else {
			input, err = lib.RenderField(field.Input, attrs)
		}
		if err != nil {
			return "", fmt.Errorf("forms: render %s: %w", field.Input.Name, err)
		}

		errs := make([]string, 0, len(field.Errors))
		for _, msg := range field.Errors {
			rendered, err := lib.Render(tags.KindText, nil, tags.KV("text", msg, "size", "2", "style", "error"))
			if err != nil {
				return "", fmt.Errorf("forms: render error for %s: %w", field.Input.Name, err)
			}
			errs = append(errs, rendered)
		}

		row, err := lib.TemplateRenderer().RenderTemplate(rowTemplate, map[string]any{
			"id":     id,
			"label":  field.Label,
			"input":  input,
			"errors": errs,
		})
		if err != nil {
			return "", fmt.Errorf("forms: render row %s: %w", field.Input.Name, err)
		}
		out.WriteString(row)
	}
	return out.String(), nil
}
