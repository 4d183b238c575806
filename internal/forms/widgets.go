package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-atomic/pkg/tags"
	"github.com/goliatone/go-atomic/pkg/widgets"
)

// Textarea renders a multi-line text field.
type Textarea struct {
	widgets.Base
}

func NewTextarea(attrs map[string]string) Textarea {
	return Textarea{Base: widgets.Base{Attrs: attrs}}
}

func (Textarea) Name() string        { return "textarea" }
func (Textarea) TemplateRef() string { return "forms/textarea.tmpl" }

func (w Textarea) Context(field widgets.Bound, attrs map[string]string) *tags.RenderContext {
	return w.RenderContext(w.TemplateRef(), field, attrs)
}

// Checkbox renders a boolean field as a submittable checkbox. A nil or empty
// field value renders unchecked.
type Checkbox struct {
	widgets.Base
}

func NewCheckbox(attrs map[string]string) Checkbox {
	return Checkbox{Base: widgets.Base{Attrs: attrs}}
}

func (Checkbox) Name() string        { return "checkbox" }
func (Checkbox) TemplateRef() string { return "forms/checkbox.tmpl" }

func (w Checkbox) Context(field widgets.Bound, attrs map[string]string) *tags.RenderContext {
	return w.RenderContext(w.TemplateRef(), field, attrs)
}

// SelectDate renders a YYYY-MM-DD field as month, day and year selects named
// <field>_month, <field>_day and <field>_year.
type SelectDate struct {
	widgets.Base
	Years []string
}

func NewSelectDate(years []string) SelectDate {
	return SelectDate{Years: years}
}

func (SelectDate) Name() string        { return "select_date" }
func (SelectDate) TemplateRef() string { return "forms/select_date.tmpl" }

func (w SelectDate) Context(field widgets.Bound, attrs map[string]string) *tags.RenderContext {
	var year, month, day string
	if field != nil {
		if value, ok := widgets.FormatValue(field.FieldValue()).(string); ok {
			parts := strings.SplitN(value, "-", 3)
			if len(parts) == 3 {
				year, month, day = parts[0], trimZeros(parts[1]), trimZeros(parts[2])
			}
		}
	}

	months := make([]any, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, option(strconv.Itoa(int(m)), m.String()))
	}
	days := make([]any, 0, 31)
	for d := 1; d <= 31; d++ {
		days = append(days, option(strconv.Itoa(d), strconv.Itoa(d)))
	}
	years := make([]any, 0, len(w.Years))
	for _, y := range w.Years {
		years = append(years, option(y, y))
	}

	return w.RenderContext(w.TemplateRef(), field, attrs).Set("parts", []any{
		map[string]any{"name": "month", "selected": month, "options": months},
		map[string]any{"name": "day", "selected": day, "options": days},
		map[string]any{"name": "year", "selected": year, "options": years},
	})
}

func option(value, label string) map[string]any {
	return map[string]any{"value": value, "label": label}
}

func trimZeros(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}
