package forms

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-atomic/pkg/widgets"
)

//go:embed templates
var embeddedTemplates embed.FS

// Templates exposes the form templates (forms/*.tmpl) for use as a template
// overlay.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Field is one labelled input of a form.
type Field struct {
	Label string
	Input widgets.Field
	// Widget renders Input. Nil resolves a widget from the library's widget
	// registry.
	Widget widgets.Widget
	Errors []string
}

// Form is anything that can list its fields for rendering.
type Form interface {
	Fields() []Field
}

var strict = bluemonday.StrictPolicy()

// clean strips markup from submitted text. Entities produced by the policy
// are decoded again because templates escape on output.
func clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(value)))
}

// birthYears are the years offered by the contact form's date selects.
var birthYears = []string{"1980", "1981", "1982"}

// selectedDate joins the <name>_year, <name>_month and <name>_day values
// submitted by a SelectDate widget into YYYY-MM-DD. Non-numeric parts are
// joined as submitted so validation reports them.
func selectedDate(values url.Values, name string) string {
	year := strings.TrimSpace(values.Get(name + "_year"))
	month := strings.TrimSpace(values.Get(name + "_month"))
	day := strings.TrimSpace(values.Get(name + "_day"))
	if year == "" && month == "" && day == "" {
		return ""
	}
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return year + "-" + month + "-" + day
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func checked(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// ContactForm collects a message for the site owner.
type ContactForm struct {
	Subject   string `form:"subject" validate:"required,max=100"`
	Message   string `form:"message" validate:"required"`
	Sender    string `form:"sender" validate:"required,email"`
	CcMyself  bool   `form:"cc_myself"`
	BirthYear string `form:"birth_year" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD

	errs map[string][]string
}

// Bind populates the form from submitted values, stripping any markup.
func (f *ContactForm) Bind(values url.Values) {
	f.Subject = clean(values.Get("subject"))
	f.Message = clean(values.Get("message"))
	f.Sender = clean(values.Get("sender"))
	f.CcMyself = checked(values, "cc_myself")
	f.BirthYear = selectedDate(values, "birth_year")
	f.errs = nil
}

// Valid validates the bound values and records per-field messages.
func (f *ContactForm) Valid() bool {
	f.errs = validate(f)
	return len(f.errs) == 0
}

// Errors returns the messages recorded by the last Valid call.
func (f *ContactForm) Errors() map[string][]string { return f.errs }

// Recipients returns owner, plus the sender when they asked for a copy.
func (f *ContactForm) Recipients(owner string) []string {
	out := []string{owner}
	if f.CcMyself && f.Sender != "" {
		out = append(out, f.Sender)
	}
	return out
}

func (f *ContactForm) Fields() []Field {
	var cc any
	if f.CcMyself {
		cc = "on"
	}
	return []Field{
		{
			Label:  "Subject",
			Input:  widgets.Field{Name: "subject", IsRequired: true, Value: f.Subject},
			Widget: widgets.NewTextInput(map[string]string{"size": "40", "maxlength": "100"}, ""),
			Errors: f.errs["subject"],
		},
		{
			Label:  "Message",
			Input:  widgets.Field{Name: "message", IsRequired: true, Value: f.Message},
			Widget: NewTextarea(map[string]string{"rows": "6"}),
			Errors: f.errs["message"],
		},
		{
			Label:  "Sender",
			Input:  widgets.Field{Name: "sender", IsRequired: true, Value: f.Sender},
			Widget: widgets.NewTextInput(map[string]string{"inputmode": "email", "autocomplete": "email"}, "bi bi-envelope"),
			Errors: f.errs["sender"],
		},
		{
			Label:  "Cc myself",
			Input:  widgets.Field{Name: "cc_myself", Value: cc},
			Widget: NewCheckbox(nil),
			Errors: f.errs["cc_myself"],
		},
		{
			Label:  "Birth year",
			Input:  widgets.Field{Name: "birth_year", IsRequired: true, Value: f.BirthYear},
			Widget: NewSelectDate(birthYears),
			Errors: f.errs["birth_year"],
		},
	}
}

// NameForm has a single password-style field decorated with a left icon.
type NameForm struct {
	Test string `form:"test" validate:"required"`

	errs map[string][]string
}

func (f *NameForm) Bind(values url.Values) {
	f.Test = strings.TrimSpace(values.Get("test"))
	f.errs = nil
}

func (f *NameForm) Valid() bool {
	f.errs = validate(f)
	return len(f.errs) == 0
}

func (f *NameForm) Errors() map[string][]string { return f.errs }

func (f *NameForm) Fields() []Field {
	return []Field{{
		Label:  "Test",
		Input:  widgets.Field{Name: "test", IsRequired: true},
		Widget: widgets.NewPasswordInput(map[string]string{"autocomplete": "off"}, "bi bi-alarm-fill"),
		Errors: f.errs["test"],
	}}
}
