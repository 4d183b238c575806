package widgets

import (
	"testing"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := Field{Name: "password", Widget: "Search"}

	got, ok := reg.ResolveName(field)
	if !ok || got != NameSearch {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
	widget, ok := reg.Resolve(field)
	if !ok || widget.Name() != NameSearch {
		t.Fatalf("expected search widget, got %v (ok=%v)", widget, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  Field
		expect string
	}{
		{name: "password by name", field: Field{Name: "new_password"}, expect: NamePassword},
		{name: "password by attr type", field: Field{Name: "secret", Attrs: map[string]string{"type": "password"}}, expect: NamePassword},
		{name: "search by name", field: Field{Name: "q"}, expect: NameSearch},
		{name: "number by value", field: Field{Name: "age", Value: 42}, expect: NameNumber},
		{name: "number by attr", field: Field{Name: "age", Attrs: map[string]string{"type": "Number"}}, expect: NameNumber},
		{name: "text fallback", field: Field{Name: "subject"}, expect: NameText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.ResolveName(tc.field)
			if !ok {
				t.Fatalf("expected widget for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("expected %s, got %s", tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	reg.Register("first", 10, func(Bound) bool { return true })
	reg.Register("second", 10, func(Bound) bool { return true })
	reg.Register("urgent", 20, func(f Bound) bool { return f.Required() })

	if got, _ := reg.ResolveName(Field{Name: "x"}); got != "first" {
		t.Fatalf("tie should fall back to registration order, got %q", got)
	}
	if got, _ := reg.ResolveName(Field{Name: "x", IsRequired: true}); got != "urgent" {
		t.Fatalf("higher priority should win, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.ResolveName(Field{Name: "x"}); ok || got != "" {
		t.Fatalf("expected no widget, got %q", got)
	}
	if _, ok := reg.Resolve(Field{Name: "x"}); ok {
		t.Fatalf("expected no widget")
	}
}

func TestAdd_ReplacesWidget(t *testing.T) {
	reg := NewRegistry()
	custom := NewPasswordInput(map[string]string{"class": "custom"}, "bi bi-key")
	reg.Add(custom)

	widget, ok := reg.Widget("PASSWORD")
	if !ok {
		t.Fatalf("expected password widget")
	}
	rc := widget.Context(Field{Name: "pw"}, nil)
	if icon, _ := rc.Get("left_icon"); icon != "bi bi-key" {
		t.Fatalf("expected replaced widget, left_icon=%v", icon)
	}
}
