package widgets

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-atomic/pkg/tags"
)

func TestPasswordInput_Context(t *testing.T) {
	widget := NewPasswordInput(map[string]string{"class": "form-control", "autocomplete": "off"}, "bi bi-alarm-fill")
	field := Field{
		Name:       "test",
		IsRequired: true,
		Value:      "hunter2",
		Attrs:      map[string]string{"autocomplete": "new-password", "id": "id_test"},
	}

	rc := widget.Context(field, map[string]string{"id": "custom"})

	if diff := cmp.Diff([]string{"widget", "left_icon"}, rc.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if icon, _ := rc.Get("left_icon"); icon != "bi bi-alarm-fill" {
		t.Fatalf("left_icon = %v", icon)
	}

	raw, _ := rc.Get("widget")
	inner, ok := raw.(*tags.RenderContext)
	if !ok {
		t.Fatalf("widget should be a render context, got %T", raw)
	}
	want := map[string]any{
		"name":      "test",
		"is_hidden": false,
		"required":  true,
		"value":     "hunter2",
		"attrs": map[string]string{
			"class":        "form-control",
			"autocomplete": "new-password",
			"id":           "custom",
		},
		"template_ref": "molecules/input_password.tmpl",
	}
	if diff := cmp.Diff(want, inner.Map()); diff != "" {
		t.Fatalf("widget mismatch (-want +got):\n%s", diff)
	}
	wantKeys := []string{"name", "is_hidden", "required", "value", "attrs", "template_ref"}
	if diff := cmp.Diff(wantKeys, inner.Keys()); diff != "" {
		t.Fatalf("widget key order mismatch (-want +got):\n%s", diff)
	}
}

func TestPasswordInput_NoIconAndEmptyValue(t *testing.T) {
	rc := PasswordInput{}.Context(Field{Name: "pw", Value: ""}, nil)

	data, err := json.Marshal(rc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"widget":{"name":"pw","is_hidden":false,"required":false,"value":null,"attrs":{},"template_ref":"molecules/input_password.tmpl"},"left_icon":null}`
	if string(data) != want {
		t.Fatalf("json mismatch\nwant: %s\n got: %s", want, data)
	}
}

func TestWidgetsDoNotMutateOwnAttrs(t *testing.T) {
	attrs := map[string]string{"class": "a"}
	widget := NewTextInput(attrs, "")
	attrs["class"] = "mutated"

	rc := widget.Context(Field{Name: "subject", Attrs: map[string]string{"size": "40"}}, nil)
	raw, _ := rc.Get("widget")
	got, _ := raw.(*tags.RenderContext).Get("attrs")
	if diff := cmp.Diff(map[string]string{"class": "a", "size": "40"}, got); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if widget.Attrs["class"] != "a" {
		t.Fatalf("widget attrs changed: %v", widget.Attrs)
	}
}

func TestNumberInput_BoundsYieldToFieldAttrs(t *testing.T) {
	widget := NumberInput{Min: "1", Max: "10", Step: "1"}
	rc := widget.Context(Field{Name: "votes", Value: 3, Attrs: map[string]string{"max": "5"}}, nil)

	raw, _ := rc.Get("widget")
	inner := raw.(*tags.RenderContext)
	got, _ := inner.Get("attrs")
	if diff := cmp.Diff(map[string]string{"min": "1", "max": "5", "step": "1"}, got); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if value, _ := inner.Get("value"); value != "3" {
		t.Fatalf("value = %v, want \"3\"", value)
	}
}

func TestFormatValue(t *testing.T) {
	empty := ""
	full := "x"
	cases := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"", nil},
		{&empty, nil},
		{&full, "x"},
		{12, "12"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Fatalf("FormatValue(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
