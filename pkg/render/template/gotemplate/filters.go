package gotemplate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("attrs") {
		_ = pongo2.RegisterFilter("attrs", filterAttrs)
	}
	if !pongo2.FilterExists("heading_level") {
		_ = pongo2.RegisterFilter("heading_level", filterHeadingLevel)
	}
}

// filterHeadingLevel turns a title size into a valid <hN> level: numbers are
// clamped to 1..6 and anything else becomes 1.
func filterHeadingLevel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	level, err := strconv.Atoi(strings.TrimSpace(in.String()))
	switch {
	case err != nil || level < 1:
		level = 1
	case level > 6:
		level = 6
	}
	return pongo2.AsValue(level), nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterAttrs joins a list of prebuilt attribute fragments with single spaces
// and marks the result safe. A non-empty result starts with a space so
// templates can write <input{{ html_attrs|attrs }}>.
func filterAttrs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	if in.IsString() || !in.CanSlice() {
		fragment := strings.TrimSpace(in.String())
		if fragment == "" {
			return pongo2.AsSafeValue(""), nil
		}
		return pongo2.AsSafeValue(" " + fragment), nil
	}

	var b strings.Builder
	in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
		if key.IsNil() || key.Interface() == nil {
			return true
		}
		// slice elements arrive as interface values; String() does not unwrap them
		fragment := strings.TrimSpace(fmt.Sprint(key.Interface()))
		if fragment != "" {
			b.WriteByte(' ')
			b.WriteString(fragment)
		}
		return true
	}, func() {})
	return pongo2.AsSafeValue(b.String()), nil
}
