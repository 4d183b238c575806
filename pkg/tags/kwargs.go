package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// Kwarg is a single named argument.
type Kwarg struct {
	Key   string
	Value any
}

// Kwargs holds named arguments in the order the caller supplied them.
type Kwargs []Kwarg

// KV builds Kwargs from alternating key/value pairs. A trailing key without a
// value is bound to nil; non-string keys are formatted with fmt.
func KV(pairs ...any) Kwargs {
	out := make(Kwargs, 0, (len(pairs)+1)/2)
	for idx := 0; idx < len(pairs); idx += 2 {
		key := fmt.Sprint(pairs[idx])
		var value any
		if idx+1 < len(pairs) {
			value = pairs[idx+1]
		}
		out = append(out, Kwarg{Key: key, Value: value})
	}
	return out
}

// Lookup returns the value bound to key. When a key repeats, the last
// occurrence wins.
func (k Kwargs) Lookup(key string) (any, bool) {
	for idx := len(k) - 1; idx >= 0; idx-- {
		if k[idx].Key == key {
			return k[idx].Value, true
		}
	}
	return nil, false
}

// Has reports whether key was supplied.
func (k Kwargs) Has(key string) bool {
	_, ok := k.Lookup(key)
	return ok
}

// ParseKwargs parses key=value tokens the way a template tag line would be
// written: true/false become booleans, quoted values lose their quotes and
// everything else stays a string. Tokens without "=" are returned as
// positional arguments.
func ParseKwargs(tokens []string) ([]any, Kwargs) {
	var (
		args   []any
		kwargs Kwargs
	)
	for _, token := range tokens {
		key, raw, found := strings.Cut(token, "=")
		if !found || strings.TrimSpace(key) == "" {
			args = append(args, literal(token))
			continue
		}
		kwargs = append(kwargs, Kwarg{Key: strings.TrimSpace(key), Value: literal(raw)})
	}
	return args, kwargs
}

func literal(raw string) any {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "True", "true":
		return true
	case "False", "false":
		return false
	case "None", "none":
		return nil
	}
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' || first == '\'') && first == last {
			return trimmed[1 : len(trimmed)-1]
		}
	}
	return trimmed
}

func coerceBool(option string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, typeError(option, "bool", value)
		}
		return parsed, nil
	default:
		return false, typeError(option, "bool", value)
	}
}

func coerceString(option string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", typeError(option, "string", value)
	}
}

// coerceOptionalString maps nil to a nil pointer and everything else through
// coerceString.
func coerceOptionalString(option string, value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	if ptr, ok := value.(*string); ok {
		return ptr, nil
	}
	str, err := coerceString(option, value)
	if err != nil {
		return nil, err
	}
	return &str, nil
}

// String returns a pointer to s, for populating optional string options.
func String(s string) *string {
	return &s
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
