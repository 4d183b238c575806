package tags

import "strings"

// HTMLAttr is a raw attribute forwarded to the rendered element. Flag
// attributes render as the bare key.
type HTMLAttr struct {
	Key   string
	Value string
	Flag  bool
}

// String renders the attribute fragment: `key` or `key="value"`.
func (a HTMLAttr) String() string {
	if a.Flag {
		return a.Key
	}
	return a.Key + `="` + a.Value + `"`
}

// HTMLAttrs is an ordered list of extra attributes.
type HTMLAttrs []HTMLAttr

// Fragments renders every attribute in order.
func (a HTMLAttrs) Fragments() []string {
	out := make([]string, 0, len(a))
	for _, attr := range a {
		out = append(out, attr.String())
	}
	return out
}

// DefaultAttrExclusions are the named arguments never forwarded as raw
// attributes because the input templates render them explicitly.
var DefaultAttrExclusions = []string{"placeholder", "value", "error", "disabled"}

// AttrsFromKwargs converts named arguments into attributes, skipping keys in
// exclude. Boolean true becomes a flag, non-empty strings become key="value";
// false, empty strings and any other value type are dropped.
func AttrsFromKwargs(kwargs Kwargs, exclude ...string) HTMLAttrs {
	if exclude == nil {
		exclude = DefaultAttrExclusions
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		skip[key] = struct{}{}
	}

	attrs := make(HTMLAttrs, 0, len(kwargs))
	index := make(map[string]int, len(kwargs))
	for _, kw := range kwargs {
		key := strings.TrimSpace(kw.Key)
		if key == "" {
			continue
		}
		if _, excluded := skip[key]; excluded {
			continue
		}

		var (
			attr HTMLAttr
			keep bool
		)
		switch v := kw.Value.(type) {
		case bool:
			attr, keep = HTMLAttr{Key: key, Flag: true}, v
		case string:
			attr, keep = HTMLAttr{Key: key, Value: v}, v != ""
		}

		// a repeated key keeps its first position and takes the last value
		if pos, seen := index[key]; seen {
			if keep {
				attrs[pos] = attr
			} else {
				attrs = append(attrs[:pos], attrs[pos+1:]...)
				delete(index, key)
				for name, p := range index {
					if p > pos {
						index[name] = p - 1
					}
				}
			}
			continue
		}
		if !keep {
			continue
		}
		index[key] = len(attrs)
		attrs = append(attrs, attr)
	}
	return attrs
}
