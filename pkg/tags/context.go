package tags

import (
	"bytes"
	"encoding/json"
)

// RenderContext is an insertion-ordered mapping from option name to resolved
// value. It is built fresh for every invocation and never shared.
type RenderContext struct {
	keys   []string
	values map[string]any
}

// NewRenderContext returns an empty context with room for size keys.
func NewRenderContext(size int) *RenderContext {
	return &RenderContext{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (c *RenderContext) Set(key string, value any) *RenderContext {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Get returns the value stored under key.
func (c *RenderContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (c *RenderContext) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Len reports the number of keys.
func (c *RenderContext) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Map returns a shallow copy of the context as a plain map, the shape template
// engines expect.
func (c *RenderContext) Map() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}

// MarshalJSON encodes the context as a JSON object preserving key order.
func (c *RenderContext) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, key := range c.keys {
		if idx > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
