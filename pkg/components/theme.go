package components

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// StaticSelector is a ThemeSelector over manifests registered in memory. An
// empty theme name selects the default theme; an unknown variant falls back
// to the manifest's base values.
type StaticSelector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector returns a selector whose default theme is fallback.
func NewStaticSelector(fallback string) *StaticSelector {
	return &StaticSelector{
		manifests: make(map[string]*theme.Manifest),
		fallback:  strings.TrimSpace(fallback),
	}
}

// Register adds or replaces a manifest keyed by its name.
func (s *StaticSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("components: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[strings.TrimSpace(manifest.Name)] = manifest
	return nil
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("components: theme %q not registered", name)
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  strings.TrimSpace(variant),
		Manifest: manifest,
	}, nil
}
