package inlay

import "sync"

// Style holds the code-style flags that control spacing around the type colon.
type Style struct {
	SpaceBeforeTypeColon bool `yaml:"spaceBeforeTypeColon" json:"spaceBeforeTypeColon"`
	SpaceAfterTypeColon  bool `yaml:"spaceAfterTypeColon"  json:"spaceAfterTypeColon"`
}

// DefaultStyle is `name: Type`.
func DefaultStyle() Style {
	return Style{SpaceBeforeTypeColon: false, SpaceAfterTypeColon: true}
}

// StyleSource returns the current style. Implementations are read on every
// hint, so changes take effect on the next request.
type StyleSource interface {
	TypeColonStyle() Style
}

// StaticStyle is a StyleSource that never changes.
type StaticStyle Style

// TypeColonStyle implements StyleSource.
func (s StaticStyle) TypeColonStyle() Style {
	return Style(s)
}

// Settings is a live, concurrency-safe holder of project settings.
type Settings struct {
	mu     sync.RWMutex
	style  Style
	filter *Filter
}

// NewSettings creates settings initialised from cfg. A nil cfg uses defaults.
func NewSettings(cfg *Config) (*Settings, error) {
	s := &Settings{style: DefaultStyle()}

	if cfg == nil {
		return s, nil
	}

	err := s.Apply(cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Apply replaces the style and filter with those from cfg.
// On a filter compile error the current settings are left untouched.
func (s *Settings) Apply(cfg *Config) error {
	filter, err := CompileFilter(cfg.Exclude)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.style = cfg.StyleOrDefault()
	s.filter = filter

	return nil
}

// SetStyle replaces the style only.
func (s *Settings) SetStyle(style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.style = style
}

// TypeColonStyle implements StyleSource.
func (s *Settings) TypeColonStyle() Style {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.style
}

// Filter returns the current exclusion filter; nil excludes nothing.
func (s *Settings) Filter() *Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter
}
