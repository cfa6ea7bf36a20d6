// Package prefs persists the player's local preferences: theme, display
// name and whether onboarding was dismissed. It is loaded once at startup
// and saved whenever a value changes.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Theme string

const (
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
	ThemeClassic Theme = "classic"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeClassic:
		return ThemeClassic, nil
	default:
		return "", fmt.Errorf("unsupported theme %q", s)
	}
}

type Preferences struct {
	Theme          Theme  `yaml:"theme"`
	Username       string `yaml:"username"`
	OnboardingSeen bool   `yaml:"onboarding_seen"`
}

// Normalize replaces unknown themes with the light default.
func (p Preferences) Normalize() Preferences {
	if _, err := ParseTheme(string(p.Theme)); err != nil {
		p.Theme = ThemeLight
	}
	p.Username = strings.TrimSpace(p.Username)
	return p
}

// DisplayName falls back to "anonymous" for players who never set a name.
func (p Preferences) DisplayName() string {
	if p.Username == "" {
		return "anonymous"
	}
	return p.Username
}

type Store interface {
	Load() (Preferences, error)
	Save(Preferences) error
}

type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Preferences{}.Normalize(), nil
		}
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	p := Preferences{}
	if err := yaml.Unmarshal(payload, &p); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return p.Normalize(), nil
}

func (s *FileStore) Save(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	payload, err := yaml.Marshal(p.Normalize())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

type MemoryStore struct {
	mu    sync.Mutex
	prefs Preferences
}

func NewMemoryStore(p Preferences) *MemoryStore {
	return &MemoryStore{prefs: p.Normalize()}
}

func (s *MemoryStore) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs, nil
}

func (s *MemoryStore) Save(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p.Normalize()
	return nil
}
