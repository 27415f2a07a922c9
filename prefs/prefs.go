// Package prefs stores calculator preferences.
package prefs

import (
	"context"
	"fmt"
	"sync"
)

// ThemeKey is the preference key holding the active theme.
const ThemeKey = "calc-theme"

// Themes.
const (
	Dark  = "dark"
	Light = "light"
)

// Store is a preference store. Implementations must be safe for concurrent
// use.
type Store interface {
	// Get returns the value of a preference and whether it is set.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set sets a preference.
	Set(ctx context.Context, key, value string) error
}

// Theme returns the stored theme. The theme is Dark if none is stored or the
// stored value is not a theme.
func Theme(ctx context.Context, s Store) (string, error) {
	v, ok, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return Dark, fmt.Errorf("couldn't read theme: %w", err)
	}
	if !ok || (v != Light && v != Dark) {
		return Dark, nil
	}
	return v, nil
}

// SetTheme stores the theme.
func SetTheme(ctx context.Context, s Store, theme string) error {
	if theme != Light && theme != Dark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.Set(ctx, ThemeKey, theme); err != nil {
		return fmt.Errorf("couldn't save theme: %w", err)
	}
	return nil
}

// Memory is a Store that keeps preferences in memory.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

var _ Store = (*Memory)(nil)
