package ui

import (
	"fmt"

	"github.com/starford/showcase/internal/kvstore"
)

// ThemeKey is the store key holding the theme choice.
const ThemeKey = "bfs_theme"

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// LoadTheme returns the saved theme, or fallback when nothing valid is saved
// or the store cannot be read.
func LoadTheme(kv kvstore.Store, fallback string) string {
	if kv == nil {
		return fallback
	}
	v, ok, err := kv.Get(ThemeKey)
	if err != nil || !ok {
		return fallback
	}
	if v != ThemeLight && v != ThemeDark {
		return fallback
	}
	return v
}

// SaveTheme stores theme, which must be light or dark.
func SaveTheme(kv kvstore.Store, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("ui: save theme %q: unsupported", theme)
	}
	if err := kv.Set(ThemeKey, theme); err != nil {
		return fmt.Errorf("ui: save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the saved theme and returns the new one.
func ToggleTheme(kv kvstore.Store, fallback string) (string, error) {
	next := ThemeDark
	if LoadTheme(kv, fallback) == ThemeDark {
		next = ThemeLight
	}
	return next, SaveTheme(kv, next)
}
