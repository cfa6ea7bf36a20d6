package theme

import (
	"testing"

	"wikigo/internal/platform/prefs"
)

func TestUseSwitchesPalette(t *testing.T) {
	t.Cleanup(func() { Use(prefs.ThemeLight) })

	Use(prefs.ThemeDark)
	if Name != prefs.ThemeDark || Current.Glamour != "dark" {
		t.Fatalf("dark not applied: %s %+v", Name, Current)
	}
	Use(prefs.ThemeClassic)
	if Current.Link != "#0645ad" {
		t.Fatalf("classic link colour = %s", Current.Link)
	}
	Use("neon")
	if Name != prefs.ThemeLight {
		t.Fatalf("unknown theme should fall back to light, got %s", Name)
	}
}
