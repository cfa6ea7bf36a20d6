package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreDefaultsWhenMissing(t *testing.T) {
	t.Parallel()
	store := NewFileStore(filepath.Join(t.TempDir(), "preferences.yaml"))
	p, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, ThemeLight, p.Theme)
	require.Equal(t, "anonymous", p.DisplayName())
	require.False(t, p.OnboardingSeen)
}

func TestFileStoreSaveThenLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Preferences{Theme: ThemeDark, Username: "  ada ", OnboardingSeen: true}))

	p, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, Preferences{Theme: ThemeDark, Username: "ada", OnboardingSeen: true}, p)
}

func TestUnknownThemeFallsBackToLight(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\nusername: grace\n"), 0o644))
	p, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, ThemeLight, p.Theme)
	require.Equal(t, "grace", p.Username)
}

func TestParseTheme(t *testing.T) {
	t.Parallel()
	got, err := ParseTheme(" Classic ")
	require.NoError(t, err)
	require.Equal(t, ThemeClassic, got)
	_, err = ParseTheme("solarized")
	require.Error(t, err)
}
