package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadLayersFileEnvAndOptions(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("listen_addr: \":9000\"\nsummary_ttl: 2h\nshare_base_url: https://file.example/\n"), 0o644))
	t.Setenv("WIKIGO_SHARE_BASE_URL", "https://env.example/")
	t.Setenv("WIKIGO_HTTP_TIMEOUT", "3s")

	cfg, err := Load(LoadOptions{ConfigPath: cfgPath, DataDir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ListenAddr)
	require.Equal(t, 2*time.Hour, cfg.SummaryTTL)
	require.Equal(t, "https://env.example/", cfg.ShareBaseURL)
	require.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	require.Equal(t, dir, cfg.DataDir)
	require.Equal(t, filepath.Join(dir, "wikigo.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(dir, "runs"), cfg.JournalDir())
	require.False(t, cfg.UsePostgres())
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("WIKIGO_POSTGRES_DSN=postgres://localhost/wikigo\n"), 0o644))
	t.Setenv("WIKIGO_POSTGRES_DSN", "")
	require.NoError(t, os.Unsetenv("WIKIGO_POSTGRES_DSN"))

	cfg, err := Load(LoadOptions{DataDir: dir, EnvFile: envPath})
	require.NoError(t, err)
	require.True(t, cfg.UsePostgres())
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "nope.yaml"), DataDir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	require.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WIKIGO_SUMMARY_TTL", "forever")
	_, err := Load(LoadOptions{DataDir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	require.ErrorContains(t, err, "WIKIGO_SUMMARY_TTL")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	cfg.HTTPTimeout = 0
	require.Error(t, cfg.Validate())
}
