package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MUSIXMATCH_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Musixmatch.APIKey)
	assert.Equal(t, "http://api.musixmatch.com/ws/1.1/", cfg.Musixmatch.BaseURL)
	assert.Equal(t, 100, cfg.Musixmatch.PageSize)
	assert.Zero(t, cfg.Musixmatch.Timeout)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Empty(t, cfg.CachePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("MUSIXMATCH_PAGE_SIZE", "25")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("IGNORED_PHRASES", "(chorus),[verse]")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 25, cfg.Musixmatch.PageSize)
	assert.Equal(t, 3*time.Second, cfg.Musixmatch.Timeout)
	assert.Equal(t, []string{"(chorus)", "[verse]"}, cfg.IgnoredPhrases)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MUSIXMATCH_API_KEY", "")
	os.Unsetenv("MUSIXMATCH_API_KEY")
	t.Setenv("CACHE_PATH", "")
	os.Unsetenv("CACHE_PATH")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MUSIXMATCH_API_KEY=from-dotenv\nCACHE_PATH=./data/cache.db\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Musixmatch.APIKey)
	assert.Equal(t, "./data/cache.db", cfg.CachePath)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "lyricyear.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: results
musixmatch:
  api_key: yaml-key
  page_size: 50
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, "yaml-key", cfg.Musixmatch.APIKey)
	assert.Equal(t, 50, cfg.Musixmatch.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedDotEnvIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KEY='unterminated\n"), 0o644))

	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutputDir)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "config", hook.LastEntry().Data["component"])
}
