package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tada.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
storage:
  backend: bolt
  path: /tmp/todos.db
log:
  level: debug
ui:
  theme: neon
  group: true
`), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/todos.db", cfg.Storage.Path)
	assert.Equal(t, "todo-storage", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.True(t, cfg.UI.Group)
}

func TestLoadTOMLFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tada.toml"), []byte(`
[storage]
backend = "sqlite"
key = "work"
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "work", cfg.Storage.Key)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tada.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"ui":{"theme":"neon"}}`), 0o644))
	t.Setenv("TADA_UI_THEME", "mono")
	t.Setenv("TADA_STORAGE_BACKEND", "Memory")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.UI.Theme)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TADA_STORAGE_BACKEND", "bolt")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("storage", "", "")
	fs.String("theme", "", "")
	require.NoError(t, fs.Parse([]string{"--storage", "sqlite"}))

	cfg, err := Load("",
		Binding{Key: "storage.backend", Flag: fs.Lookup("storage")},
		Binding{Key: "ui.theme", Flag: fs.Lookup("theme")},
	)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "classic", cfg.UI.Theme, "unset flags keep lower layers")
}

func TestLoadRejectsInvalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TADA_STORAGE_BACKEND", "redis")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `storage.backend="redis"`)
	assert.NotContains(t, err.Error(), "Config.")
}

func TestValidateNamesConfigKeys(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "sepia"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, `invalid config: ui.theme="sepia" (oneof classic neon mono)`, err.Error())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
