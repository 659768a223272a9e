package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"DB_USER",
		"DB_PORT",
		"IDECONFIG_PROJECT_DIR",
		"IDECONFIG_LOG_LEVEL",
		"IDECONFIG_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ideconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "alice")
	t.Setenv("DB_PORT", "3307")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.DB.User)
	assert.Equal(t, "3307", cfg.DB.Port)
	assert.Equal(t, DefaultProjectDir, cfg.ProjectDir)
	assert.Equal(t, DefaultIdeaDir, cfg.IdeaDir)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func TestLoad_UnsetDBValuesAreEmpty(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.DB.User)
	assert.Empty(t, cfg.DB.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
project_dir: /srv/app
idea_dir: .idea-local
db:
  user: bob
  port: "3306"
log:
  level: debug
  format: json
`)
	t.Setenv("DB_PORT", "3307")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/app", cfg.ProjectDir)
	assert.Equal(t, ".idea-local", cfg.IdeaDir)
	assert.Equal(t, "bob", cfg.DB.User)
	assert.Equal(t, "3307", cfg.DB.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultIdeaDir, cfg.IdeaDir)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
		{name: "malformed yaml", path: writeFile(t, "db: [unterminated")},
		{name: "unknown field", path: writeFile(t, "database_port: 1\n")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			require.Error(t, err)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "relative idea dir",
			cfg:  Config{ProjectDir: "/work", IdeaDir: ".idea"},
			want: "/work/.idea/php.xml",
		},
		{
			name: "absolute idea dir",
			cfg:  Config{ProjectDir: "/work", IdeaDir: "/tmp/idea"},
			want: "/tmp/idea/php.xml",
		},
		{
			name: "current directory",
			cfg:  Config{ProjectDir: ".", IdeaDir: ".idea"},
			want: ".idea/php.xml",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.Path("php.xml"))
		})
	}
}
