package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JOBTRACKER_HOME", "")
	t.Setenv("JOBTRACKER_LOG_LEVEL", "")
	t.Setenv("JOBTRACKER_LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NotEmpty(t, cfg.Home, "install directory falls back to the executable's directory")
	assert.True(t, filepath.IsAbs(cfg.Home))
}

func TestLoad_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("JOBTRACKER_HOME", home)
	t.Setenv("JOBTRACKER_POINTER_FILE", filepath.Join(home, "ptr.json"))
	t.Setenv("JOBTRACKER_LOG_LEVEL", "debug")
	t.Setenv("JOBTRACKER_LOG_FORMAT", "json")
	t.Setenv("JOBTRACKER_LOG_FILE", filepath.Join(home, "out.log"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, filepath.Join(home, "ptr.json"), cfg.PointerFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(home, "out.log"), cfg.LogFile)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad level", "JOBTRACKER_LOG_LEVEL", "verbose", "JOBTRACKER_LOG_LEVEL"},
		{"bad format", "JOBTRACKER_LOG_FORMAT", "xml", "JOBTRACKER_LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_RelativeHomeIsMadeAbsolute(t *testing.T) {
	t.Setenv("JOBTRACKER_HOME", "relative/home")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Home))
	assert.Equal(t, "home", filepath.Base(cfg.Home))
}
