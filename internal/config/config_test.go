package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	path := writeTempConfig(t, "media:\n  gif_dir: /from/file\n")
	t.Setenv("OLEDTOP_GIF_DIR", "/from/env")

	cfg, err := LoadLayered(CLIOverrides{GIFDir: "/from/cli", Preview: true}, path)
	require.NoError(t, err)

	assert.Equal(t, "/from/cli", cfg.Media.GIFDir)
	assert.True(t, cfg.Display.Preview)
}

func TestLoadLayered_EnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "display:\n  bus: 0\nmedia:\n  gif_dir: /from/file\n")
	t.Setenv("OLEDTOP_GIF_DIR", "/from/env")

	cfg, err := LoadLayered(CLIOverrides{}, path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Media.GIFDir)
	assert.Equal(t, 0, cfg.Display.Bus, "untouched file values survive the env layer")
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Display.Bus)
	assert.Equal(t, "0x3C", cfg.Display.Address)
	assert.False(t, cfg.Display.Preview)
	assert.Equal(t, "./gifs", cfg.Media.GIFDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ParsesFullFile(t *testing.T) {
	path := writeTempConfig(t, `
display:
  bus: 3
  address: "0x3D"
  preview: true
media:
  gif_dir: /opt/oledtop/gifs
logging:
  level: debug
  file: /var/log/oledtop.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Display.Bus)
	assert.Equal(t, "0x3D", cfg.Display.Address)
	assert.True(t, cfg.Display.Preview)
	assert.Equal(t, "/opt/oledtop/gifs", cfg.Media.GIFDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/var/log/oledtop.log", cfg.Logging.File)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_RejectsBadYAML(t *testing.T) {
	path := writeTempConfig(t, "display: [not, a, mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OLEDTOP_I2C_BUS", "2")
	t.Setenv("OLEDTOP_I2C_ADDR", "0x3D")
	t.Setenv("OLEDTOP_PREVIEW", "true")
	t.Setenv("OLEDTOP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Display.Bus)
	assert.Equal(t, "0x3D", cfg.Display.Address)
	assert.True(t, cfg.Display.Preview)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0x3C", 0x3C, false},
		{"0x3d", 0x3D, false},
		{"60", 60, false},
		{"", 0, true},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		got, err := DisplayConfig{Address: tt.in}.ParseAddress()
		if tt.wantErr {
			assert.Error(t, err, "address %q", tt.in)
			continue
		}
		require.NoError(t, err, "address %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Display.Bus = -1
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Display.Address = "zz"
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Media.GIFDir = ""
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Logging.Level = "chatty"
	assert.Error(t, bad.Validate())
}

func TestWriteConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Display.Bus = 7
	require.NoError(t, WriteConfig(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
