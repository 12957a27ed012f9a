package netcopy

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, "base_dir: "+dir+"\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, DefaultPayloadName, cfg.PayloadName)
	assert.False(t, cfg.AtomicWrite)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_AllKeys(t *testing.T) {
	path := writeSettings(t, `
base_dir: /mnt/share
payload_name: clip.nk
atomic_write: true
log_dir: /var/log/netcopy
log_level: debug
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/mnt/share"), cfg.BaseDir)
	assert.Equal(t, "clip.nk", cfg.PayloadName)
	assert.True(t, cfg.AtomicWrite)
	assert.Equal(t, "/var/log/netcopy", cfg.LogDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	path := writeSettings(t, "base_dir: ~/netcopy\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "netcopy"), cfg.BaseDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
		assert.ErrorIs(t, err, ErrConfigMissing)
	})
	t.Run("missing base_dir", func(t *testing.T) {
		_, err := LoadConfig(writeSettings(t, "payload_name: a.nk\n"), nil)
		assert.ErrorIs(t, err, ErrConfigMissing)
	})
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeSettings(t, "base_dir: [oops\n"), nil)
		assert.ErrorIs(t, err, ErrConfigMalformed)
	})
	t.Run("payload name with separator", func(t *testing.T) {
		_, err := LoadConfig(writeSettings(t, "base_dir: /x\npayload_name: a/b.nk\n"), nil)
		assert.ErrorIs(t, err, ErrConfigMalformed)
	})
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, "base_dir: /from/file\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-dir", "", "")
	flags.Bool("atomic-write", false, "")
	flags.String("payload-name", "", "")
	require.NoError(t, flags.Parse([]string{"--base-dir", dir, "--atomic-write"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.True(t, cfg.AtomicWrite)
	assert.Equal(t, DefaultPayloadName, cfg.PayloadName)
}

func TestLoadConfig_FlagWithoutFile(t *testing.T) {
	dir := t.TempDir()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--base-dir", dir}))

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
}
