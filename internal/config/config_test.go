package config

import (
	"os"
	"path/filepath"
	"testing"

	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvInput, EnvOutput, EnvKey, EnvKeyFile, EnvMode} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultInput, cfg.PlaintextPath)
	assert.Equal(t, DefaultOutput, cfg.TokenPath)
	assert.Equal(t, utils.DefaultKey, cfg.Key)
	assert.Equal(t, "default", cfg.KeySource)
	assert.Equal(t, os.FileMode(0o644), cfg.TokenMode)
	assert.Equal(t, os.FileMode(0o600), cfg.PlaintextMode)
	assert.True(t, cfg.IsDefaultKey())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInput, "in.json")
	t.Setenv(EnvOutput, "out.txt")
	t.Setenv(EnvKey, "s3cret")
	t.Setenv(EnvMode, "0600")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "in.json", cfg.PlaintextPath)
	assert.Equal(t, "out.txt", cfg.TokenPath)
	assert.Equal(t, []byte("s3cret"), cfg.Key)
	assert.Equal(t, EnvKey, cfg.KeySource)
	assert.Equal(t, os.FileMode(0o600), cfg.TokenMode)
	assert.False(t, cfg.IsDefaultKey())
}

func TestLoad_EmptyKeyIsNotReplacedByDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKey, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Key)
	assert.ErrorIs(t, cfg.Validate(), relerr.ErrInvalidKey)
}

func TestLoad_KeyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("from-file\r\n"), 0o600))
	t.Setenv(EnvKey, "ignored")
	t.Setenv(EnvKeyFile, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("from-file"), cfg.Key)
	assert.Equal(t, "file:"+path, cfg.KeySource)
}

func TestLoad_KeyFileKeepsInnerWhitespace(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte(" key \n\n"), 0o600))

	cfg := Default()
	require.NoError(t, cfg.SetKeyFile(path))
	assert.Equal(t, []byte(" key \n"), cfg.Key)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKeyFile, filepath.Join(t.TempDir(), "missing"))
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv(EnvMode, "rwx")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate_Paths(t *testing.T) {
	cfg := Default()
	cfg.PlaintextPath = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TokenPath = ""
	assert.Error(t, cfg.Validate())
}
