package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/provide-io/relcfg/internal/config"
	"github.com/provide-io/relcfg/pkg/codec"
	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory with a clean environment.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{config.EnvInput, config.EnvOutput, config.EnvKey, config.EnvKeyFile, config.EnvMode} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("RELCFG_LOG_LEVEL", "error")
	return dir
}

func TestRun_DefaultSeal(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(config.DefaultInput, []byte(`{"a":1}`), 0o644))

	assert.Equal(t, ExitOK, run(nil))

	token, err := os.ReadFile(config.DefaultOutput)
	require.NoError(t, err)
	plain, err := codec.Decode(string(token), utils.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(plain))

	assert.Equal(t, ExitOK, run([]string{"verify"}))
}

func TestRun_ExitCodes(t *testing.T) {
	t.Run("input not found", func(t *testing.T) {
		inTempDir(t)
		assert.Equal(t, ExitInputNotFound, run([]string{"seal"}))
		assert.NoFileExists(t, config.DefaultOutput)
	})

	t.Run("invalid json", func(t *testing.T) {
		inTempDir(t)
		require.NoError(t, os.WriteFile(config.DefaultInput, []byte(`{"a":`), 0o644))
		assert.Equal(t, ExitInvalidInput, run(nil))
		assert.NoFileExists(t, config.DefaultOutput)
	})

	t.Run("empty key", func(t *testing.T) {
		inTempDir(t)
		t.Setenv(config.EnvKey, "")
		require.NoError(t, os.WriteFile(config.DefaultInput, []byte(`{}`), 0o644))
		assert.Equal(t, ExitConfigError, run(nil))
		assert.NoFileExists(t, config.DefaultOutput)
	})

	t.Run("bad mode", func(t *testing.T) {
		inTempDir(t)
		assert.Equal(t, ExitConfigError, run([]string{"seal", "--mode", "abc"}))
	})

	t.Run("missing key file", func(t *testing.T) {
		inTempDir(t)
		assert.Equal(t, ExitConfigError, run([]string{"seal", "--key-file", "nope"}))
	})

	t.Run("verify mismatch", func(t *testing.T) {
		inTempDir(t)
		require.NoError(t, os.WriteFile(config.DefaultInput, []byte(`{"a":1}`), 0o644))
		require.Equal(t, ExitOK, run(nil))
		require.NoError(t, os.WriteFile(config.DefaultInput, []byte(`{"a":2}`), 0o644))
		assert.Equal(t, ExitVerifyFailed, run([]string{"verify"}))
	})

	t.Run("usage", func(t *testing.T) {
		inTempDir(t)
		assert.Equal(t, ExitUsage, run([]string{"--no-such-flag"}))
		assert.Equal(t, ExitUsage, run([]string{"seal", "extra-arg"}))
	})

	t.Run("version", func(t *testing.T) {
		inTempDir(t)
		assert.Equal(t, ExitOK, run([]string{"--version"}))
	})
}

func TestRun_FlagsAndOpen(t *testing.T) {
	dir := inTempDir(t)
	keyFile := filepath.Join(dir, "key.txt")
	require.NoError(t, os.WriteFile(keyFile, []byte("abc\n"), 0o600))
	require.NoError(t, os.WriteFile("in.json", []byte(`{}`), 0o644))

	require.Equal(t, ExitOK, run([]string{"seal", "-i", "in.json", "-o", "out.txt", "--key-file", keyFile, "--mode", "600"}))

	token, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	assert.Equal(t, "Gh8=", string(token))

	require.Equal(t, ExitOK, run([]string{"open", "-i", "out.txt", "-o", "back.json", "--key-file", keyFile}))
	back, err := os.ReadFile("back.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(back))

	assert.Equal(t, ExitOK, run([]string{"verify", "--plaintext", "in.json", "--token", "out.txt", "--key-file", keyFile}))
	assert.Equal(t, ExitVerifyFailed, run([]string{"verify", "--plaintext", "in.json", "--token", "out.txt", "--key-file", keyFile, "--checksum", "sha256:00"}))

	// Wrong key: decoded bytes are not JSON
	assert.Equal(t, ExitInvalidInput, run([]string{"open", "-i", "out.txt", "-o", "x.json"}))
	assert.NoFileExists(t, "x.json")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("wrapped: %w", relerr.ErrInvalidKey), ExitConfigError},
		{relerr.ErrInputNotFound, ExitInputNotFound},
		{relerr.ErrInvalidJSON, ExitInvalidInput},
		{relerr.ErrMalformedToken, ExitVerifyFailed},
		{relerr.Verification(relerr.ErrVerificationMismatch), ExitVerifyFailed},
		{errors.New("disk full"), ExitIOError},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}

	var ee *exitError
	require.True(t, errors.As(withExitCode(errors.New("disk full")), &ee))
	assert.False(t, ee.reported)
	require.True(t, errors.As(withExitCode(relerr.ErrInvalidJSON), &ee))
	assert.True(t, ee.reported)
	assert.Nil(t, withExitCode(nil))
}
