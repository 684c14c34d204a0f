// Package pkg is the library entry point of relcfg.
package pkg

import (
	"bytes"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/relcfg/internal/config"
	"github.com/provide-io/relcfg/internal/driver"
	"github.com/provide-io/relcfg/pkg/logging"
)

// Result describes a completed seal, open or verify run.
type Result = driver.Result

// OpenOptions controls OpenWithLogger.
type OpenOptions = driver.OpenOptions

func quietConfig(plaintextPath, tokenPath string, key []byte) *config.Config {
	cfg := config.Default()
	cfg.PlaintextPath = plaintextPath
	cfg.TokenPath = tokenPath
	cfg.Key = append([]byte(nil), key...)
	cfg.KeySource = "api"
	return cfg
}

// Seal writes the token for plaintextPath to tokenPath without console output.
func Seal(plaintextPath, tokenPath string, key []byte) (*Result, error) {
	d := driver.New(quietConfig(plaintextPath, tokenPath, key), nil,
		driver.WithConsole(logging.NewConsole(io.Discard)))
	return d.Seal()
}

// SealWithLogger runs the seal flow with operator output on stdout.
func SealWithLogger(cfg *config.Config, logger hclog.Logger) (*Result, error) {
	return driver.New(cfg, logger).Seal()
}

// Open returns the validated plaintext held in tokenPath.
func Open(tokenPath string, key []byte) ([]byte, error) {
	var buf bytes.Buffer
	d := driver.New(quietConfig("", tokenPath, key), nil,
		driver.WithConsole(logging.NewConsole(io.Discard)),
		driver.WithStdout(&buf))
	if _, err := d.Open(OpenOptions{Dest: driver.Stdout}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OpenWithLogger runs the open flow with operator output on stdout.
func OpenWithLogger(cfg *config.Config, opts OpenOptions, logger hclog.Logger) (*Result, error) {
	return driver.New(cfg, logger).Open(opts)
}
