// Package config resolves relcfg settings from defaults, environment
// variables and command-line flags, in increasing order of precedence.
// The log level is resolved separately by logging.GetLogLevel.
package config

import (
	"bytes"
	"fmt"
	"os"

	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/utils"
	"github.com/provide-io/relcfg/pkg/utils/permissions"
)

// Default file names, relative to the working directory.
const (
	DefaultInput  = "release_config_plaintext.json"
	DefaultOutput = "release_config.json"
)

// Environment variables
const (
	EnvInput   = "RELCFG_INPUT"
	EnvOutput  = "RELCFG_OUTPUT"
	EnvKey     = "RELCFG_KEY"
	EnvKeyFile = "RELCFG_KEY_FILE"
	EnvMode    = "RELCFG_MODE"
)

// Config holds the settings of one run.
type Config struct {
	// PlaintextPath is the JSON config file
	PlaintextPath string
	// TokenPath is the obfuscated file uploaded to object storage
	TokenPath string

	Key       []byte
	KeySource string

	// TokenMode applies to written token files, PlaintextMode to decoded
	// plaintext files.
	TokenMode     os.FileMode
	PlaintextMode os.FileMode
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PlaintextPath: DefaultInput,
		TokenPath:     DefaultOutput,
		Key:           append([]byte(nil), utils.DefaultKey...),
		KeySource:     "default",
		TokenMode:     permissions.DefaultTokenPerms,
		PlaintextMode: permissions.DefaultPlaintextPerms,
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvInput); v != "" {
		cfg.PlaintextPath = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.TokenPath = v
	}

	if v := os.Getenv(EnvMode); v != "" {
		mode, err := permissions.ParseOctalString(v, permissions.DefaultTokenPerms)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMode, err)
		}
		cfg.TokenMode = mode
	}

	// A key file wins over an inline key. An inline key that is set but
	// empty is kept empty so Validate reports it instead of silently
	// falling back to the default.
	if path := os.Getenv(EnvKeyFile); path != "" {
		if err := cfg.SetKeyFile(path); err != nil {
			return nil, err
		}
	} else if v, ok := os.LookupEnv(EnvKey); ok {
		cfg.Key = []byte(v)
		cfg.KeySource = EnvKey
	}

	return cfg, nil
}

// SetKeyFile loads the key from path. One trailing newline is dropped so
// files written by editors or `echo` work.
func (c *Config) SetKeyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading key file: %w", err)
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	c.Key = data
	c.KeySource = "file:" + path
	return nil
}

// IsDefaultKey reports whether the built-in placeholder key is in use.
func (c *Config) IsDefaultKey() bool {
	return bytes.Equal(c.Key, utils.DefaultKey)
}

// ValidateKey reports ErrInvalidKey for an empty key.
func (c *Config) ValidateKey() error {
	if len(c.Key) == 0 {
		return fmt.Errorf("%w (source: %s)", relerr.ErrInvalidKey, c.KeySource)
	}
	return nil
}

// Validate checks settings that must hold before any file is touched.
func (c *Config) Validate() error {
	if err := c.ValidateKey(); err != nil {
		return err
	}
	if c.PlaintextPath == "" {
		return fmt.Errorf("plaintext path must not be empty")
	}
	if c.TokenPath == "" {
		return fmt.Errorf("token path must not be empty")
	}
	return nil
}
