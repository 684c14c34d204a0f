package pkg

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/relcfg/internal/config"
	"github.com/provide-io/relcfg/internal/driver"
	"github.com/provide-io/relcfg/pkg/logging"
)

// VerifyWithLogger checks that cfg.TokenPath decodes to cfg.PlaintextPath and,
// when expectedChecksum is set, that the token file matches it.
func VerifyWithLogger(cfg *config.Config, expectedChecksum string, logger hclog.Logger) (*Result, error) {
	logger.Info("Verifying token", "token", cfg.TokenPath, "plaintext", cfg.PlaintextPath)

	res, err := driver.New(cfg, logger).Verify(expectedChecksum)
	if err != nil {
		logger.Error("✗ Token verification failed", "error", err)
		return res, err
	}

	logger.Info("✓ Token verification passed", "checksum", res.Checksum)
	return res, nil
}

// Verify checks tokenPath against plaintextPath without console output.
func Verify(plaintextPath, tokenPath string, key []byte) error {
	d := driver.New(quietConfig(plaintextPath, tokenPath, key), nil,
		driver.WithConsole(logging.NewConsole(io.Discard)))
	_, err := d.Verify("")
	return err
}
