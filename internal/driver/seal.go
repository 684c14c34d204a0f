package driver

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/provide-io/relcfg/pkg/checksums"
	"github.com/provide-io/relcfg/pkg/codec"
	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/utils/permissions"
)

// Seal reads the plaintext config, checks that it is JSON, writes its token
// and verifies the written token decodes back to the original bytes.
//
// Nothing is written unless every check passes: on failure a pre-existing
// token file is left exactly as it was.
func (d *Driver) Seal() (*Result, error) {
	cfg := d.cfg
	res := d.newResult()

	if err := cfg.Validate(); err != nil {
		d.console.Failure("Invalid configuration: %v", err)
		return res, err
	}
	if cfg.IsDefaultKey() {
		d.logger.Warn("⚠️ Using the built-in placeholder key; set RELCFG_KEY or RELCFG_KEY_FILE to match the client")
	}
	d.logger.Debug("🔑 Key loaded", "source", cfg.KeySource, "length", len(cfg.Key))

	d.console.Step("Reading %s ...", cfg.PlaintextPath)
	plain, err := readExisting(cfg.PlaintextPath)
	if err != nil {
		if errors.Is(err, relerr.ErrInputNotFound) {
			d.console.Failure("Input file not found: %s", cfg.PlaintextPath)
		} else {
			d.console.Failure("Failed to read %s: %v", cfg.PlaintextPath, err)
		}
		return res, err
	}
	res.PlaintextSize = int64(len(plain))
	d.logger.Debug("📄 Plaintext loaded", "path", cfg.PlaintextPath, "size", len(plain))

	if err := validateJSON(plain); err != nil {
		d.console.Failure("%s is not valid JSON", cfg.PlaintextPath)
		d.console.Step("  %v", err)
		return res, err
	}

	d.console.Step("Encoding ...")
	chain := codec.Chain(cfg.Key)
	res.Chain = chain.String()
	token, err := codec.Encode(plain, cfg.Key)
	if err != nil {
		d.console.Failure("Encoding failed: %v", err)
		return res, err
	}
	d.logger.Debug("🔐 Encoded", "chain", res.Chain, "token_size", len(token))

	staged, err := stage(cfg.TokenPath)
	if err != nil {
		d.console.Failure("Failed to write %s: %v", cfg.TokenPath, err)
		return res, err
	}
	defer staged.Discard()

	if err := staged.Write([]byte(token)); err != nil {
		d.console.Failure("Failed to write %s: %v", cfg.TokenPath, err)
		return res, err
	}

	d.console.Step("Verifying encoded result ...")
	written, err := staged.ReadBack()
	if err != nil {
		d.console.Failure("Failed to read back %s: %v", staged.Name(), err)
		return res, err
	}
	if err := d.verifyToken(written, plain); err != nil {
		return res, err
	}
	d.console.Success("Verification passed: decoded content matches the original")

	if err := staged.Commit(cfg.TokenMode); err != nil {
		d.console.Failure("Failed to write %s: %v", cfg.TokenPath, err)
		return res, err
	}

	res.TokenSize = int64(len(written))
	res.Checksum = checksums.Calculate(written, checksums.SHA256)

	d.logger.Info("✅ Token written",
		"path", cfg.TokenPath,
		"plaintext_size", res.PlaintextSize,
		"token_size", res.TokenSize,
		"checksum", res.Checksum,
		"mode", permissions.FormatOctal(cfg.TokenMode),
	)

	d.console.Success("Sealed successfully!")
	d.console.Info("📁", "Saved to: %s", cfg.TokenPath)
	d.console.Info("🔎", "Checksum: %s", res.Checksum)
	d.console.Rule()
	d.console.Info("📋", "Upload this file to object storage as %s", filepath.Base(cfg.TokenPath))
	d.console.Rule()

	return res, nil
}

// verifyToken decodes token and compares it with plain. A decode failure
// and a content mismatch are reported as different causes.
func (d *Driver) verifyToken(token, plain []byte) error {
	decoded, err := codec.Decode(string(token), d.cfg.Key)
	if err != nil {
		d.logger.Error("❌ Self-verification could not decode token", "error", err)
		d.console.Failure("Verification failed: token could not be decoded: %v", err)
		return relerr.Verification(err)
	}
	if !bytes.Equal(decoded, plain) {
		offset, _ := compareStreams(bytes.NewReader(decoded), bytes.NewReader(plain), 4096)
		d.logger.Error("❌ Self-verification mismatch",
			"decoded_size", len(decoded),
			"plaintext_size", len(plain),
			"first_difference", offset,
		)
		d.console.Failure("Verification failed: decoded content does not match the original")
		return relerr.Verification(fmt.Errorf("%w at byte %d", relerr.ErrVerificationMismatch, offset))
	}
	return nil
}
