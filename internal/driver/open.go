package driver

import (
	"errors"
	"fmt"

	"github.com/provide-io/relcfg/pkg/codec"
	relerr "github.com/provide-io/relcfg/pkg/errors"
)

// Stdout is the destination name that makes Open write to standard output.
const Stdout = "-"

// OpenOptions controls Open.
type OpenOptions struct {
	// Dest is the plaintext destination path, or Stdout
	Dest string
	// SkipValidation writes decoded bytes even if they are not JSON
	SkipValidation bool
}

// Open decodes the token file back into plaintext.
func (d *Driver) Open(opts OpenOptions) (*Result, error) {
	cfg := d.cfg
	res := d.newResult()
	if opts.Dest == "" {
		opts.Dest = Stdout
	}
	res.PlaintextPath = opts.Dest

	if err := cfg.ValidateKey(); err != nil {
		d.console.Failure("Invalid configuration: %v", err)
		return res, err
	}

	token, err := readExisting(cfg.TokenPath)
	if err != nil {
		if errors.Is(err, relerr.ErrInputNotFound) {
			d.console.Failure("Token file not found: %s", cfg.TokenPath)
		} else {
			d.console.Failure("Failed to read %s: %v", cfg.TokenPath, err)
		}
		return res, err
	}
	res.TokenSize = int64(len(token))

	plain, err := codec.Decode(string(token), cfg.Key)
	if err != nil {
		d.console.Failure("%s could not be decoded: %v", cfg.TokenPath, err)
		return res, err
	}
	res.PlaintextSize = int64(len(plain))
	res.Chain = codec.Chain(cfg.Key).String()

	if !opts.SkipValidation {
		if err := validateJSON(plain); err != nil {
			d.console.Failure("Decoded content is not valid JSON; wrong key?")
			d.console.Step("  %v", err)
			return res, err
		}
	}

	if opts.Dest == Stdout {
		if _, err := d.stdout.Write(plain); err != nil {
			return res, fmt.Errorf("writing plaintext: %w", err)
		}
		d.logger.Info("✅ Token decoded", "path", cfg.TokenPath, "size", len(plain))
		return res, nil
	}

	staged, err := stage(opts.Dest)
	if err != nil {
		d.console.Failure("Failed to write %s: %v", opts.Dest, err)
		return res, err
	}
	defer staged.Discard()

	if err := staged.Write(plain); err != nil {
		d.console.Failure("Failed to write %s: %v", opts.Dest, err)
		return res, err
	}
	if err := staged.Commit(cfg.PlaintextMode); err != nil {
		d.console.Failure("Failed to write %s: %v", opts.Dest, err)
		return res, err
	}

	d.logger.Info("✅ Token decoded", "path", cfg.TokenPath, "dest", opts.Dest, "size", len(plain))
	d.console.Success("Decoded %s", cfg.TokenPath)
	d.console.Info("📁", "Saved to: %s", opts.Dest)
	return res, nil
}
