package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/provide-io/relcfg/pkg/checksums"
	"github.com/provide-io/relcfg/pkg/codec"
	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/operations"
)

// Verify checks that the token file decodes to the plaintext file. When
// expectedChecksum is set, the token file must also match it. The token is
// decoded as a stream, so neither file is loaded whole.
func (d *Driver) Verify(expectedChecksum string) (*Result, error) {
	cfg := d.cfg
	res := d.newResult()
	res.Chain = codec.Chain(cfg.Key).String()

	if err := cfg.Validate(); err != nil {
		d.console.Failure("Invalid configuration: %v", err)
		return res, err
	}

	tokenFile, err := openExisting(cfg.TokenPath)
	if err != nil {
		d.reportOpenError(cfg.TokenPath, err)
		return res, err
	}
	defer tokenFile.Close()

	plainFile, err := openExisting(cfg.PlaintextPath)
	if err != nil {
		d.reportOpenError(cfg.PlaintextPath, err)
		return res, err
	}
	defer plainFile.Close()

	if info, err := tokenFile.Stat(); err == nil {
		res.TokenSize = info.Size()
	}
	if info, err := plainFile.Stat(); err == nil {
		res.PlaintextSize = info.Size()
	}

	sum, err := checksums.CalculateReader(tokenFile, checksums.SHA256)
	if err != nil {
		return res, fmt.Errorf("hashing %s: %w", cfg.TokenPath, err)
	}
	res.Checksum = sum

	if expectedChecksum != "" {
		ok, err := verifyReaderChecksum(tokenFile, sum, expectedChecksum)
		if err != nil {
			d.console.Failure("Invalid checksum %q: %v", expectedChecksum, err)
			return res, err
		}
		if !ok {
			d.logger.Error("❌ Token checksum mismatch", "expected", expectedChecksum, "actual", sum)
			d.console.Failure("Checksum mismatch for %s", cfg.TokenPath)
			return res, relerr.Verification(fmt.Errorf("%w: expected %s", relerr.ErrChecksumMismatch, expectedChecksum))
		}
		d.logger.Info("✓ Token checksum valid", "checksum", expectedChecksum)
	}

	if _, err := tokenFile.Seek(0, io.SeekStart); err != nil {
		return res, fmt.Errorf("rewinding %s: %w", cfg.TokenPath, err)
	}
	decoder, err := codec.NewDecoder(tokenFile, cfg.Key)
	if err != nil {
		return res, err
	}

	offset, err := compareStreams(decoder, plainFile, operations.ChunkSize)
	if err != nil {
		if errors.Is(err, relerr.ErrMalformedToken) {
			d.console.Failure("Verification failed: token could not be decoded: %v", err)
			return res, relerr.Verification(err)
		}
		return res, fmt.Errorf("comparing %s with %s: %w", cfg.TokenPath, cfg.PlaintextPath, err)
	}
	if offset >= 0 {
		d.logger.Error("❌ Token does not match plaintext", "first_difference", offset)
		d.console.Failure("Verification failed: %s does not decode to %s", cfg.TokenPath, cfg.PlaintextPath)
		return res, relerr.Verification(fmt.Errorf("%w at byte %d", relerr.ErrVerificationMismatch, offset))
	}

	d.logger.Info("✓ Token matches plaintext", "token", cfg.TokenPath, "plaintext", cfg.PlaintextPath)
	d.console.Success("Verification passed: %s decodes to %s", cfg.TokenPath, cfg.PlaintextPath)
	return res, nil
}

// verifyReaderChecksum compares actual (already computed with SHA-256) with
// expected, recomputing with expected's algorithm when it differs.
func verifyReaderChecksum(r io.ReadSeeker, actual, expected string) (bool, error) {
	algo, want, err := checksums.Parse(expected)
	if err != nil {
		return false, err
	}
	if algo != checksums.SHA256 {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return false, err
		}
		if actual, err = checksums.CalculateReader(r, algo); err != nil {
			return false, err
		}
	}
	_, got, _ := checksums.Parse(actual)
	return got == want, nil
}

func (d *Driver) reportOpenError(path string, err error) {
	if errors.Is(err, relerr.ErrInputNotFound) {
		d.console.Failure("File not found: %s", path)
		return
	}
	d.console.Failure("Failed to open %s: %v", path, err)
}
