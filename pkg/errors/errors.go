// Package errors defines the closed set of failure kinds reported by relcfg.
// Callers match them with errors.Is; every wrapped error keeps its kind.
package errors

import "errors"

var (
	// Configuration errors ⚙️
	ErrInvalidKey = errors.New("❌ invalid key: key must not be empty")

	// Input errors 📄
	ErrInputNotFound = errors.New("❌ input file not found")
	ErrInvalidJSON   = errors.New("❌ input is not valid JSON")

	// Token errors 🔐
	ErrMalformedToken = errors.New("❌ malformed token")

	// Verification errors 🔍
	ErrVerificationFailed   = errors.New("❌ verification failed")
	ErrVerificationMismatch = errors.New("❌ decoded content does not match original")
	ErrChecksumMismatch     = errors.New("❌ checksum mismatch")
)

// Verification wraps cause so that it matches both ErrVerificationFailed and
// the specific cause (ErrMalformedToken, ErrVerificationMismatch, ...).
func Verification(cause error) error {
	if cause == nil {
		return nil
	}
	return errors.Join(ErrVerificationFailed, cause)
}

// IsVerification reports whether err is any verification failure.
func IsVerification(err error) bool {
	return errors.Is(err, ErrVerificationFailed) ||
		errors.Is(err, ErrVerificationMismatch) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrChecksumMismatch)
}
