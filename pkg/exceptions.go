package pkg

import relerr "github.com/provide-io/relcfg/pkg/errors"

// Error kinds, re-exported so library callers need a single import.
var (
	ErrInvalidKey           = relerr.ErrInvalidKey
	ErrInputNotFound        = relerr.ErrInputNotFound
	ErrInvalidJSON          = relerr.ErrInvalidJSON
	ErrMalformedToken       = relerr.ErrMalformedToken
	ErrVerificationFailed   = relerr.ErrVerificationFailed
	ErrVerificationMismatch = relerr.ErrVerificationMismatch
	ErrChecksumMismatch     = relerr.ErrChecksumMismatch
)
