// Package codec implements the release-config token format.
//
// A token is the standard padded base64 encoding of the plaintext XORed
// byte-wise against a repeating key:
//
//	token = base64( plaintext[i] ^ key[i mod len(key)] )
//
// The companion application embeds the same key and decodes tokens with the
// same two steps in reverse. The format carries no version or key
// identifier, so a key change requires a coordinated release of both sides.
//
// This is obfuscation for values fetched from object storage, not
// encryption: anyone holding the client binary can recover the key.
package codec

import (
	"fmt"
	"io"

	relerr "github.com/provide-io/relcfg/pkg/errors"
	"github.com/provide-io/relcfg/pkg/operations"
)

// Chain returns the operation chain that produces tokens for key.
func Chain(key []byte) operations.Chain {
	return operations.Chain{
		operations.NewXorOperation(key),
		operations.NewBase64Operation(),
	}
}

// Encode obfuscates plaintext into a token.
func Encode(plaintext, key []byte) (string, error) {
	if len(key) == 0 {
		return "", relerr.ErrInvalidKey
	}
	out, err := Chain(key).Apply(plaintext)
	if err != nil {
		return "", fmt.Errorf("encoding: %w", err)
	}
	return string(out), nil
}

// Decode recovers the plaintext bytes from a token. The result is not
// checked for UTF-8 or JSON validity.
func Decode(token string, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, relerr.ErrInvalidKey
	}
	out, err := Chain(key).Reverse([]byte(token))
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return out, nil
}

// TokenLen returns the token length for a plaintext of n bytes.
func TokenLen(n int) int {
	return int(Chain([]byte{0}).EstimateSize(int64(n)))
}

// EncodeStream writes the token for everything read from src to dst. The
// output is identical to Encode regardless of how src splits its reads.
func EncodeStream(dst io.Writer, src io.Reader, key []byte) error {
	if len(key) == 0 {
		return relerr.ErrInvalidKey
	}
	return Chain(key).ApplyStream(src, dst)
}

// DecodeStream writes the plaintext for the token read from src to dst.
// Corrupt input fails with ErrMalformedToken; bytes decoded before the
// corruption may already have been written to dst.
func DecodeStream(dst io.Writer, src io.Reader, key []byte) error {
	if len(key) == 0 {
		return relerr.ErrInvalidKey
	}
	return Chain(key).ReverseStream(src, dst)
}

// NewDecoder returns a reader of the plaintext for the token read from src.
func NewDecoder(src io.Reader, key []byte) (io.Reader, error) {
	if len(key) == 0 {
		return nil, relerr.ErrInvalidKey
	}
	return Chain(key).NewReader(src), nil
}
