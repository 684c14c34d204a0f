package utils

import (
	relerr "github.com/provide-io/relcfg/pkg/errors"
)

// DefaultKey is the key shared with the companion application. It must stay
// byte-identical to the key embedded there.
var DefaultKey = []byte("YOUR_ENCRYPTION_KEY_HERE_24CH")

// XOR encodes data with repeating XOR key
func XOR(data []byte, key []byte) ([]byte, error) {
	return XORAt(data, key, 0)
}

// XORAt encodes data as if it started at position offset of a longer message,
// so chunks of one stream can be processed independently.
func XORAt(data []byte, key []byte, offset int64) ([]byte, error) {
	if len(key) == 0 {
		return nil, relerr.ErrInvalidKey
	}
	result := make([]byte, len(data))
	keyLen := int64(len(key))
	start := offset % keyLen
	for i := range data {
		result[i] = data[i] ^ key[(start+int64(i))%keyLen]
	}
	return result, nil
}

// XORInPlace is XORAt without the allocation. data is overwritten.
func XORInPlace(data []byte, key []byte, offset int64) error {
	if len(key) == 0 {
		return relerr.ErrInvalidKey
	}
	keyLen := int64(len(key))
	start := offset % keyLen
	for i := range data {
		data[i] ^= key[(start+int64(i))%keyLen]
	}
	return nil
}
