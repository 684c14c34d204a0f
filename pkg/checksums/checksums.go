// Package checksums computes prefixed checksums of tokens.
//
// Format: "algorithm:hexvalue" (e.g., "sha256:c0ffee123...", "adler32:babe1337")
package checksums

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"io"
	"strings"
)

// Algorithm represents supported checksum algorithms
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA512
	Adler32
)

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	case Adler32:
		return "adler32"
	default:
		return "unknown"
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case SHA512:
		return sha512.New()
	case Adler32:
		return adler32.New()
	default:
		return sha256.New()
	}
}

// Parse parses a checksum string that may or may not have a prefix
func Parse(checksumStr string) (Algorithm, string, error) {
	if prefix, value, ok := strings.Cut(checksumStr, ":"); ok {
		var algo Algorithm
		switch strings.ToLower(prefix) {
		case "sha256":
			algo = SHA256
		case "sha512":
			algo = SHA512
		case "adler32":
			algo = Adler32
		default:
			return SHA256, "", fmt.Errorf("unknown checksum algorithm: %s", prefix)
		}
		if value == "" {
			return algo, "", fmt.Errorf("invalid checksum format: %s", checksumStr)
		}
		return algo, strings.ToLower(value), nil
	}

	// Bare hex - guess based on length
	var algo Algorithm
	switch len(checksumStr) {
	case 128:
		algo = SHA512
	case 8:
		algo = Adler32
	default:
		algo = SHA256
	}

	return algo, strings.ToLower(checksumStr), nil
}

// Calculate calculates checksum with prefix
func Calculate(data []byte, algorithm Algorithm) string {
	h := algorithm.newHash()
	h.Write(data)
	return format(algorithm, h)
}

// CalculateReader calculates the checksum of everything read from r
func CalculateReader(r io.Reader, algorithm Algorithm) (string, error) {
	h := algorithm.newHash()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing: %w", err)
	}
	return format(algorithm, h), nil
}

// Verify verifies data against a checksum string
func Verify(data []byte, checksumStr string) (bool, error) {
	algo, expected, err := Parse(checksumStr)
	if err != nil {
		return false, err
	}

	_, actual, _ := strings.Cut(Calculate(data, algo), ":")
	return actual == expected, nil
}

func format(algorithm Algorithm, h hash.Hash) string {
	if algorithm != SHA512 && algorithm != Adler32 {
		algorithm = SHA256
	}
	return algorithm.String() + ":" + hex.EncodeToString(h.Sum(nil))
}
