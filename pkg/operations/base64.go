package operations

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	relerr "github.com/provide-io/relcfg/pkg/errors"
)

// tokenEncoding rejects non-zero trailing bits so every token has exactly
// one accepted spelling.
var tokenEncoding = base64.StdEncoding.Strict()

// Base64Operation implements standard padded base64
type Base64Operation struct {
	BaseOperation
}

// NewBase64Operation creates a new BASE64 operation
func NewBase64Operation() *Base64Operation {
	return &Base64Operation{
		BaseOperation: BaseOperation{
			OpID:   OP_BASE64,
			OpName: "BASE64",
		},
	}
}

// Apply encodes input as base64 text
func (o *Base64Operation) Apply(input []byte) ([]byte, error) {
	out := make([]byte, tokenEncoding.EncodedLen(len(input)))
	tokenEncoding.Encode(out, input)
	return out, nil
}

// Reverse decodes base64 text
func (o *Base64Operation) Reverse(input []byte) ([]byte, error) {
	out := make([]byte, tokenEncoding.DecodedLen(len(input)))
	n, err := tokenEncoding.Decode(out, input)
	if err != nil {
		return nil, malformed(err)
	}
	return out[:n], nil
}

// NewWriter returns a base64 encoder; Close writes the final padded quantum
func (o *Base64Operation) NewWriter(w io.Writer) io.WriteCloser {
	return base64.NewEncoder(tokenEncoding, w)
}

// NewReader returns a base64 decoder that reports corrupt input as
// ErrMalformedToken
func (o *Base64Operation) NewReader(r io.Reader) io.Reader {
	return &base64Reader{r: base64.NewDecoder(tokenEncoding, r)}
}

// EstimateSize returns the exact encoded size
func (o *Base64Operation) EstimateSize(inputSize int64) int64 {
	return (inputSize + 2) / 3 * 4
}

type base64Reader struct {
	r io.Reader
}

func (b *base64Reader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		return n, malformed(err)
	}
	return n, err
}

// malformed classifies decoder failures. A truncated final quantum shows up
// as io.ErrUnexpectedEOF from the streaming decoder.
func malformed(err error) error {
	var corrupt base64.CorruptInputError
	switch {
	case errors.As(err, &corrupt):
		return fmt.Errorf("%w: illegal base64 data at input byte %d", relerr.ErrMalformedToken, int64(corrupt))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: truncated base64 data", relerr.ErrMalformedToken)
	default:
		return err
	}
}
