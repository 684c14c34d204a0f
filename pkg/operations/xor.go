package operations

import (
	"io"

	"github.com/provide-io/relcfg/pkg/utils"
)

// XorOperation implements repeating-key XOR. It is its own inverse.
type XorOperation struct {
	BaseOperation
	key []byte
}

// NewXorOperation creates a new XOR operation. The key is copied; an empty
// key is reported by every method that transforms data.
func NewXorOperation(key []byte) *XorOperation {
	return &XorOperation{
		BaseOperation: BaseOperation{
			OpID:   OP_XOR,
			OpName: "XOR",
		},
		key: append([]byte(nil), key...),
	}
}

// Apply XORs input against the key starting at key position 0
func (o *XorOperation) Apply(input []byte) ([]byte, error) {
	return utils.XOR(input, o.key)
}

// Reverse is Apply; XOR is self-inverse
func (o *XorOperation) Reverse(input []byte) ([]byte, error) {
	return utils.XOR(input, o.key)
}

// NewWriter returns a writer that XORs written bytes, tracking the key
// position across calls.
func (o *XorOperation) NewWriter(w io.Writer) io.WriteCloser {
	return &xorWriter{w: w, key: o.key}
}

// NewReader returns a reader that XORs bytes read from r.
func (o *XorOperation) NewReader(r io.Reader) io.Reader {
	return &xorReader{r: r, key: o.key}
}

type xorWriter struct {
	w      io.Writer
	key    []byte
	offset int64
	buf    []byte
}

func (x *xorWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		n := len(p)
		if n > ChunkSize {
			n = ChunkSize
		}
		if cap(x.buf) < n {
			x.buf = make([]byte, n)
		}
		chunk := x.buf[:n]
		copy(chunk, p[:n])
		if err := utils.XORInPlace(chunk, x.key, x.offset); err != nil {
			return written, err
		}
		m, err := x.w.Write(chunk)
		x.offset += int64(m)
		written += m
		if err != nil {
			return written, err
		}
		if m < n {
			return written, io.ErrShortWrite
		}
		p = p[n:]
	}
	return written, nil
}

func (x *xorWriter) Close() error {
	return nil
}

type xorReader struct {
	r      io.Reader
	key    []byte
	offset int64
}

func (x *xorReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	if n > 0 {
		if xerr := utils.XORInPlace(p[:n], x.key, x.offset); xerr != nil {
			return 0, xerr
		}
		x.offset += int64(n)
	}
	return n, err
}
