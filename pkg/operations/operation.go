package operations

import (
	"fmt"
	"io"
)

// Operation identifiers. The token format is always XOR followed by BASE64.
const (
	// No operation - raw data
	OP_NONE = 0x00

	// Obfuscation operations (0x30-0x3F)
	OP_XOR = 0x30 // Repeating-key XOR

	// Text encoding operations (0x40-0x4F)
	OP_BASE64 = 0x40 // RFC 4648 standard base64 with padding
)

// ChunkSize is the read size used by the streaming forms.
const ChunkSize = 64 * 1024

// Operation represents a single reversible transformation
type Operation interface {
	// ID returns the operation identifier (e.g., OP_XOR)
	ID() uint8

	// Name returns the human-readable name
	Name() string

	// Apply applies the operation to input data
	Apply(input []byte) ([]byte, error)

	// Reverse reverses the operation
	Reverse(input []byte) ([]byte, error)

	// NewWriter returns a writer that applies the operation to everything
	// written to it and passes the result to w. Close flushes buffered
	// output but does not close w.
	NewWriter(w io.Writer) io.WriteCloser

	// NewReader returns a reader that reverses the operation on r.
	NewReader(r io.Reader) io.Reader

	// EstimateSize estimates the output size given input size
	EstimateSize(inputSize int64) int64
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

func (o *BaseOperation) EstimateSize(inputSize int64) int64 {
	return inputSize // Default: same size
}

// ApplyStream applies op to a stream
func ApplyStream(op Operation, input io.Reader, output io.Writer) error {
	w := op.NewWriter(output)
	if _, err := io.Copy(w, input); err != nil {
		w.Close()
		return fmt.Errorf("applying %s: %w", op.Name(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flushing %s: %w", op.Name(), err)
	}
	return nil
}

// ReverseStream reverses op on a stream
func ReverseStream(op Operation, input io.Reader, output io.Writer) error {
	if _, err := io.Copy(output, op.NewReader(input)); err != nil {
		return fmt.Errorf("reversing %s: %w", op.Name(), err)
	}
	return nil
}

// GetName returns the name of an operation by ID
func GetName(id uint8) string {
	switch id {
	case OP_NONE:
		return "NONE"
	case OP_XOR:
		return "XOR"
	case OP_BASE64:
		return "BASE64"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}
