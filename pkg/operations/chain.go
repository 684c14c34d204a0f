package operations

import (
	"fmt"
	"io"
	"strings"
)

// Chain is an ordered list of operations. Apply runs them first to last;
// Reverse runs them last to first.
type Chain []Operation

// String renders the chain in pipe format, e.g. "xor|base64"
func (c Chain) String() string {
	if len(c) == 0 {
		return "raw"
	}
	names := make([]string, len(c))
	for i, op := range c {
		names[i] = strings.ToLower(op.Name())
	}
	return strings.Join(names, "|")
}

// IDs returns the operation identifiers in execution order
func (c Chain) IDs() []uint8 {
	ids := make([]uint8, len(c))
	for i, op := range c {
		ids[i] = op.ID()
	}
	return ids
}

// EstimateSize estimates the output size of the whole chain
func (c Chain) EstimateSize(inputSize int64) int64 {
	size := inputSize
	for _, op := range c {
		size = op.EstimateSize(size)
	}
	return size
}

// Apply applies the chain to data
func (c Chain) Apply(data []byte) ([]byte, error) {
	current := data

	for _, op := range c {
		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// Reverse reverses the chain on data
func (c Chain) Reverse(data []byte) ([]byte, error) {
	current := data

	// Apply operations in reverse order
	for i := len(c) - 1; i >= 0; i-- {
		op := c[i]
		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ApplyStream applies the chain to a stream without buffering it whole
func (c Chain) ApplyStream(input io.Reader, output io.Writer) error {
	writers := make([]io.WriteCloser, len(c))
	var w io.Writer = output
	for i := len(c) - 1; i >= 0; i-- {
		writers[i] = c[i].NewWriter(w)
		w = writers[i]
	}

	if _, err := io.Copy(w, input); err != nil {
		return fmt.Errorf("applying %s: %w", c, err)
	}

	// Close outermost first so each stage flushes into the next
	for i, wc := range writers {
		if err := wc.Close(); err != nil {
			return fmt.Errorf("flushing %s: %w", c[i].Name(), err)
		}
	}

	return nil
}

// ReverseStream reverses the chain on a stream
func (c Chain) ReverseStream(input io.Reader, output io.Writer) error {
	r := c.NewReader(input)
	if _, err := io.Copy(output, r); err != nil {
		return fmt.Errorf("reversing %s: %w", c, err)
	}
	return nil
}

// NewReader returns a reader yielding the reversed chain applied to input
func (c Chain) NewReader(input io.Reader) io.Reader {
	r := input
	for i := len(c) - 1; i >= 0; i-- {
		r = c[i].NewReader(r)
	}
	return r
}
