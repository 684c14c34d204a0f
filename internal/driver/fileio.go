package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	relerr "github.com/provide-io/relcfg/pkg/errors"
)

// readExisting reads path, mapping a missing file to ErrInputNotFound.
func readExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", relerr.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// openExisting opens path, mapping a missing file to ErrInputNotFound.
func openExisting(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", relerr.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// validateJSON checks that data is UTF-8 text holding exactly one JSON
// value. The parsed value is discarded.
func validateJSON(data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: content is not valid UTF-8", relerr.ErrInvalidJSON)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := position(data, syntaxErr.Offset)
			return fmt.Errorf("%w: %v (line %d, column %d)", relerr.ErrInvalidJSON, err, line, col)
		}
		return fmt.Errorf("%w: %v", relerr.ErrInvalidJSON, err)
	}
	return nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	col = utf8.RuneCount(prefix[bytes.LastIndexByte(prefix, '\n')+1:]) + 1
	return line, col
}

// stagedFile is a temp file next to its destination. Commit renames it
// into place; Discard removes it. Readers never observe a partial write.
type stagedFile struct {
	f    *os.File
	dest string
	done bool
}

func stage(dest string) (*stagedFile, error) {
	dir, base := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for %s: %w", dest, err)
	}
	return &stagedFile{f: f, dest: dest}, nil
}

func (s *stagedFile) Name() string {
	return s.f.Name()
}

// Write writes data, syncs and closes the file.
func (s *stagedFile) Write(data []byte) error {
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", s.f.Name(), err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", s.f.Name(), err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.f.Name(), err)
	}
	return nil
}

// ReadBack returns the bytes that actually landed on disk.
func (s *stagedFile) ReadBack() ([]byte, error) {
	return os.ReadFile(s.f.Name())
}

func (s *stagedFile) Commit(mode os.FileMode) error {
	if err := os.Chmod(s.f.Name(), mode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", s.f.Name(), err)
	}
	if err := os.Rename(s.f.Name(), s.dest); err != nil {
		return fmt.Errorf("replacing %s: %w", s.dest, err)
	}
	s.done = true
	return nil
}

// Discard removes the temp file unless it was committed. Safe to defer.
func (s *stagedFile) Discard() {
	if s.done {
		return
	}
	s.f.Close()
	os.Remove(s.f.Name())
	s.done = true
}

// compareStreams reports the offset of the first differing byte between a
// and b, or -1 if both yield the same bytes.
func compareStreams(a, b io.Reader, chunkSize int) (int64, error) {
	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)
	var offset int64

	for {
		nA, errA := io.ReadFull(a, bufA)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return offset, errA
		}
		nB, errB := io.ReadFull(b, bufB)
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return offset, errB
		}

		n := min(nA, nB)
		for i := 0; i < n; i++ {
			if bufA[i] != bufB[i] {
				return offset + int64(i), nil
			}
		}
		if nA != nB {
			return offset + int64(n), nil
		}
		offset += int64(n)

		// A short read means that side is exhausted
		if nA < chunkSize {
			return -1, nil
		}
	}
}
