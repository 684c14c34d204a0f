package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	relerr "github.com/provide-io/relcfg/pkg/errors"
)

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		where   string
	}{
		{name: "object", input: `{"a":1}`},
		{name: "array", input: `[1, 2, 3]`},
		{name: "scalar", input: `"text"`},
		{name: "whitespace around", input: " \n{}\n "},
		{name: "truncated", input: `{"a":`, wantErr: true},
		{name: "second line", input: "{\n  \"a\": tru\n}", wantErr: true, where: "line 2"},
		{name: "only whitespace", input: "   ", wantErr: true},
		{name: "invalid utf-8", input: "\"\xc3\x28\"", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateJSON([]byte(tt.input))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("validateJSON(%q) = %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, relerr.ErrInvalidJSON) {
				t.Fatalf("validateJSON(%q) = %v, want ErrInvalidJSON", tt.input, err)
			}
			if tt.where != "" && !strings.Contains(err.Error(), tt.where) {
				t.Errorf("error %q does not mention %q", err, tt.where)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncdé\nf")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 2, 4}, // after the two-byte é
		{100, 3, 2},
	}
	for _, tt := range tests {
		line, col := position(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestCompareStreams(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int64
	}{
		{"both empty", "", "", -1},
		{"equal", "abcdefgh", "abcdefgh", -1},
		{"equal short", "abc", "abc", -1},
		{"differs early", "abcdefgh", "abXdefgh", 2},
		{"differs in later chunk", "abcdefgh", "abcdefgX", 7},
		{"a shorter", "abc", "abcd", 3},
		{"b shorter", "abcdef", "abcd", 4},
		{"a empty", "", "x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareStreams(
				iotest.HalfReader(strings.NewReader(tt.a)),
				iotest.OneByteReader(strings.NewReader(tt.b)),
				4,
			)
			if err != nil {
				t.Fatalf("compareStreams: %v", err)
			}
			if got != tt.want {
				t.Errorf("compareStreams(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareStreamsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := compareStreams(iotest.ErrReader(boom), bytes.NewReader(nil), 4)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
