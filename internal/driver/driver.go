// Package driver wires the codec to files: it seals a plaintext config into
// a token file, opens a token file back into plaintext, and verifies that a
// token file matches a plaintext file.
package driver

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/relcfg/internal/config"
	"github.com/provide-io/relcfg/pkg/logging"
)

// Result describes a completed run.
type Result struct {
	RunID         string
	PlaintextPath string
	TokenPath     string
	PlaintextSize int64
	TokenSize     int64
	// Checksum is the prefixed checksum of the token file contents
	Checksum string
	// Chain names the transform, always "xor|base64"
	Chain string
}

// Driver runs one operation against a Config.
type Driver struct {
	cfg     *config.Config
	logger  hclog.Logger
	console *logging.Console
	stdout  io.Writer
	runID   string
}

// Option customizes a Driver.
type Option func(*Driver)

// WithConsole replaces the operator-facing console (default: stdout).
func WithConsole(c *logging.Console) Option {
	return func(d *Driver) { d.console = c }
}

// WithStdout sets where Open writes when the destination is "-".
func WithStdout(w io.Writer) Option {
	return func(d *Driver) { d.stdout = w }
}

// New creates a driver. logger may be nil.
func New(cfg *config.Config, logger hclog.Logger, opts ...Option) *Driver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger, runID := logging.WithRunID(logger)

	d := &Driver{
		cfg:    cfg,
		logger: logger,
		stdout: os.Stdout,
		runID:  runID,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.console == nil {
		d.console = logging.NewConsole(nil)
	}
	return d
}

func (d *Driver) newResult() *Result {
	return &Result{
		RunID:         d.runID,
		PlaintextPath: d.cfg.PlaintextPath,
		TokenPath:     d.cfg.TokenPath,
	}
}
