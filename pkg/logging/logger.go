package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// DefaultLevel is used when neither the CLI nor the environment sets one
const DefaultLevel = "info"

// Options controls logger construction
type Options struct {
	Name   string
	Level  string    // "debug", "json:debug", ...
	Output io.Writer // defaults to os.Stderr, or RELCFG_LOG_PATH when set
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return New(Options{Name: name, Level: level, Output: output})
}

// New creates a logger from opts. A "json" or "json:<level>" level, or
// RELCFG_JSON_LOG=1, selects JSON output.
func New(opts Options) hclog.Logger {
	jsonFormat, level := ParseLevel(opts.Level)
	if os.Getenv("RELCFG_JSON_LOG") == "1" {
		jsonFormat = true
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
		// Support log file output
		if logPath := os.Getenv("RELCFG_LOG_PATH"); logPath != "" {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				output = file
			}
		}
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter("🔐 ", output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLevel splits an optional "json" prefix off a level string
func ParseLevel(level string) (jsonFormat bool, actual string) {
	level = strings.ToLower(strings.TrimSpace(level))
	if strings.HasPrefix(level, "json") {
		jsonFormat = true
		_, rest, found := strings.Cut(level, ":")
		if !found || rest == "" {
			return jsonFormat, DefaultLevel
		}
		level = rest
	}
	if level == "" {
		level = DefaultLevel
	}
	return jsonFormat, level
}

// GetLogLevel returns the log level and where it came from. The CLI value
// wins over RELCFG_LOG_LEVEL.
func GetLogLevel(cliLevel string) (level string, source string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if envLevel := os.Getenv("RELCFG_LOG_LEVEL"); envLevel != "" {
		return envLevel, "RELCFG_LOG_LEVEL"
	}
	return DefaultLevel, "default"
}

// WithRunID tags logger with a fresh run identifier
func WithRunID(logger hclog.Logger) (hclog.Logger, string) {
	id := uuid.NewString()
	return logger.With("run_id", id), id
}
