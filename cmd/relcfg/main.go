package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/provide-io/relcfg/pkg/logging"
)

const version = "0.1.0"

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("relcfg %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code. Panics and
// unexpected errors end here: they are logged by message, never re-raised.
func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "❌ Unexpected error: %v\n", r)
			if level, _ := logging.GetLogLevel(logLevel); level == "trace" {
				debug.PrintStack()
			}
			code = ExitPanic
		}
	}()

	// Handle --version or -V before cobra parses other flags
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-V") {
		printVersion()
		return ExitOK
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		// Flag and argument errors from cobra
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'relcfg --help' for usage.")
		return ExitUsage
	}

	if !ee.reported {
		if ee.code == ExitIOError {
			fmt.Fprintf(os.Stderr, "❌ Unexpected error: %v\n", ee.err)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", ee.err)
		}
	}
	return ee.code
}
