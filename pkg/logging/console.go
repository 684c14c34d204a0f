package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Console prints the user-facing progress lines of a run. Diagnostics go
// to the hclog logger; Console is what an operator reads.
type Console struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	warning *color.Color
	plain   *color.Color
}

// NewConsole writes to out, or os.Stdout when out is nil. Colors follow
// fatih/color's terminal and NO_COLOR detection.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow),
		plain:   color.New(),
	}
}

// Step reports the start of a stage
func (c *Console) Step(format string, args ...any) {
	c.plain.Fprintf(c.out, format+"\n", args...)
}

// Success reports a completed stage
func (c *Console) Success(format string, args ...any) {
	c.success.Fprintf(c.out, "✅ "+format+"\n", args...)
}

// Failure reports a failed stage
func (c *Console) Failure(format string, args ...any) {
	c.failure.Fprintf(c.out, "❌ "+format+"\n", args...)
}

// Warn reports something the operator should look at
func (c *Console) Warn(format string, args ...any) {
	c.warning.Fprintf(c.out, "⚠️  "+format+"\n", args...)
}

// Info prints an informational line with an emoji marker
func (c *Console) Info(marker, format string, args ...any) {
	c.plain.Fprintf(c.out, marker+" "+format+"\n", args...)
}

// Rule prints a separator line
func (c *Console) Rule() {
	fmt.Fprintln(c.out, strings.Repeat("-", 30))
}
