// Package console contains the terminal implementation of the Notifier port.
package console

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/example/casetrack/internal/ports/secondary"
)

// Notifier prints severity-colored notifications to a writer.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a notifier writing to stderr, keeping stdout clean for
// command output.
func NewNotifier() *Notifier {
	return &Notifier{out: os.Stderr}
}

// NewNotifierWithOutput creates a notifier writing to the given output.
func NewNotifierWithOutput(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Notify prints one colored line. It never fails the caller.
func (n *Notifier) Notify(message string, severity secondary.Severity) {
	var c *color.Color
	var tag string
	switch severity {
	case secondary.SeverityError:
		c = color.New(color.FgRed, color.Bold)
		tag = "✗"
	case secondary.SeverityWarning:
		c = color.New(color.FgYellow)
		tag = "!"
	default:
		c = color.New(color.FgGreen)
		tag = "✓"
	}
	c.Fprintf(n.out, "%s %s\n", tag, message)
}

// Ensure Notifier implements the interface
var _ secondary.Notifier = (*Notifier)(nil)
