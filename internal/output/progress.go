package output

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress prints [N/M] stage lines for multi-step operations such as
// the approve-then-contribute funding sequence.
type Progress struct {
	out      io.Writer
	total    int
	current  int
	jsonMode bool
}

// NewProgress creates a Progress with the given total steps.
func NewProgress(total int) *Progress {
	return &Progress{
		out:   os.Stdout,
		total: total,
	}
}

// SetJSONMode suppresses text output.
func (p *Progress) SetJSONMode(jsonMode bool) {
	p.jsonMode = jsonMode
}

// SetOutput redirects output, used by tests.
func (p *Progress) SetOutput(out io.Writer) {
	p.out = out
}

// Stage prints the next progress stage as [N/M] Description...
func (p *Progress) Stage(description string) {
	if p.jsonMode {
		return
	}
	p.current++
	color.New(color.FgCyan).Fprintf(p.out, "[%d/%d] %s...\n", p.current, p.total, description)
}

// Done prints a completion message.
func (p *Progress) Done(message string) {
	if p.jsonMode {
		return
	}
	color.New(color.FgGreen).Fprintf(p.out, "\n✓ %s\n", message)
}
