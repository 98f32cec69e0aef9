package cli

import (
	"fmt"
	"io"
	"os"
)

// renderEvery throttles in-place redraws.
const renderEvery = 500

// LineProgress renders an in-place "label: done/total" counter for one pass
// over a file. It prints nothing unless enabled.
type LineProgress struct {
	w       io.Writer
	label   string
	total   int
	done    int
	enabled bool
}

// NewLineProgress creates a progress renderer writing to stdout when stdout is
// a terminal.
func NewLineProgress(label string, total int) *LineProgress {
	return newLineProgress(os.Stdout, label, total, isTerminal(os.Stdout))
}

func newLineProgress(w io.Writer, label string, total int, enabled bool) *LineProgress {
	return &LineProgress{w: w, label: label, total: total, enabled: enabled}
}

// Update records done lines and redraws periodically.
//
// If total is not known, it leaves output unchanged.
func (p *LineProgress) Update(done int) {
	p.done = done
	if !p.enabled || p.total <= 0 {
		return
	}
	if done%renderEvery == 0 {
		fmt.Fprintf(p.w, "\r%s: %d/%d", p.label, done, p.total)
	}
}

// Stop finalizes progress rendering by printing the full count and a
// trailing newline.
func (p *LineProgress) Stop() {
	if !p.enabled || p.total <= 0 {
		return
	}
	done := p.done
	if done < p.total {
		done = p.total
	}
	fmt.Fprintf(p.w, "\r%s: %d/%d\n", p.label, done, p.total)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
