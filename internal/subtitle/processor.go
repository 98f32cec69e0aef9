package subtitle

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"

	"srtshift/internal/timecode"
)

// Delimiter separates the start and end timecodes of a range line.
const Delimiter = " --> "

// Op is the direction of a shift.
type Op int

const (
	Add Op = iota
	Subtract
)

// ParseOp maps the mode tokens "+" and "-" to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "+":
		return Add, nil
	case "-":
		return Subtract, nil
	}
	return Add, errors.Errorf("unknown mode %q (want + or -)", s)
}

func (o Op) String() string {
	if o == Subtract {
		return "-"
	}
	return "+"
}

// Options is the immutable shift configuration for one run.
type Options struct {
	Op      Op
	Seconds int
	Policy  timecode.Policy
}

// Validate rejects a negative magnitude; the sign belongs to Op.
func (o Options) Validate() error {
	if o.Seconds < 0 {
		return errors.Errorf("seconds must be non-negative, got %d", o.Seconds)
	}
	return nil
}

// Offset returns the signed number of seconds to apply.
func (o Options) Offset() int {
	if o.Op == Subtract {
		return -o.Seconds
	}
	return o.Seconds
}

// LineError tags a failure with the 1-based input line and its text.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ProcessLine shifts both timecodes of a range line and returns any other
// line unchanged.
//
// The line is split on the first delimiter; the remainder is taken literally
// as the end timecode.
func ProcessLine(line string, opts Options) (string, error) {
	startText, endText, ok := strings.Cut(line, Delimiter)
	if !ok {
		return line, nil
	}
	shifter := timecode.Shifter{Policy: opts.Policy}
	offset := opts.Offset()

	start, err := shiftText(shifter, startText, offset)
	if err != nil {
		return "", errors.Wrap(err, "start")
	}
	end, err := shiftText(shifter, endText, offset)
	if err != nil {
		return "", errors.Wrap(err, "end")
	}
	return start + Delimiter + end, nil
}

func shiftText(s timecode.Shifter, text string, offset int) (string, error) {
	tc, err := timecode.Parse(text)
	if err != nil {
		return "", err
	}
	tc, err = s.Shift(tc, offset)
	if err != nil {
		return "", err
	}
	return timecode.Format(tc), nil
}

// ProcessFile lazily applies ProcessLine to each input line, in order and one
// output per input. The first failure is yielded as a *LineError and ends the
// sequence.
func ProcessFile(lines iter.Seq[string], opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		n := 0
		for line := range lines {
			n++
			out, err := ProcessLine(line, opts)
			if err != nil {
				yield("", &LineError{Line: n, Text: line, Err: err})
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}
