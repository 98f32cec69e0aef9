package subtitle

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

const bom = "\ufeff"

// maxLineSize bounds a single input line.
var maxLineSize = 64 << 20

// ErrLineTooLong reports an input line longer than the reader accepts.
var ErrLineTooLong = errors.New("line too long")

// Stats summarizes one rewrite.
type Stats struct {
	Lines  int
	Ranges int
}

// ReadLines yields the lines of r without their terminators. A trailing "\r"
// is dropped so CRLF input comes out as plain lines. A line over the size
// limit ends the sequence with a *LineError wrapping ErrLineTooLong.
func ReadLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		n := 0
		for sc.Scan() {
			n++
			if !yield(sc.Text(), nil) {
				return
			}
		}
		err := sc.Err()
		switch {
		case errors.Is(err, bufio.ErrTooLong):
			yield("", &LineError{Line: n + 1, Err: errors.Wrapf(ErrLineTooLong, "over %d bytes", maxLineSize)})
		case err != nil:
			yield("", errors.Wrap(err, "reading input"))
		}
	}
}

// Rewrite shifts every range line read from r and returns the complete output,
// each line terminated by "\n". Nothing is returned on error, so callers never
// hold partial output. A leading UTF-8 byte order mark is kept in place.
//
// onLine, when not nil, is called with the number of lines done so far.
func Rewrite(r io.Reader, opts Options, onLine func(done int)) ([]byte, Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}
	br := bufio.NewReader(r)
	var out bytes.Buffer
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
		out.WriteString(bom)
	}

	var readErr error
	lines := func(yield func(string) bool) {
		for line, err := range ReadLines(br) {
			if err != nil {
				readErr = err
				return
			}
			if !yield(line) {
				return
			}
		}
	}

	var st Stats
	for line, err := range ProcessFile(lines, opts) {
		if err != nil {
			return nil, Stats{}, err
		}
		st.Lines++
		if strings.Contains(line, Delimiter) {
			st.Ranges++
		}
		out.WriteString(line)
		out.WriteByte('\n')
		if onLine != nil {
			onLine(st.Lines)
		}
	}
	if readErr != nil {
		return nil, Stats{}, readErr
	}
	return out.Bytes(), st, nil
}
