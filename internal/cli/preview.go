package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff prints the lines that differ between before and after, "-" for
// removed and "+" for added, and returns the number of added lines. CRLF in
// before is normalized first so only real edits show.
func WriteDiff(w io.Writer, before, after string) (int, error) {
	before = strings.ReplaceAll(before, "\r\n", "\n")
	if before != "" && !strings.HasSuffix(before, "\n") {
		before += "\n"
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := 0
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if d.Type == diffmatchpatch.DiffInsert {
				added++
			}
			if _, err := fmt.Fprintln(w, prefix+line); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}
