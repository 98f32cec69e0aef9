package subtitle

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestRewrite(t *testing.T) {
	in := "1\r\n0:00:04,280 --> 0:00:06,500\r\nHello\r\n\r\n2\n0:00:07,000 --> 0:00:09,000\nWorld"
	out, st, err := Rewrite(strings.NewReader(in), Options{Op: Add, Seconds: 2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1\n0:00:06,280 --> 0:00:08,500\nHello\n\n2\n0:00:09,000 --> 0:00:11,000\nWorld\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Stats{Lines: 7, Ranges: 2}, st); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteEmpty(t *testing.T) {
	out, st, err := Rewrite(strings.NewReader(""), Options{Op: Add, Seconds: 2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 || st.Lines != 0 {
		t.Fatalf("want empty output, got %q (%+v)", out, st)
	}
}

func TestRewriteKeepsBOM(t *testing.T) {
	in := "\ufeff0:00:01,000 --> 0:00:02,000\n"
	out, _, err := Rewrite(strings.NewReader(in), Options{Op: Add, Seconds: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "\ufeff0:00:02,000 --> 0:00:03,000\n"; string(out) != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestRewriteParseErrorReturnsNothing(t *testing.T) {
	in := "1\n0:00:AA,280 --> 0:00:06,500\n"
	out, _, err := Rewrite(strings.NewReader(in), Options{Op: Add, Seconds: 2}, nil)
	if out != nil {
		t.Fatalf("want no output, got %q", out)
	}
	var lerr *LineError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Fatalf("want line 2 error, got %v", err)
	}
	if !strings.Contains(err.Error(), "0:00:AA,280") {
		t.Fatalf("error should name offending text: %v", err)
	}
}

func TestRewriteReadError(t *testing.T) {
	_, _, err := Rewrite(failingReader{}, Options{Op: Add, Seconds: 2}, nil)
	if err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("want read error, got %v", err)
	}
}

func TestRewriteRejectsNegativeSeconds(t *testing.T) {
	if _, _, err := Rewrite(strings.NewReader("1\n"), Options{Seconds: -1}, nil); err == nil {
		t.Fatal("expected error for negative seconds")
	}
}

func TestRewriteReportsProgress(t *testing.T) {
	var seen []int
	_, _, err := Rewrite(strings.NewReader("a\nb\nc\n"), Options{}, func(done int) {
		seen = append(seen, done)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, seen); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteOneOutputLinePerInput(t *testing.T) {
	for _, in := range []string{"x", "x\n", "\n\n\n", "1\n\n2\n0:00:01,000 --> 0:00:02,000\n"} {
		out, st, err := Rewrite(strings.NewReader(in), Options{Op: Add, Seconds: 1}, nil)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got := strings.Count(string(out), "\n"); got != st.Lines {
			t.Fatalf("%q: %d newlines for %d lines", in, got, st.Lines)
		}
		want := len(strings.Split(strings.TrimSuffix(in, "\n"), "\n"))
		if st.Lines != want {
			t.Fatalf("%q: want %d lines, got %d", in, want, st.Lines)
		}
	}
}

func TestRewriteLineTooLong(t *testing.T) {
	old := maxLineSize
	maxLineSize = 16
	defer func() { maxLineSize = old }()

	in := "1\n" + strings.Repeat("x", 64) + "\n"
	out, _, err := Rewrite(strings.NewReader(in), Options{Op: Add, Seconds: 1}, nil)
	if out != nil {
		t.Fatalf("want no output, got %q", out)
	}
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("want ErrLineTooLong, got %v", err)
	}
	var lerr *LineError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Fatalf("want line 2 error, got %v", err)
	}
	if want := "line 2: over 16 bytes: line too long"; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}
