package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Source map in this file:
// - Parse/Format follow the SRT "H:MM:SS,mmm" timing layout.
// - Shift touches the seconds field only; ShiftNormalized carries across fields.

// minLen is the length of the shortest valid timecode, "0:00:00,000".
const minLen = 11

// Hours take one or more digits; minutes and seconds exactly two; millis
// exactly three, introduced by ',' or ':'.
var pattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,:](\d{3})$`)

// ErrUnderflow reports a shift that would move a timecode before zero.
var ErrUnderflow = errors.New("timecode underflow")

// ErrOverflow reports a shift whose result does not fit the integer fields.
var ErrOverflow = errors.New("timecode overflow")

// ParseError describes text that is not a valid timecode.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timecode %q: %s", e.Text, e.Reason)
}

// Timecode holds the raw fields of a subtitle timestamp.
//
// The fields are signed and never clamped, so a literal shift can leave
// Seconds negative or above 59.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

// Parse reads a timecode in "H:MM:SS,mmm" form. The millisecond separator may
// also be ':'.
func Parse(text string) (Timecode, error) {
	if len(text) < minLen {
		return Timecode{}, &ParseError{Text: text, Reason: "too short"}
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Timecode{}, &ParseError{Text: text, Reason: "want H:MM:SS,mmm"}
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return Timecode{}, &ParseError{Text: text, Reason: "hours out of range"}
	}
	// The pattern guarantees fixed-width digits for the remaining fields.
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	millis, _ := strconv.Atoi(m[4])
	return Timecode{Hours: hours, Minutes: minutes, Seconds: seconds, Millis: millis}, nil
}

// Format renders tc as "H:MM:SS,mmm".
func Format(tc Timecode) string {
	return fmt.Sprintf("%d:%02d:%02d,%03d", tc.Hours, tc.Minutes, tc.Seconds, tc.Millis)
}

func (tc Timecode) String() string {
	return Format(tc)
}

// Shift adds seconds to the Seconds field only. Minutes, hours and millis are
// left alone: nothing carries on overflow and nothing borrows on underflow.
// It fails with ErrOverflow only when the field itself cannot hold the sum.
func Shift(tc Timecode, seconds int) (Timecode, error) {
	sum, ok := addInt64(int64(tc.Seconds), int64(seconds))
	if !ok || sum > math.MaxInt || sum < math.MinInt {
		return Timecode{}, errors.Wrapf(ErrOverflow, "shifting %s by %ds", tc, seconds)
	}
	tc.Seconds = int(sum)
	return tc, nil
}

// ShiftNormalized moves tc by seconds as a duration and re-splits the result
// into conventional field ranges. Hours are unbounded up to the int64
// millisecond range.
func ShiftNormalized(tc Timecode, seconds int) (Timecode, error) {
	ms, ok := tc.millis()
	if ok {
		var off int64
		off, ok = mulInt64(int64(seconds), 1000)
		if ok {
			ms, ok = addInt64(ms, off)
		}
	}
	if !ok {
		return Timecode{}, errors.Wrapf(ErrOverflow, "shifting %s by %ds", tc, seconds)
	}
	if ms < 0 {
		return Timecode{}, errors.Wrapf(ErrUnderflow, "shifting %s by %ds", tc, seconds)
	}
	return fromMillis(ms), nil
}

// millis returns the offset tc denotes from zero in milliseconds. ok is false
// when that does not fit in an int64.
func (tc Timecode) millis() (ms int64, ok bool) {
	parts := [...]struct {
		v    int
		unit int64
	}{
		{tc.Hours, 3_600_000},
		{tc.Minutes, 60_000},
		{tc.Seconds, 1000},
		{tc.Millis, 1},
	}
	for _, p := range parts {
		v, ok := mulInt64(int64(p.v), p.unit)
		if !ok {
			return 0, false
		}
		if ms, ok = addInt64(ms, v); !ok {
			return 0, false
		}
	}
	return ms, true
}

// FromDuration splits a non-negative d into a normalized timecode, truncating
// below the millisecond.
func FromDuration(d time.Duration) Timecode {
	return fromMillis(d.Milliseconds())
}

func fromMillis(ms int64) Timecode {
	return Timecode{
		Hours:   int(ms / 3_600_000),
		Minutes: int(ms / 60_000 % 60),
		Seconds: int(ms / 1000 % 60),
		Millis:  int(ms % 1000),
	}
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// mulInt64 multiplies by a positive unit.
func mulInt64(a, unit int64) (int64, bool) {
	if a > math.MaxInt64/unit || a < math.MinInt64/unit {
		return 0, false
	}
	return a * unit, true
}
