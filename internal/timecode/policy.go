package timecode

import (
	"strings"

	"github.com/pkg/errors"
)

// Policy selects how a shift treats field boundaries.
type Policy int

const (
	// Literal changes the seconds field only.
	Literal Policy = iota
	// Normalized shifts by duration and carries across fields.
	Normalized
)

// ParsePolicy accepts "literal" or "normalized", case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "literal":
		return Literal, nil
	case "normalized":
		return Normalized, nil
	}
	return Literal, errors.Errorf("unknown shift policy %q (want literal or normalized)", s)
}

func (p Policy) String() string {
	if p == Normalized {
		return "normalized"
	}
	return "literal"
}

// Shifter applies a shift under a fixed policy.
type Shifter struct {
	Policy Policy
}

// Shift moves tc by seconds under s.Policy.
func (s Shifter) Shift(tc Timecode, seconds int) (Timecode, error) {
	if s.Policy == Normalized {
		return ShiftNormalized(tc, seconds)
	}
	return Shift(tc, seconds)
}
