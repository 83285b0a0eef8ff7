// Package ledger holds the two-column ledger state, the messages that change
// it, and the totals derived from it.
package ledger

import (
	"fmt"
	"strings"
)

// Column identifies which currency an entry's raw amount is denominated in.
type Column int

const (
	// Left is the left-hand currency (CAD by default).
	Left Column = iota
	// Right is the right-hand currency (RMB by default).
	Right
)

// String returns the column name used in storage and logs.
func (c Column) String() string {
	switch c {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

// ParseColumn accepts "left"/"right" in any case, plus the "l"/"r" shorthands.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("%w: %q", ErrInvalidColumn, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Column) MarshalText() ([]byte, error) {
	switch c {
	case Left, Right:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidColumn, int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler. Only the exact stored
// names are accepted.
func (c *Column) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Left":
		*c = Left
	case "Right":
		*c = Right
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColumn, string(text))
	}
	return nil
}
