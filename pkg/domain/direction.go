package domain

import (
	"fmt"
	"strings"
)

// Direction is a head movement. Its integer value is the displacement applied
// to the head position.
type Direction int

const (
	Left  Direction = -1
	Stay  Direction = 0
	Right Direction = 1
)

// Offset returns the signed displacement of the direction.
func (d Direction) Offset() int {
	return int(d)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Stay:
		return "Stay"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of Left, Right or Stay.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == Stay
}

// ParseDirection accepts "L", "R", "S" or the full names, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "s", "stay", "n", "none":
		return Stay, nil
	}
	return Stay, fmt.Errorf("unknown direction %q", s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts anything ParseDirection accepts.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
