package tab

import "fmt"

// Duration is a note length code: 1 whole, 2 half, 4 quarter, 8 eighth,
// 16 sixteenth. Larger codes are shorter notes.
type Duration int

const (
	Whole     Duration = 1
	Half      Duration = 2
	Quarter   Duration = 4
	Eighth    Duration = 8
	Sixteenth Duration = 16
)

// DefaultDuration is used for unclicked cells and unknown codes
const DefaultDuration = Quarter

// Durations lists the valid codes from longest to shortest
var Durations = []Duration{Whole, Half, Quarter, Eighth, Sixteenth}

// Valid reports whether d is one of the five duration codes
func (d Duration) Valid() bool {
	switch d {
	case Whole, Half, Quarter, Eighth, Sixteenth:
		return true
	}
	return false
}

func (d Duration) String() string {
	switch d {
	case Whole:
		return "whole"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Eighth:
		return "eighth"
	case Sixteenth:
		return "sixteenth"
	}
	return fmt.Sprintf("duration(%d)", int(d))
}

// Length returns the fraction of a whole note the code stands for
func (d Duration) Length() float64 {
	if !d.Valid() {
		d = DefaultDuration
	}
	return 1 / float64(d)
}

// Cell is one (tine, column) slot of the grid
type Cell struct {
	Note    string   `json:"note" yaml:"note"`
	Time    Duration `json:"time" yaml:"time"`
	Dotted  bool     `json:"dotted,omitempty" yaml:"dotted,omitempty"`
	Triplet bool     `json:"triplet,omitempty" yaml:"triplet,omitempty"`
}

// EmptyCell is an unclicked cell
func EmptyCell() Cell {
	return Cell{Time: DefaultDuration}
}

// Empty reports whether the cell was never clicked
func (c Cell) Empty() bool {
	return c.Note == ""
}

// IsRest reports whether the cell holds a rest
func (c Cell) IsRest() bool {
	return c.Note == Rest
}

// Duration returns the cell's code, falling back to a quarter for unknown codes
func (c Cell) Duration() Duration {
	if !c.Time.Valid() {
		return DefaultDuration
	}
	return c.Time
}

// Length returns the cell's length as a fraction of a whole note, including
// dotted (x1.5) and triplet (x2/3) modifiers
func (c Cell) Length() float64 {
	l := c.Duration().Length()
	if c.Dotted {
		l *= 1.5
	}
	if c.Triplet {
		l = l * 2 / 3
	}
	return l
}
