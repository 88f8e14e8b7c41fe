// Package notation projects grid cells onto the symbols drawn in a tab.
package notation

import (
	"errors"
	"fmt"

	"kalimba-tab/tab"
)

// ErrGlyphNotFound is returned when no glyph exists for a duration code.
// It is not fatal: renderers fall back to the raw code.
var ErrGlyphNotFound = errors.New("no glyph for duration")

// Glyph identifies a note or rest symbol
type Glyph int

const (
	NoGlyph Glyph = iota
	WholeNote
	HalfNote
	QuarterNote
	EighthNote
	SixteenthNote
	WholeRest
	HalfRest
	QuarterRest
	EighthRest
	SixteenthRest
)

var glyphInfo = map[Glyph]struct {
	name   string
	symbol string
	ascii  string
}{
	WholeNote:     {"whole note", "𝅝", "o"},
	HalfNote:      {"half note", "𝅗𝅥", "d"},
	QuarterNote:   {"quarter note", "♩", "q"},
	EighthNote:    {"eighth note", "♪", "e"},
	SixteenthNote: {"sixteenth note", "♬", "s"},
	WholeRest:     {"whole rest", "𝄻", "W"},
	HalfRest:      {"half rest", "𝄼", "H"},
	QuarterRest:   {"quarter rest", "𝄽", "Q"},
	EighthRest:    {"eighth rest", "𝄾", "E"},
	SixteenthRest: {"sixteenth rest", "𝄿", "S"},
}

func (g Glyph) String() string {
	if info, ok := glyphInfo[g]; ok {
		return info.name
	}
	return "none"
}

// Symbol returns the unicode music symbol
func (g Glyph) Symbol() string { return glyphInfo[g].symbol }

// ASCII returns a one-letter stand-in for terminals without music fonts
func (g Glyph) ASCII() string { return glyphInfo[g].ascii }

type glyphEntry struct {
	time  tab.Duration
	glyph Glyph
}

var (
	noteTable = []glyphEntry{
		{tab.Whole, WholeNote},
		{tab.Half, HalfNote},
		{tab.Quarter, QuarterNote},
		{tab.Eighth, EighthNote},
		{tab.Sixteenth, SixteenthNote},
	}
	restTable = []glyphEntry{
		{tab.Whole, WholeRest},
		{tab.Half, HalfRest},
		{tab.Quarter, QuarterRest},
		{tab.Eighth, EighthRest},
		{tab.Sixteenth, SixteenthRest},
	}

	noteGlyphs = mustIndex("note", noteTable)
	restGlyphs = mustIndex("rest", restTable)
)

// mustIndex builds a lookup map, panicking on invalid or duplicate durations
func mustIndex(name string, entries []glyphEntry) map[tab.Duration]Glyph {
	index := make(map[tab.Duration]Glyph, len(entries))
	for _, e := range entries {
		if !e.time.Valid() {
			panic(fmt.Sprintf("notation: %s table has invalid duration %d", name, e.time))
		}
		if _, dup := index[e.time]; dup {
			panic(fmt.Sprintf("notation: %s table has duplicate duration %d", name, e.time))
		}
		if _, ok := glyphInfo[e.glyph]; !ok {
			panic(fmt.Sprintf("notation: %s table has unknown glyph %d", name, e.glyph))
		}
		index[e.time] = e.glyph
	}
	return index
}

// ResolveGlyph looks up the glyph for a duration in the note or rest table
func ResolveGlyph(d tab.Duration, isRest bool) (Glyph, error) {
	table := noteGlyphs
	if isRest {
		table = restGlyphs
	}
	if g, ok := table[d]; ok {
		return g, nil
	}
	return NoGlyph, fmt.Errorf("%w %d", ErrGlyphNotFound, int(d))
}

// Legend lists every glyph of a table from longest to shortest
func Legend(isRest bool) []Glyph {
	table := noteTable
	if isRest {
		table = restTable
	}
	out := make([]Glyph, len(table))
	for i, e := range table {
		out[i] = e.glyph
	}
	return out
}
