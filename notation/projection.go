package notation

import (
	"strconv"

	"kalimba-tab/tab"
)

// Projection is what a renderer needs to draw one cell
type Projection struct {
	Visible    bool
	Rest       bool
	Glyph      Glyph
	HasGlyph   bool
	Fallback   string // raw duration code, set when HasGlyph is false
	Accidental tab.Accidental
	Dotted     bool
	Triplet    bool
}

// ResolveAccidental returns the accidental to draw for a cell. Notes equal to
// the tine's reference never show one.
func ResolveAccidental(cell tab.Cell, reference string) tab.Accidental {
	if tab.SameNote(cell.Note, reference) {
		return tab.NoAccidental
	}
	p, err := tab.ParseNote(cell.Note)
	if err != nil {
		return tab.NoAccidental
	}
	return p.Accidental
}

// Project maps a cell onto its glyph and accidental. Unclicked cells are
// invisible whatever their other fields hold; rests never carry an accidental.
func Project(cell tab.Cell, reference string) Projection {
	if cell.Empty() {
		return Projection{}
	}

	p := Projection{
		Visible: true,
		Rest:    cell.IsRest(),
		Dotted:  cell.Dotted,
		Triplet: cell.Triplet,
	}

	g, err := ResolveGlyph(cell.Time, p.Rest)
	if err != nil {
		p.Fallback = strconv.Itoa(int(cell.Time))
	} else {
		p.Glyph = g
		p.HasGlyph = true
	}

	if !p.Rest {
		p.Accidental = ResolveAccidental(cell, reference)
	}
	return p
}

// String renders the projection with unicode symbols
func (p Projection) String() string {
	return p.render(false)
}

// ASCII renders the projection with plain letters
func (p Projection) ASCII() string {
	return p.render(true)
}

func (p Projection) render(ascii bool) string {
	if !p.Visible {
		return ""
	}
	out := p.Fallback
	if p.HasGlyph {
		if ascii {
			out = p.Glyph.ASCII()
		} else {
			out = p.Glyph.Symbol()
		}
	}
	if p.Dotted {
		out += "."
	}
	if p.Triplet {
		out += "3"
	}
	if ascii {
		out += p.Accidental.Suffix()
	} else {
		out += p.Accidental.Symbol()
	}
	return out
}
