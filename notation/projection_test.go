package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalimba-tab/tab"
)

func TestResolveGlyph(t *testing.T) {
	g, err := ResolveGlyph(tab.Eighth, false)
	require.NoError(t, err)
	assert.Equal(t, EighthNote, g)

	g, err = ResolveGlyph(tab.Whole, true)
	require.NoError(t, err)
	assert.Equal(t, WholeRest, g)
}

func TestResolveGlyphNotFound(t *testing.T) {
	g, err := ResolveGlyph(32, false)
	assert.ErrorIs(t, err, ErrGlyphNotFound)
	assert.Equal(t, NoGlyph, g)
}

func TestUnclickedCellIsInvisible(t *testing.T) {
	for _, cell := range []tab.Cell{
		{Note: "", Time: tab.Quarter},
		{Note: "", Time: tab.Eighth, Dotted: true},
		{Note: "", Time: 99},
	} {
		p := Project(cell, "C4")
		assert.False(t, p.Visible)
		assert.False(t, p.HasGlyph)
		assert.Equal(t, tab.NoAccidental, p.Accidental)
		assert.Equal(t, "", p.String())
	}
}

func TestRestUsesRestTableWithoutAccidental(t *testing.T) {
	p := Project(tab.Cell{Note: tab.Rest, Time: tab.Eighth}, "C#4")
	assert.True(t, p.Visible)
	assert.True(t, p.Rest)
	assert.Equal(t, EighthRest, p.Glyph)
	assert.Equal(t, tab.NoAccidental, p.Accidental)
}

func TestAccidentalSuppressedForReferenceNote(t *testing.T) {
	// tine tuned to F#4: its open note needs no marker
	p := Project(tab.Cell{Note: "F#4", Time: tab.Quarter}, "F#4")
	assert.Equal(t, tab.NoAccidental, p.Accidental)

	p = Project(tab.Cell{Note: "F♯4", Time: tab.Quarter}, "F#4")
	assert.Equal(t, tab.NoAccidental, p.Accidental)
}

func TestAccidentalFromNoteSuffix(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(tab.Sharp, ResolveAccidental(tab.Cell{Note: "C#4"}, "C4"))
	assert.Equal(tab.Flat, ResolveAccidental(tab.Cell{Note: "Eb5"}, "E5"))
	assert.Equal(tab.Natural, ResolveAccidental(tab.Cell{Note: "Fn4"}, "F#4"))
	assert.Equal(tab.NoAccidental, ResolveAccidental(tab.Cell{Note: "D4"}, "C4"))
}

func TestFallbackToDurationCode(t *testing.T) {
	p := Project(tab.Cell{Note: "C4", Time: 3}, "C4")
	assert.True(t, p.Visible)
	assert.False(t, p.HasGlyph)
	assert.Equal(t, "3", p.Fallback)
	assert.Equal(t, "3", p.String())
}

func TestProjectionString(t *testing.T) {
	p := Project(tab.Cell{Note: "C#4", Time: tab.Quarter, Dotted: true}, "C4")
	assert.Equal(t, "♩.♯", p.String())
	assert.Equal(t, "q.#", p.ASCII())
}

func TestTablesAreComplete(t *testing.T) {
	for _, d := range tab.Durations {
		_, err := ResolveGlyph(d, false)
		assert.NoError(t, err, d.String())
		_, err = ResolveGlyph(d, true)
		assert.NoError(t, err, d.String())
	}
	assert.Len(t, Legend(false), len(tab.Durations))
}

func TestMustIndexPanicsOnDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		mustIndex("bad", []glyphEntry{{tab.Half, HalfNote}, {tab.Half, QuarterNote}})
	})
	assert.Panics(t, func() {
		mustIndex("bad", []glyphEntry{{5, HalfNote}})
	})
}
