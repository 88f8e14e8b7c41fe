package tab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleCellWritesReferenceNote(t *testing.T) {
	s := NewState("test")
	s.SetDuration(Eighth)

	assert.True(t, s.ToggleCell(8, 0))
	assert.Equal(t, Cell{Note: "C4", Time: Eighth}, s.Song.Song.Cell(8, 0))
	assert.True(t, s.Dirty)

	// clicking again clears it
	s.ToggleCell(8, 0)
	assert.True(t, s.Song.Song.Cell(8, 0).Empty())
}

func TestToggleCellUsesModes(t *testing.T) {
	s := NewState("test")
	s.SetAccidental(Sharp)
	s.ToggleDotted()
	s.ToggleCell(7, 1)
	assert.Equal(t, Cell{Note: "D#4", Time: Quarter, Dotted: true}, s.Song.Song.Cell(7, 1))

	s.ToggleRest()
	s.ToggleCell(6, 1)
	assert.Equal(t, Rest, s.Song.Song.Cell(6, 1).Note)
}

func TestSetAccidentalTogglesOff(t *testing.T) {
	s := NewState("test")
	s.SetAccidental(Flat)
	s.SetAccidental(Flat)
	assert.Equal(t, NoAccidental, s.Mode.Accidental)
}

func TestToggleCellOutOfBounds(t *testing.T) {
	s := NewState("test")
	assert.False(t, s.ToggleCell(NumTines, 0))
	assert.False(t, s.ToggleCell(0, DefaultColumns))
	assert.False(t, s.Dirty)
}

func TestSetTempoClamps(t *testing.T) {
	s := NewState("test")
	s.SetTempo(5)
	assert.Equal(t, MinTempo, s.Song.Tempo)
	s.SetTempo(1000)
	assert.Equal(t, MaxTempo, s.Song.Tempo)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewState("test")
	snap := s.Snapshot()
	s.ToggleCell(0, 0)
	assert.True(t, snap.Song.Cell(0, 0).Empty())
}

func TestMoveCursorClamps(t *testing.T) {
	s := NewState("test")
	s.MoveCursor(-100, -100)
	assert.Equal(t, Cursor{0, 0}, s.Cursor)
	s.MoveCursor(100, 100)
	assert.Equal(t, Cursor{NumTines - 1, DefaultColumns - 1}, s.Cursor)
}

func TestAddAndRemoveRows(t *testing.T) {
	s := NewState("test")
	s.AddRows(4)
	assert.Equal(t, DefaultColumns+4, s.Song.Song.Columns())
	s.RemoveRow()
	assert.Equal(t, DefaultColumns+3, s.Song.Song.Columns())
}
