package tab

import (
	"errors"
	"fmt"
)

var (
	// ErrTineCount is returned when a grid does not have one row per tine
	ErrTineCount = errors.New("grid must have one sequence per tine")
	// ErrRagged is returned when tine sequences differ in length
	ErrRagged = errors.New("grid rows have different lengths")
)

// Grid is the song: Grid[tine][column].
//
// Column 0 is the most recently added column. Tabs are read bottom-up, so
// column 0 is drawn at the top and playback starts at the last column.
// All tine sequences must have the same length.
type Grid [][]Cell

// NewGrid creates a grid of empty cells
func NewGrid(columns int) Grid {
	g := make(Grid, NumTines)
	for t := range g {
		g[t] = make([]Cell, columns)
		for c := range g[t] {
			g[t][c] = EmptyCell()
		}
	}
	return g
}

// Columns returns the number of time columns
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks the grid is rectangular with one sequence per tine
func (g Grid) Validate() error {
	if len(g) != NumTines {
		return fmt.Errorf("%w: got %d, want %d", ErrTineCount, len(g), NumTines)
	}
	cols := len(g[0])
	for t, row := range g {
		if len(row) != cols {
			return fmt.Errorf("%w: tine %d has %d columns, tine 0 has %d", ErrRagged, t, len(row), cols)
		}
	}
	return nil
}

// Clone returns a deep copy, used as a playback snapshot
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for t, row := range g {
		out[t] = append([]Cell(nil), row...)
	}
	return out
}

// Cell returns the cell at (tine, column)
func (g Grid) Cell(tine, column int) Cell {
	return g[tine][column]
}

// InBounds reports whether (tine, column) addresses a cell
func (g Grid) InBounds(tine, column int) bool {
	return tine >= 0 && tine < len(g) && column >= 0 && column < g.Columns()
}

// Set writes a cell
func (g Grid) Set(tine, column int, c Cell) {
	g[tine][column] = c
}

// Clear resets a cell to unclicked
func (g Grid) Clear(tine, column int) {
	g[tine][column] = EmptyCell()
}

// ColumnEmpty reports whether no tine has a note in the column
func (g Grid) ColumnEmpty(column int) bool {
	for t := range g {
		if !g[t][column].Empty() {
			return false
		}
	}
	return true
}

// AddColumns inserts n empty columns at index 0 (the newest end of the song)
func (g Grid) AddColumns(n int) Grid {
	if n <= 0 {
		return g
	}
	if len(g) == 0 {
		return NewGrid(n)
	}
	for t := range g {
		row := make([]Cell, n, n+len(g[t]))
		for c := range row {
			row[c] = EmptyCell()
		}
		g[t] = append(row, g[t]...)
	}
	return g
}

// RemoveColumn deletes a column from every tine
func (g Grid) RemoveColumn(column int) Grid {
	if column < 0 || column >= g.Columns() {
		return g
	}
	for t := range g {
		g[t] = append(g[t][:column:column], g[t][column+1:]...)
	}
	return g
}
