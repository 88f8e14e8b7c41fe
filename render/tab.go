// Package render draws a song as a vertical tab: one text column per tine,
// one line per grid column, column 0 at the top.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kalimba-tab/notation"
	"kalimba-tab/tab"
	"kalimba-tab/theme"
)

const cellWidth = 4

// Options controls what the tab view shows
type Options struct {
	Theme     *theme.Theme // nil renders plain text
	ASCII     bool
	Highlight int         // playing column, playback.NoIndex (-1) for none
	Cursor    *tab.Cursor // nil hides the cursor
	From      int         // first grid column shown
	Rows      int         // columns shown, 0 for all
}

// Plain returns options for uncoloured output with no cursor or highlight
func Plain(ascii bool) Options {
	return Options{ASCII: ascii, Highlight: -1}
}

// Tab renders the song
func Tab(song *tab.Song, opts Options) string {
	var lines []string
	lines = append(lines, header(song, opts))

	from, to := Window(opts.From, opts.Rows, song.Song.Columns())
	for c := from; c < to; c++ {
		lines = append(lines, row(song, c, opts))
	}
	return strings.Join(lines, "\n")
}

// Window clamps a viewport to the grid
func Window(from, rows, total int) (int, int) {
	if rows <= 0 || rows > total {
		rows = total
	}
	if from > total-rows {
		from = total - rows
	}
	if from < 0 {
		from = 0
	}
	return from, from + rows
}

// Scroll moves a viewport start so that target is visible
func Scroll(from, target, rows, total int) int {
	if rows <= 0 || target < 0 {
		return from
	}
	if target < from {
		from = target
	} else if target >= from+rows {
		from = target - rows + 1
	}
	from, _ = Window(from, rows, total)
	return from
}

func header(song *tab.Song, opts Options) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 6))
	for t := 0; t < tab.NumTines; t++ {
		b.WriteString(paint(pad(song.Reference(t)), headerStyle(opts.Theme, t)))
	}
	return b.String()
}

func row(song *tab.Song, col int, opts Options) string {
	var b strings.Builder

	sym := symbols(opts)
	marker := " "
	switch {
	case col == opts.Highlight:
		marker = string(sym.Playhead)
	case opts.Cursor != nil && opts.Cursor.Column == col:
		marker = string(sym.Cursor)
	}
	b.WriteString(fmt.Sprintf("%3d %s%c", col, marker, sym.Edge))

	for t := 0; t < tab.NumTines; t++ {
		b.WriteString(cell(song, t, col, opts))
	}
	b.WriteRune(sym.Edge)

	line := b.String()
	if col == opts.Highlight && opts.Theme != nil {
		return opts.Theme.PlayheadStyle().Render(line)
	}
	return line
}

func cell(song *tab.Song, tine, col int, opts Options) string {
	c := song.Song.Cell(tine, col)
	p := notation.Project(c, song.Reference(tine))

	text := string(symbols(opts).Empty)
	if p.Visible {
		if opts.ASCII {
			text = p.ASCII()
		} else {
			text = p.String()
		}
	}
	text = pad(text)

	cursor := opts.Cursor != nil && opts.Cursor.Tine == tine && opts.Cursor.Column == col
	if opts.Theme == nil || col == opts.Highlight {
		return text
	}

	switch {
	case cursor:
		return opts.Theme.CursorStyle().Render(text)
	case !p.Visible:
		return opts.Theme.EmptyStyle().Render(text)
	case p.Rest:
		return opts.Theme.RestStyle().Render(text)
	}
	return opts.Theme.NoteStyle().Render(text)
}

func pad(s string) string {
	w := lipgloss.Width(s)
	if w >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-w)
}

func paint(s string, style *lipgloss.Style) string {
	if style == nil {
		return s
	}
	return style.Render(s)
}

func headerStyle(th *theme.Theme, tine int) *lipgloss.Style {
	if th == nil {
		return nil
	}
	s := lipgloss.NewStyle().Foreground(th.TineColor(tine, tab.NumTines))
	return &s
}

var asciiSymbols = theme.Symbols{
	Empty:    '.',
	Playhead: '>',
	Cursor:   '*',
	Edge:     '|',
}

func symbols(opts Options) theme.Symbols {
	switch {
	case opts.ASCII:
		return asciiSymbols
	case opts.Theme == nil:
		return theme.New(nil).Symbols
	}
	return opts.Theme.Symbols
}
