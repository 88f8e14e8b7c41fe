package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kalimba-tab/notation"
	"kalimba-tab/tab"
	"kalimba-tab/theme"
)

// RenderSwatch renders a single colored block
func RenderSwatch(color theme.RGB) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))
	return style.Render("■")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color theme.RGB, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderSwatch(color), name, desc)
}

// RenderGlyphLegend lists the note and rest symbols side by side
func RenderGlyphLegend(th *theme.Theme, ascii bool) string {
	notes := notation.Legend(false)
	rests := notation.Legend(true)

	var lines []string
	for i := range notes {
		n, r := notes[i], rests[i]
		lines = append(lines, fmt.Sprintf("%s %-16s %s %s",
			th.NoteStyle().Render(symbol(n, ascii)), n,
			th.RestStyle().Render(symbol(r, ascii)), r))
	}
	return strings.Join(lines, "\n")
}

func symbol(g notation.Glyph, ascii bool) string {
	if ascii {
		return g.ASCII()
	}
	return g.Symbol()
}

// RenderMode shows the edit mode: duration, rest, modifiers, accidental
func RenderMode(th *theme.Theme, mode tab.EditMode, ascii bool) string {
	on := lipgloss.NewStyle().Foreground(th.Success()).Bold(true)
	off := lipgloss.NewStyle().Foreground(th.Muted())
	flag := func(label string, set bool) string {
		if set {
			return on.Render(label)
		}
		return off.Render(label)
	}

	var durs []string
	for i, d := range tab.Durations {
		g, _ := notation.ResolveGlyph(d, mode.Rest)
		durs = append(durs, flag(fmt.Sprintf("%d%s", i+1, symbol(g, ascii)), d == mode.Duration))
	}

	acc := "none"
	if mode.Accidental != tab.NoAccidental {
		acc = mode.Accidental.String()
		if !ascii {
			acc = mode.Accidental.Symbol()
		}
	}

	return strings.Join([]string{
		strings.Join(durs, " "),
		flag("rest", mode.Rest),
		flag("dotted", mode.Dotted),
		flag("triplet", mode.Triplet),
		flag("acc:"+acc, mode.Accidental != tab.NoAccidental),
	}, "  ")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
