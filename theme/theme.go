package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Empty    rune // · unclicked cell
	Playhead rune // ▶ column being played
	Cursor   rune // ▸ cursor column marker
	Edge     rune // │ instrument edge
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Empty:    '·',
			Playhead: '▶',
			Cursor:   '▸',
			Edge:     '│',
		},
	}
}

// Default uses the built-in palette
func Default() *Theme {
	return New(DefaultPalette())
}

// Load builds a theme from a GPL file, or the built-in palette when path is empty
func Load(path string) (*Theme, error) {
	if path == "" {
		return Default(), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleSurface = 0.1 // dark purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// Tab cell styles

func (t *Theme) NoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success())
}

func (t *Theme) RestStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning())
}

func (t *Theme) EmptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted())
}

func (t *Theme) PlayheadStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Active()).Foreground(t.BG()).Bold(true)
}

func (t *Theme) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Cursor()).Foreground(t.BG())
}

func (t *Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent()).Bold(true)
}

// TineColor shades tines from the center outwards, matching the painted
// markings on many instruments
func (t *Theme) TineColor(tine, tines int) lipgloss.Color {
	if tines <= 1 {
		return t.FG()
	}
	center := tines / 2
	d := tine - center
	if d < 0 {
		d = -d
	}
	return t.Color(RoleFG + (RoleSuccess-RoleFG)*float64(d)/float64(center))
}
