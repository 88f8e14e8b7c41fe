package tab

// EditMode holds the toolbar selections applied when a cell is written
type EditMode struct {
	Duration   Duration   `json:"duration"`
	Rest       bool       `json:"rest"`
	Accidental Accidental `json:"accidental"`
	Dotted     bool       `json:"dotted"`
	Triplet    bool       `json:"triplet"`
}

// Cursor addresses the cell being edited
type Cursor struct {
	Tine   int `json:"tine"`
	Column int `json:"column"`
}

// State is the editor's source of truth. It is passed explicitly to the
// editor and player; nothing here is global.
type State struct {
	Song   Song     `json:"song"`
	Mode   EditMode `json:"mode"`
	Cursor Cursor   `json:"cursor"`

	Dirty bool `json:"-"` // runtime only
}

// NewState creates a state around a new empty song
func NewState(title string) *State {
	s := &State{
		Song: *NewSong(title),
		Mode: EditMode{Duration: DefaultDuration},
	}
	s.Cursor.Tine = NumTines / 2
	return s
}

// Open replaces the song and resets the cursor
func (s *State) Open(song Song) {
	if song.TineNotes.IsZero() {
		song.TineNotes = DefaultTuning
	}
	s.Song = song
	s.Cursor = Cursor{Tine: NumTines / 2}
	s.Dirty = false
}

// Snapshot returns a deep copy of the song for playback or saving
func (s *State) Snapshot() Song {
	return s.Song.Clone()
}

// Mode toggles

func (s *State) ToggleRest()    { s.Mode.Rest = !s.Mode.Rest }
func (s *State) ToggleDotted()  { s.Mode.Dotted = !s.Mode.Dotted }
func (s *State) ToggleTriplet() { s.Mode.Triplet = !s.Mode.Triplet }

// SetDuration selects the duration for new cells; invalid codes are ignored
func (s *State) SetDuration(d Duration) {
	if d.Valid() {
		s.Mode.Duration = d
	}
}

// SetAccidental selects an accidental; selecting the active one clears it
func (s *State) SetAccidental(a Accidental) {
	if s.Mode.Accidental == a {
		s.Mode.Accidental = NoAccidental
		return
	}
	s.Mode.Accidental = a
}

// SetTempo sets the BPM, clamped to the editable range
func (s *State) SetTempo(bpm int) {
	bpm = ClampTempo(bpm)
	if bpm != s.Song.Tempo {
		s.Song.Tempo = bpm
		s.Dirty = true
	}
}

// SetTitle renames the song
func (s *State) SetTitle(title string) {
	if title != s.Song.Title {
		s.Song.Title = title
		s.Dirty = true
	}
}

// newCell builds the cell written for a tine under the current mode
func (s *State) newCell(tine int) Cell {
	c := Cell{
		Time:    s.Mode.Duration,
		Dotted:  s.Mode.Dotted,
		Triplet: s.Mode.Triplet,
	}
	if !c.Time.Valid() {
		c.Time = DefaultDuration
	}
	if s.Mode.Rest {
		c.Note = Rest
	} else {
		c.Note = ApplyAccidental(s.Song.Reference(tine), s.Mode.Accidental)
	}
	return c
}

// ToggleCell clears a clicked cell or writes a new one with the current mode.
// It reports whether the grid changed.
func (s *State) ToggleCell(tine, column int) bool {
	if !s.Song.Song.InBounds(tine, column) {
		return false
	}
	if s.Song.Song.Cell(tine, column).Empty() {
		s.Song.Song.Set(tine, column, s.newCell(tine))
	} else {
		s.Song.Song.Clear(tine, column)
	}
	s.Dirty = true
	return true
}

// Place writes an explicit note using the current duration modifiers
func (s *State) Place(tine, column int, note string) bool {
	if !s.Song.Song.InBounds(tine, column) || note == "" {
		return false
	}
	c := s.newCell(tine)
	c.Note = note
	s.Song.Song.Set(tine, column, c)
	s.Dirty = true
	return true
}

// AddRows adds n empty columns at the newest end of the song
func (s *State) AddRows(n int) {
	if n <= 0 {
		return
	}
	s.Song.Song = s.Song.Song.AddColumns(n)
	s.Cursor.Column = 0
	s.Dirty = true
}

// RemoveRow deletes the column under the cursor
func (s *State) RemoveRow() {
	if s.Song.Song.Columns() <= 1 {
		return
	}
	s.Song.Song = s.Song.Song.RemoveColumn(s.Cursor.Column)
	s.MoveCursor(0, 0)
	s.Dirty = true
}

// MoveCursor moves by (dt tines, dc columns), clamped to the grid
func (s *State) MoveCursor(dt, dc int) {
	s.Cursor.Tine = clamp(s.Cursor.Tine+dt, 0, NumTines-1)
	s.Cursor.Column = clamp(s.Cursor.Column+dc, 0, max(0, s.Song.Song.Columns()-1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
