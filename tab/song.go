package tab

import (
	"errors"
	"fmt"
)

// ErrInvalidTempo is returned for a non-positive tempo
var ErrInvalidTempo = errors.New("tempo must be positive")

const (
	DefaultTempo   = 120
	DefaultColumns = 32
	MinTempo       = 20
	MaxTempo       = 300
)

// Song is the persisted tab document
type Song struct {
	Title     string `json:"songTitle" yaml:"title"`
	Tempo     int    `json:"tempo" yaml:"tempo"`
	TineNotes Tuning `json:"tineNotes" yaml:"tineNotes"`
	Song      Grid   `json:"song" yaml:"song"`
}

// NewSong creates an empty song with the default tuning
func NewSong(title string) *Song {
	return &Song{
		Title:     title,
		Tempo:     DefaultTempo,
		TineNotes: DefaultTuning,
		Song:      NewGrid(DefaultColumns),
	}
}

// Clone returns a deep copy of the song
func (s Song) Clone() Song {
	s.Song = s.Song.Clone()
	return s
}

// Validate checks tempo, tuning and grid shape
func (s *Song) Validate() error {
	if s.Tempo <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTempo, s.Tempo)
	}
	if err := s.TineNotes.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	if err := s.Song.Validate(); err != nil {
		return err
	}
	return nil
}

// Reference returns the open note of a tine
func (s *Song) Reference(tine int) string {
	if tine < 0 || tine >= NumTines {
		return ""
	}
	return s.TineNotes[tine]
}

// ClampTempo keeps a tempo in the editable range
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}
