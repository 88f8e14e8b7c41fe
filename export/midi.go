// Package export writes songs to other formats.
package export

import (
	"fmt"
	"io"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"kalimba-tab/playback"
	"kalimba-tab/tab"
)

const (
	ticksPerQuarter = 960
	kalimbaProgram  = 108 // General MIDI "Kalimba"
	velocity        = 100
)

// ticks converts a note length (fraction of a whole) to MIDI ticks
func ticks(length float64) uint32 {
	return uint32(math.Round(length * 4 * ticksPerQuarter))
}

// MIDI writes the song as a standard MIDI file: one track, each compacted
// event's notes start together and end when the event does
func MIDI(w io.Writer, song *tab.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("cannot export %q: %w", song.Title, err)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(song.Title))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(float64(song.Tempo)))
	tr.Add(0, gomidi.ProgramChange(0, kalimbaProgram))

	var pending uint32
	for _, ev := range playback.Compact(song.Song) {
		d := ticks(ev.Length)
		keys := midiKeys(ev.Sounding())
		if len(keys) == 0 {
			pending += d
			continue
		}
		for i, k := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = pending
			}
			tr.Add(delta, gomidi.NoteOn(0, k, velocity))
		}
		for i, k := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = d
			}
			tr.Add(delta, gomidi.NoteOff(0, k))
		}
		pending = 0
	}
	tr.Close(pending)

	if err := s.Add(tr); err != nil {
		return fmt.Errorf("cannot add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write MIDI file: %w", err)
	}
	return nil
}

// midiKeys maps notes to distinct MIDI keys, skipping bad identifiers
func midiKeys(notes []string) []uint8 {
	var keys []uint8
	seen := map[int]bool{}
	for _, n := range notes {
		p, err := tab.ParseNote(n)
		if err != nil {
			continue
		}
		k := p.MIDI()
		if k < 0 || k > 127 || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, uint8(k))
	}
	return keys
}
