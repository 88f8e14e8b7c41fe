package tab

import "fmt"

// NumTines is the number of keys on the instrument
const NumTines = 17

// Tuning holds the open (reference) note of every tine, left to right
type Tuning [NumTines]string

// DefaultTuning is the common 17-key C major layout. Low notes sit in the
// middle and alternate outwards.
var DefaultTuning = Tuning{
	"D6", "B5", "G5", "E5", "C5", "A4", "F4", "D4",
	"C4",
	"E4", "G4", "B4", "D5", "F5", "A5", "C6", "E6",
}

// IsZero reports whether no tine has a reference note
func (t Tuning) IsZero() bool {
	for _, n := range t {
		if n != "" {
			return false
		}
	}
	return true
}

// Validate checks every reference note parses
func (t Tuning) Validate() error {
	for i, n := range t {
		if _, err := ParseNote(n); err != nil {
			return fmt.Errorf("tine %d: %w", i, err)
		}
	}
	return nil
}

// Match finds the tine for a MIDI note played on a keyboard. An exact match
// on a reference wins; otherwise a neighbouring tine is returned with the
// note spelled as a sharp (tine below) or flat (tine above).
func (t Tuning) Match(midi int) (tine int, note string, ok bool) {
	for i, ref := range t {
		p, err := ParseNote(ref)
		if err == nil && p.MIDI() == midi {
			return i, ref, true
		}
	}
	for _, acc := range []Accidental{Sharp, Flat} {
		want := midi - 1
		if acc == Flat {
			want = midi + 1
		}
		for i, ref := range t {
			p, err := ParseNote(ref)
			if err != nil || p.Accidental != NoAccidental {
				continue
			}
			if p.MIDI() == want {
				return i, ApplyAccidental(ref, acc), true
			}
		}
	}
	return -1, "", false
}
