package tab

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rest is the note value written into a cell that holds a rest
const Rest = "rest"

// ErrInvalidNote is returned when a note identifier cannot be parsed
var ErrInvalidNote = errors.New("invalid note identifier")

// Accidental is the accidental encoded in a note identifier
type Accidental int

const (
	NoAccidental Accidental = iota
	Sharp
	Flat
	Natural
)

// Symbol returns the glyph shown next to a note
func (a Accidental) Symbol() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	case Natural:
		return "♮"
	}
	return ""
}

// Suffix returns the ASCII form used inside note identifiers
func (a Accidental) Suffix() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	case Natural:
		return "n"
	}
	return ""
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	case Natural:
		return "natural"
	}
	return "none"
}

// ParseAccidental accepts a name ("sharp"), a suffix ("#") or a symbol ("♯")
func ParseAccidental(s string) (Accidental, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoAccidental, nil
	case "sharp", "#", "♯":
		return Sharp, nil
	case "flat", "b", "♭":
		return Flat, nil
	case "natural", "n", "♮":
		return Natural, nil
	}
	return NoAccidental, fmt.Errorf("unknown accidental %q", s)
}

// Pitch is a parsed note identifier such as "C4", "F#5" or "Bb4"
type Pitch struct {
	Letter     byte // A-G
	Accidental Accidental
	Octave     int
}

// semitone offsets from C for each letter
var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var accidentalTokens = []struct {
	token string
	acc   Accidental
}{
	{"#", Sharp}, {"♯", Sharp},
	{"b", Flat}, {"♭", Flat},
	{"n", Natural}, {"♮", Natural},
}

// ParseNote parses "<letter><accidental?><octave>"
func ParseNote(id string) (Pitch, error) {
	s := strings.TrimSpace(id)
	if s == "" || s == Rest {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidNote, id)
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	if _, ok := letterSemitones[letter]; !ok {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidNote, id)
	}
	s = s[1:]

	p := Pitch{Letter: letter}
	for _, t := range accidentalTokens {
		if strings.HasPrefix(s, t.token) {
			p.Accidental = t.acc
			s = s[len(t.token):]
			break
		}
	}

	octave, err := strconv.Atoi(s)
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidNote, id)
	}
	p.Octave = octave
	return p, nil
}

// MIDI returns the MIDI note number (C4 = 60). It may fall outside 0-127.
func (p Pitch) MIDI() int {
	n := (p.Octave+1)*12 + letterSemitones[p.Letter]
	switch p.Accidental {
	case Sharp:
		n++
	case Flat:
		n--
	}
	return n
}

func (p Pitch) String() string {
	return string(p.Letter) + p.Accidental.Suffix() + strconv.Itoa(p.Octave)
}

// SameNote reports whether two identifiers name the same written note,
// ignoring spelling differences such as "C#4" vs "C♯4".
func SameNote(a, b string) bool {
	if a == b {
		return true
	}
	pa, errA := ParseNote(a)
	pb, errB := ParseNote(b)
	if errA != nil || errB != nil {
		return false
	}
	return pa == pb
}

// ApplyAccidental rewrites a reference note with the given accidental.
// Unparseable references are returned unchanged.
func ApplyAccidental(ref string, acc Accidental) string {
	if acc == NoAccidental {
		return ref
	}
	p, err := ParseNote(ref)
	if err != nil {
		return ref
	}
	p.Accidental = acc
	return p.String()
}
