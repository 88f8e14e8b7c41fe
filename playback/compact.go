// Package playback turns a tab grid into timed events and plays them.
package playback

import (
	"time"

	"kalimba-tab/tab"
)

// Event is one compacted grid column: the notes struck together and how long
// to wait before the next column.
type Event struct {
	Notes  []string     // first-seen order, duplicates collapsed; may contain tab.Rest
	Time   tab.Duration // code of the longest cell in the column
	Length float64      // that cell's length as a fraction of a whole note
}

// Sounding returns the notes that trigger audio (everything but rests)
func (e Event) Sounding() []string {
	var out []string
	for _, n := range e.Notes {
		if n != tab.Rest {
			out = append(out, n)
		}
	}
	return out
}

func (e *Event) add(note string) {
	for _, n := range e.Notes {
		if n == note {
			return
		}
	}
	e.Notes = append(e.Notes, note)
}

// Compact builds one event per column in playback order: the last column
// first, column 0 last. Empty columns still produce an event (no notes, a
// quarter) so event i always maps to column Columns()-1-i.
//
// The grid must be rectangular; use Grid.Validate first. A ragged grid panics.
func Compact(g tab.Grid) []Event {
	cols := g.Columns()
	events := make([]Event, 0, cols)

	for c := cols - 1; c >= 0; c-- {
		ev := Event{Time: tab.DefaultDuration, Length: tab.DefaultDuration.Length()}
		if g.ColumnEmpty(c) {
			events = append(events, ev)
			continue
		}
		seen := false
		for t := range g {
			cell := g[t][c]
			if cell.Empty() {
				continue
			}
			ev.add(cell.Note)
			// weighted by played length, not by the largest code: a quarter
			// with an eighth waits a quarter. On a tie the later tine wins.
			if l := cell.Length(); !seen || l >= ev.Length {
				ev.Time = cell.Duration()
				ev.Length = l
				seen = true
			}
		}
		events = append(events, ev)
	}
	return events
}

// BaseDelay is the length of a whole note at the given tempo:
// 4 * (1000 / (tempo / 60)) milliseconds. It is zero for a non-positive tempo.
func BaseDelay(tempo int) time.Duration {
	if tempo <= 0 {
		return 0
	}
	ms := 4 * (1000 / (float64(tempo) / 60))
	return time.Duration(ms * float64(time.Millisecond))
}

// Delay returns how long to wait after striking the event
func (e Event) Delay(tempo int) time.Duration {
	return scale(BaseDelay(tempo), e.Length)
}

func scale(base time.Duration, length float64) time.Duration {
	return time.Duration(float64(base) * length)
}

// Step is an event placed on the song's timeline
type Step struct {
	Event
	Index  int // position in playback order
	Column int // grid column the event came from
	Start  time.Duration
	Delay  time.Duration
}

// Schedule lays events out on an absolute timeline
func Schedule(events []Event, tempo int) []Step {
	base := BaseDelay(tempo)
	last := len(events) - 1
	steps := make([]Step, len(events))
	var at time.Duration
	for i, ev := range events {
		d := scale(base, ev.Length)
		steps[i] = Step{Event: ev, Index: i, Column: last - i, Start: at, Delay: d}
		at += d
	}
	return steps
}

// Total returns the running time of the events
func Total(events []Event, tempo int) time.Duration {
	base := BaseDelay(tempo)
	var total time.Duration
	for _, ev := range events {
		total += scale(base, ev.Length)
	}
	return total
}
