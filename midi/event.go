package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// NoteEvent is sent when a key is pressed on a keyboard
type NoteEvent struct {
	Source   string // controller ID
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// decode extracts a key press. Note-offs and note-ons with zero velocity
// are releases and are skipped.
func decode(msg gomidi.Message) (NoteEvent, bool) {
	var channel, note, velocity uint8
	if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
		return NoteEvent{Note: note, Velocity: velocity, Channel: channel}, true
	}
	return NoteEvent{}, false
}
