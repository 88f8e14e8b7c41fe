package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerKeyboard
)

func (t ControllerType) String() string {
	if t == ControllerKeyboard {
		return "keyboard"
	}
	return "unknown"
}

// Controller is the interface for MIDI input devices
type Controller interface {
	ID() string
	Type() ControllerType

	// Notes played on the device
	NoteEvents() <-chan NoteEvent

	// Lifecycle
	Close() error
}
