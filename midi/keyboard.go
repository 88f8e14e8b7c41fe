package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// KeyboardController handles a standard MIDI keyboard
type KeyboardController struct {
	id       string
	stopFunc func()

	mu       sync.Mutex
	closed   bool
	noteChan chan NoteEvent
}

// NewKeyboardController listens on the input port (input only)
func NewKeyboardController(id string, inPort drivers.In) (*KeyboardController, error) {
	kb := newKeyboard(id)

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			kb.handle(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input %s: %w", id, err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

func newKeyboard(id string) *KeyboardController {
	return &KeyboardController{
		id:       id,
		noteChan: make(chan NoteEvent, 32),
	}
}

// handle forwards key presses, dropping them when nobody keeps up
func (kb *KeyboardController) handle(msg gomidi.Message) {
	ev, ok := decode(msg)
	if !ok {
		return
	}
	ev.Source = kb.id

	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.closed {
		return
	}
	select {
	case kb.noteChan <- ev:
	default:
	}
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Type() ControllerType {
	return ControllerKeyboard
}

func (kb *KeyboardController) NoteEvents() <-chan NoteEvent {
	return kb.noteChan
}

func (kb *KeyboardController) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if !kb.closed {
		kb.closed = true
		close(kb.noteChan)
	}
	return nil
}
