package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"kalimba-tab/debug"
)

// MIDIEngine sends notes to a MIDI output port
type MIDIEngine struct {
	port     drivers.Out
	send     func(gomidi.Message) error
	channel  uint8
	velocity uint8
	hold     time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewMIDIEngine wraps an already opened sender
func NewMIDIEngine(send func(gomidi.Message) error, channel, velocity uint8, hold time.Duration) *MIDIEngine {
	return &MIDIEngine{send: send, channel: channel, velocity: velocity, hold: hold}
}

// OpenMIDI opens the output port whose name contains portName, or the first
// port when portName is empty
func OpenMIDI(portName string, channel, velocity uint8, hold time.Duration) (*MIDIEngine, error) {
	out, err := findOutPort(portName)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", out.String(), err)
	}
	debug.Log("audio", "midi out: %s ch=%d", out.String(), channel+1)

	e := NewMIDIEngine(send, channel, velocity, hold)
	e.port = out
	return e, nil
}

func findOutPort(name string) (drivers.Out, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports")
	}
	if name == "" {
		return outs[0], nil
	}
	want := strings.ToLower(name)
	for _, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("MIDI output %q not found", name)
}

// ListOutPorts returns the names of the available MIDI outputs
func ListOutPorts() []string {
	var names []string
	for _, p := range gomidi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// Play sends a note-on now and the matching note-off after the hold time
func (e *MIDIEngine) Play(note string) {
	key, ok := midiKey(note)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if err := e.send(gomidi.NoteOn(e.channel, key, e.velocity)); err != nil {
		debug.Log("audio", "note on %s: %v", note, err)
		return
	}

	e.wg.Add(1)
	go func(ch, k uint8) {
		defer e.wg.Done()
		time.Sleep(e.hold)
		if err := e.send(gomidi.NoteOff(ch, k)); err != nil {
			debug.Log("audio", "note off %s: %v", note, err)
		}
	}(e.channel, key)
}

// Close waits for pending note-offs and closes the port. Notes played after
// Close are dropped.
func (e *MIDIEngine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.wg.Wait()
	if e.port != nil {
		return e.port.Close()
	}
	return nil
}
