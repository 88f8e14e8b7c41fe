package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"kalimba-tab/debug"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// ports that are never keyboards
var virtualPorts = []string{"midi through", "rtmidi"}

// DeviceManager handles hot-plug detection of MIDI keyboards and merges
// their notes into one stream
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	notes       chan NoteEvent
	pollRate    time.Duration
	ignore      []string
	wg          sync.WaitGroup

	listPorts func() []string
	connect   func(name string) (Controller, error)
}

// NewDeviceManager creates a new device manager. Input ports whose name
// contains one of the ignore substrings are skipped.
func NewDeviceManager(ignore ...string) *DeviceManager {
	dm := &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		notes:       make(chan NoteEvent, 64),
		pollRate:    time.Second,
		listPorts:   ListInPorts,
		connect:     openKeyboard,
	}
	for _, s := range append(ignore, virtualPorts...) {
		if s = strings.TrimSpace(s); s != "" {
			dm.ignore = append(dm.ignore, strings.ToLower(s))
		}
	}
	return dm
}

// ListInPorts returns the names of the available MIDI inputs
func ListInPorts() []string {
	var names []string
	for _, p := range gomidi.GetInPorts() {
		names = append(names, p.String())
	}
	return names
}

func openKeyboard(name string) (Controller, error) {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, err
	}
	return NewKeyboardController(name, in)
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Notes returns key presses from every connected keyboard
func (dm *DeviceManager) Notes() <-chan NoteEvent {
	return dm.notes
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine). Both channels
// are closed when ctx is done.
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			dm.wg.Wait()
			close(dm.events)
			close(dm.notes)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

func (dm *DeviceManager) scan(ctx context.Context) {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []string, 1)
	go func() {
		ch <- dm.listPorts()
	}()

	var names []string
	select {
	case names = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("midi", "port scan timed out")
		return
	}
	debug.LogEvery(30, "midi", "scan: %d input ports", len(names))

	seenIDs := make(map[string]bool)

	for _, id := range names {
		if dm.ignored(id) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		kb, err := dm.connect(id)
		if err != nil {
			debug.Log("midi", "connect %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = kb
		dm.mu.Unlock()

		dm.wg.Add(1)
		go dm.forward(ctx, kb)

		debug.Log("midi", "keyboard connected: %s", id)
		dm.emit(DeviceEvent{Type: DeviceConnected, Controller: kb, ID: id})
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		dm.controllers[id].Close()
		delete(dm.controllers, id)
		debug.Log("midi", "keyboard disconnected: %s", id)
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	dm.mu.Unlock()
}

// forward copies a controller's notes until it is closed
func (dm *DeviceManager) forward(ctx context.Context, c Controller) {
	defer dm.wg.Done()
	for ev := range c.NoteEvents() {
		select {
		case dm.notes <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("midi", "dropped device event for %s", ev.ID)
	}
}

func (dm *DeviceManager) ignored(name string) bool {
	name = strings.ToLower(name)
	for _, s := range dm.ignore {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}
