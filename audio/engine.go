// Package audio sounds tine notes: over MIDI, through a SoundFont synth, or
// not at all.
package audio

import (
	"errors"
	"fmt"

	"kalimba-tab/config"
	"kalimba-tab/debug"
	"kalimba-tab/tab"
)

// Engine strikes notes. Play must return quickly and never fail loudly; a
// note the engine cannot sound is logged and dropped.
type Engine interface {
	Play(note string)
	Close() error
}

// NullEngine sounds nothing
type NullEngine struct{}

func (NullEngine) Play(note string) { debug.Log("audio", "null: %s", note) }
func (NullEngine) Close() error     { return nil }

// Multi fans every note out to several engines
type Multi []Engine

func (m Multi) Play(note string) {
	for _, e := range m {
		e.Play(note)
	}
}

func (m Multi) Close() error {
	var errs []error
	for _, e := range m {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open builds the engine selected in the config
func Open(cfg *config.Config) (Engine, error) {
	switch cfg.Audio.Engine {
	case config.EngineNone, "":
		return NullEngine{}, nil
	case config.EngineMIDI:
		e, err := OpenMIDI(cfg.Audio.MIDIPort, cfg.MIDIChannel(), velocity(cfg.Audio.Velocity), cfg.Hold())
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.EngineSynth:
		e, err := OpenSynth(cfg.Audio.SoundFont, cfg.Audio.Program, velocity(cfg.Audio.Velocity), cfg.Hold())
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown audio engine %q", cfg.Audio.Engine)
}

func velocity(v int) uint8 {
	if v <= 0 || v > 127 {
		return 100
	}
	return uint8(v)
}

// midiKey converts a note id to a MIDI key, false for rests and bad ids
func midiKey(note string) (uint8, bool) {
	if note == tab.Rest {
		return 0, false
	}
	p, err := tab.ParseNote(note)
	if err != nil {
		debug.Log("audio", "dropping %q: %v", note, err)
		return 0, false
	}
	k := p.MIDI()
	if k < 0 || k > 127 {
		debug.Log("audio", "dropping %q: key %d out of range", note, k)
		return 0, false
	}
	return uint8(k), true
}
