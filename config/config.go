package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// EngineType selects how tines are sounded
type EngineType string

const (
	EngineNone  EngineType = "none"
	EngineMIDI  EngineType = "midi"
	EngineSynth EngineType = "synth"
)

// AudioConfig defines the audio engine used for playback
type AudioConfig struct {
	Engine    EngineType `json:"engine"`
	MIDIPort  string     `json:"midiPort,omitempty"` // empty = first output port
	Channel   int        `json:"channel,omitempty"`  // 1-16
	Velocity  int        `json:"velocity,omitempty"`
	HoldMS    int        `json:"holdMs,omitempty"` // note-off delay for MIDI output
	SoundFont string     `json:"soundFont,omitempty"`
	Program   int        `json:"program"` // General MIDI program for the synth
}

// InputConfig controls MIDI keyboard note entry
type InputConfig struct {
	Keyboards bool     `json:"keyboards"`
	Ignore    []string `json:"ignore,omitempty"` // port name substrings to skip
}

// EditorConfig stores editor preferences
type EditorConfig struct {
	DefaultTempo    int    `json:"defaultTempo,omitempty"`
	AutosaveDelayMS int    `json:"autosaveDelayMs,omitempty"` // 0 disables autosave
	Palette         string `json:"palette,omitempty"`         // GPL file, empty = built in
	ASCII           bool   `json:"ascii,omitempty"`
	Accidental      string `json:"accidental,omitempty"` // starting accidental mode: sharp, flat, natural
	Follow          bool   `json:"follow"`               // scroll with the playback highlight
}

// Config is the main configuration structure
type Config struct {
	Audio    AudioConfig  `json:"audio"`
	Input    InputConfig  `json:"input"`
	Editor   EditorConfig `json:"editor"`
	SongsDir string       `json:"songsDir,omitempty"`
	Debug    bool         `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			Engine:   EngineMIDI,
			Channel:  1,
			Velocity: 100,
			HoldMS:   400,
			Program:  108, // GM Kalimba
		},
		Input: InputConfig{
			Keyboards: true,
		},
		Editor: EditorConfig{
			DefaultTempo:    120,
			AutosaveDelayMS: 2000,
			Follow:          true,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kalimba-tab"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to the given path
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SongsPath returns the tab library directory. The default mirrors the
// desktop app: ~/Documents/KalimbaTabs.
func (c *Config) SongsPath() (string, error) {
	if c.SongsDir != "" {
		return c.SongsDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents", "KalimbaTabs"), nil
}

// AutosaveDelay returns the debounce delay, zero when autosave is off
func (c *Config) AutosaveDelay() time.Duration {
	if c.Editor.AutosaveDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.Editor.AutosaveDelayMS) * time.Millisecond
}

// Hold returns how long a MIDI note is held before its note-off
func (c *Config) Hold() time.Duration {
	if c.Audio.HoldMS <= 0 {
		return 400 * time.Millisecond
	}
	return time.Duration(c.Audio.HoldMS) * time.Millisecond
}

// MIDIChannel returns the zero-based output channel
func (c *Config) MIDIChannel() uint8 {
	ch := c.Audio.Channel
	if ch < 1 || ch > 16 {
		ch = 1
	}
	return uint8(ch - 1)
}
