package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kalimba-tab/audio"
	"kalimba-tab/debug"
	"kalimba-tab/midi"
	"kalimba-tab/playback"
	"kalimba-tab/tab"
	"kalimba-tab/theme"
	"kalimba-tab/tui"
)

var editorAccidental string

func init() {
	rootCmd.Flags().StringVar(&editorAccidental, "accidental", "", "start with an accidental mode: sharp (#), flat (b) or natural (n)")
}

// startAccidental prefers the flag over the config value
func startAccidental(flag, configured string) (tab.Accidental, error) {
	src, value := "--accidental", flag
	if value == "" {
		src, value = "editor.accidental", configured
	}
	acc, err := tab.ParseAccidental(value)
	if err != nil {
		return tab.NoAccidental, fmt.Errorf("%s: %w", src, err)
	}
	return acc, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	logger := log.FromContext(cmd.Context())

	state := tab.NewState("untitled")
	state.Song.Tempo = tab.ClampTempo(cfg.Editor.DefaultTempo)
	path := ""
	if len(args) == 1 {
		path = args[0]
		song, err := tab.Load(path)
		switch {
		case err == nil:
			state.Open(*song)
		case errors.Is(err, fs.ErrNotExist):
			state.SetTitle(titleFromPath(path))
			state.Dirty = false
		default:
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
	}

	acc, err := startAccidental(editorAccidental, cfg.Editor.Accidental)
	if err != nil {
		return err
	}
	state.Mode.Accidental = acc

	th, err := theme.Load(cfg.Editor.Palette)
	if err != nil {
		return fmt.Errorf("cannot load palette: %w", err)
	}

	engine, err := audio.Open(cfg)
	if err != nil {
		logger.Warn("audio disabled", "engine", cfg.Audio.Engine, "err", err)
		engine = audio.NullEngine{}
	}
	defer engine.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var devices *midi.DeviceManager
	if cfg.Input.Keyboards {
		devices = midi.NewDeviceManager(cfg.Input.Ignore...)
		go devices.Run(ctx)
	}

	player := playback.NewPlayer(engine)
	m := tui.NewModel(state, tui.Options{
		Config:  cfg,
		Theme:   th,
		Player:  player,
		Engine:  engine,
		Devices: devices,
		Path:    path,
	})

	debug.Log("editor", "open %q (%d columns)", state.Song.Title, state.Song.Song.Columns())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	player.Stop()
	return nil
}
