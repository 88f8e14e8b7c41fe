package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kalimba-tab/audio"
	"kalimba-tab/config"
	"kalimba-tab/debug"
	"kalimba-tab/midi"
	"kalimba-tab/playback"
	"kalimba-tab/render"
	"kalimba-tab/tab"
	"kalimba-tab/theme"
	"kalimba-tab/widgets"
)

// lines used by everything except the tab grid
const chromeHeight = 9

// Options wires the editor to its collaborators
type Options struct {
	Config  *config.Config
	Theme   *theme.Theme
	Player  *playback.Player
	Engine  audio.Engine        // previews entered notes; may be nil
	Devices *midi.DeviceManager // may be nil
	Path    string              // save location; empty derives one from the title
}

type Model struct {
	State   *tab.State
	Player  *playback.Player
	Engine  audio.Engine
	Devices *midi.DeviceManager
	Theme   *theme.Theme
	Config  *config.Config
	Path    string

	keys         keyMap
	help         help.Model
	title        textinput.Model
	editingTitle bool

	autosave func(func())
	save     func(path string, song *tab.Song) error

	ctx    context.Context
	cancel context.CancelFunc

	from     int // first visible column
	height   int
	keyboard string // last connected keyboard
	status   string
	quitting bool
}

// UpdateMsg signals a playback highlight change
type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

type NoteMsg midi.NoteEvent

type playDoneMsg struct{ err error }

type savedMsg struct {
	path string
	err  error
}

func NewModel(state *tab.State, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "song title"
	ti.Prompt = "title: "
	ti.CharLimit = 60
	ti.Width = 40

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		State:   state,
		Player:  opts.Player,
		Engine:  opts.Engine,
		Devices: opts.Devices,
		Theme:   th,
		Config:  cfg,
		Path:    opts.Path,
		keys:    defaultKeys(),
		help:    help.New(),
		title:   ti,
		save:    tab.Save,
		ctx:     ctx,
		cancel:  cancel,
	}
	if d := cfg.AutosaveDelay(); d > 0 {
		m.autosave = debounce.New(d)
	}
	return m
}

func ListenForUpdates(player *playback.Player) tea.Cmd {
	return func() tea.Msg {
		<-player.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func ListenForNotes(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-deviceMgr.Notes()
		if !ok {
			return nil
		}
		return NoteMsg(note)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Player)}
	if m.Devices != nil {
		cmds = append(cmds, ListenForDevices(m.Devices), ListenForNotes(m.Devices))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editingTitle {
			return m.updateTitle(msg)
		}
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollTo(m.State.Cursor.Column)

	case UpdateMsg:
		if idx := m.Player.CurrentIndex(); idx != playback.NoIndex && m.Config.Editor.Follow {
			m.scrollTo(idx)
		}
		return m, ListenForUpdates(m.Player)

	case playDoneMsg:
		if msg.err != nil {
			m.status = "play: " + msg.err.Error()
		} else {
			m.status = "stopped"
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.Path = msg.path
			m.State.Dirty = false
			m.status = "saved " + msg.path
		}

	case NoteMsg:
		m.enterNote(midi.NoteEvent(msg))
		return m, ListenForNotes(m.Devices)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.keyboard = event.ID
		} else if event.ID == m.keyboard {
			m.keyboard = ""
		}
		m.status = fmt.Sprintf("%s %s", event.ID, event.Type)
		return m, ListenForDevices(m.Devices)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.State
	k := m.keys
	edited := false

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		m.Player.Stop()
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		s.MoveCursor(0, -1)
	case key.Matches(msg, k.Down):
		s.MoveCursor(0, 1)
	case key.Matches(msg, k.Left):
		s.MoveCursor(-1, 0)
	case key.Matches(msg, k.Right):
		s.MoveCursor(1, 0)

	case key.Matches(msg, k.Toggle):
		edited = s.ToggleCell(s.Cursor.Tine, s.Cursor.Column)
		if c := s.Song.Song.Cell(s.Cursor.Tine, s.Cursor.Column); edited && !c.Empty() {
			m.preview(c.Note)
		}
	case key.Matches(msg, k.Duration):
		idx := int(msg.String()[0] - '1')
		s.SetDuration(tab.Durations[idx])
	case key.Matches(msg, k.Rest):
		s.ToggleRest()
	case key.Matches(msg, k.Dotted):
		s.ToggleDotted()
	case key.Matches(msg, k.Triplet):
		s.ToggleTriplet()
	case key.Matches(msg, k.Sharp):
		s.SetAccidental(tab.Sharp)
	case key.Matches(msg, k.Flat):
		s.SetAccidental(tab.Flat)
	case key.Matches(msg, k.Natural):
		s.SetAccidental(tab.Natural)
	case key.Matches(msg, k.AddRows):
		s.AddRows(tab.DefaultColumns)
		edited = true
	case key.Matches(msg, k.RemoveRow):
		before := s.Song.Song.Columns()
		s.RemoveRow()
		edited = s.Song.Song.Columns() != before

	case key.Matches(msg, k.Play):
		if m.Player.Playing() {
			m.Player.Stop()
			return m, nil
		}
		m.status = "playing"
		return m, m.play()
	case key.Matches(msg, k.TempoUp):
		s.SetTempo(s.Song.Tempo + 5)
		edited = true
	case key.Matches(msg, k.TempoDown):
		s.SetTempo(s.Song.Tempo - 5)
		edited = true

	case key.Matches(msg, k.Title):
		m.editingTitle = true
		m.title.SetValue(s.Song.Title)
		return m, m.title.Focus()
	case key.Matches(msg, k.Save):
		return m, m.saveNow()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.scrollTo(s.Cursor.Column)
	if edited {
		m.scheduleAutosave()
	}
	return m, nil
}

func (m Model) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.State.SetTitle(strings.TrimSpace(m.title.Value()))
		m.editingTitle = false
		m.title.Blur()
		m.scheduleAutosave()
		return m, nil
	case tea.KeyEsc:
		m.editingTitle = false
		m.title.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

// enterNote writes a keyboard note on the matching tine at the cursor row
func (m *Model) enterNote(ev midi.NoteEvent) {
	tine, note, ok := m.State.Song.TineNotes.Match(int(ev.Note))
	if !ok {
		m.status = fmt.Sprintf("no tine for MIDI note %d", ev.Note)
		return
	}
	if m.State.Place(tine, m.State.Cursor.Column, note) {
		m.State.Cursor.Tine = tine
		m.preview(note)
		m.scheduleAutosave()
	}
}

func (m *Model) preview(note string) {
	if m.Engine != nil && note != tab.Rest {
		m.Engine.Play(note)
	}
}

func (m Model) play() tea.Cmd {
	song := m.State.Snapshot()
	player, ctx := m.Player, m.ctx
	return func() tea.Msg {
		return playDoneMsg{err: player.Play(ctx, song)}
	}
}

// savePath is the explicit path or one derived from the title in the library
func (m Model) savePath() (string, error) {
	if m.Path != "" {
		return m.Path, nil
	}
	dir, err := m.Config.SongsPath()
	if err != nil {
		return "", err
	}
	return tab.SongPath(dir, m.State.Song.Title), nil
}

func (m Model) saveNow() tea.Cmd {
	song := m.State.Snapshot()
	path, err := m.savePath()
	save := m.save
	return func() tea.Msg {
		if err == nil {
			err = save(path, &song)
		}
		return savedMsg{path: path, err: err}
	}
}

func (m Model) scheduleAutosave() {
	if m.autosave == nil {
		return
	}
	song := m.State.Snapshot()
	path, err := m.savePath()
	if err != nil {
		debug.Log("save", "autosave: %v", err)
		return
	}
	save := m.save
	m.autosave(func() {
		start := time.Now()
		if err := save(path, &song); err != nil {
			debug.Log("save", "autosave %s: %v", path, err)
			return
		}
		debug.Log("save", "autosaved %s in %s", path, time.Since(start))
	})
}

func (m Model) rows() int {
	if m.height <= 0 {
		return 0
	}
	return max(1, m.height-chromeHeight)
}

func (m *Model) scrollTo(col int) {
	m.from = render.Scroll(m.from, col, m.rows(), m.State.Song.Song.Columns())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.State
	headerStyle := m.Theme.HeaderStyle()
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := "STOP"
	if m.Player.Playing() {
		playState = "PLAY"
	}
	dirty := ""
	if s.Dirty {
		dirty = " *"
	}
	kb := ""
	if m.keyboard != "" {
		kb = "  KB:" + m.keyboard
	}
	header := headerStyle.Render(fmt.Sprintf("%s%s  %s  %3dbpm  row:%02d/%02d%s",
		s.Song.Title, dirty, playState, s.Song.Tempo, s.Cursor.Column, s.Song.Song.Columns(), kb))

	grid := render.Tab(&s.Song, render.Options{
		Theme:     m.Theme,
		ASCII:     m.Config.Editor.ASCII,
		Highlight: m.Player.CurrentIndex(),
		Cursor:    &s.Cursor,
		From:      m.from,
		Rows:      m.rows(),
	})

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderMode(m.Theme, s.Mode, m.Config.Editor.ASCII))
	out.WriteString("\n")

	if m.editingTitle {
		out.WriteString(m.title.View())
	} else {
		out.WriteString(dimStyle.Render(m.status))
	}
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))

	if m.help.ShowAll {
		out.WriteString("\n\n")
		out.WriteString(widgets.RenderGlyphLegend(m.Theme, m.Config.Editor.ASCII))
	}

	return out.String()
}
