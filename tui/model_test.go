package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalimba-tab/config"
	"kalimba-tab/midi"
	"kalimba-tab/playback"
	"kalimba-tab/tab"
)

type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type previewEngine struct{ notes []string }

func (p *previewEngine) Play(n string) { p.notes = append(p.notes, n) }
func (p *previewEngine) Close() error  { return nil }

func newTestModel(t *testing.T) (Model, *previewEngine) {
	cfg := config.DefaultConfig()
	cfg.Editor.AutosaveDelayMS = 0
	cfg.SongsDir = t.TempDir()
	eng := &previewEngine{}
	m := NewModel(tab.NewState("Test Song"), Options{
		Config: cfg,
		Player: playback.NewPlayer(eng, playback.WithClock(instantClock{})),
		Engine: eng,
	})
	return m, eng
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestToggleWritesCellWithMode(t *testing.T) {
	m, eng := newTestModel(t)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	c := m.State.Song.Song.Cell(8, 0)
	assert.Equal(t, tab.Cell{Note: "C4", Time: tab.Quarter}, c)
	assert.Equal(t, []string{"C4"}, eng.notes)
	assert.True(t, m.State.Dirty)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.State.Song.Song.Cell(8, 0).Empty())
}

func TestModesAndMovement(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(m, runes("h"), runes("j"), runes("2"), runes("s"), runes("d"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, tab.Cursor{Tine: 7, Column: 1}, m.State.Cursor)
	assert.Equal(t, tab.Cell{Note: "D#4", Time: tab.Half, Dotted: true}, m.State.Song.Song.Cell(7, 1))

	m, _ = send(m, runes("r"), runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, tab.Rest, m.State.Song.Song.Cell(8, 1).Note)
}

func TestRowsAndTempo(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(m, runes("a"))
	assert.Equal(t, 2*tab.DefaultColumns, m.State.Song.Song.Columns())

	m, _ = send(m, runes("x"))
	assert.Equal(t, 2*tab.DefaultColumns-1, m.State.Song.Song.Columns())

	m, _ = send(m, runes("+"), runes("+"), runes("-"))
	assert.Equal(t, 125, m.State.Song.Tempo)
}

func TestKeyboardNoteLandsOnMatchingTine(t *testing.T) {
	m, eng := newTestModel(t)

	m, _ = send(m, NoteMsg(midi.NoteEvent{Note: 61, Velocity: 100}))
	assert.Equal(t, "C#4", m.State.Song.Song.Cell(8, 0).Note)
	assert.Equal(t, []string{"C#4"}, eng.notes)

	m, _ = send(m, NoteMsg(midi.NoteEvent{Note: 20, Velocity: 100}))
	assert.Contains(t, m.status, "no tine")
}

func TestEditTitle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(m, runes("e"))
	require.True(t, m.editingTitle)
	m.title.SetValue("Spring")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editingTitle)
	assert.Equal(t, "Spring", m.State.Song.Title)

	m, _ = send(m, runes("e"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "Spring", m.State.Song.Title)
}

func TestSaveWritesLibraryFile(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = send(m, msg)

	want := filepath.Join(m.Config.SongsDir, "Test-Song.kal")
	assert.Equal(t, want, m.Path)
	assert.False(t, m.State.Dirty)

	song, err := tab.Load(want)
	require.NoError(t, err)
	assert.Equal(t, "C4", song.Song.Cell(8, 0).Note)
}

func TestPlayRunsSnapshot(t *testing.T) {
	m, eng := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	eng.notes = nil

	m, cmd := send(m, runes("p"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, playDoneMsg{}, msg)
	assert.Equal(t, []string{"C4"}, eng.notes)

	m, _ = send(m, msg)
	assert.Equal(t, "stopped", m.status)
}

func TestViewShowsHeader(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 20})
	out := m.View()
	assert.Contains(t, out, "Test Song")
	assert.Contains(t, out, "STOP")
	assert.Contains(t, out, "120bpm")

	m, cmd := send(m, runes("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
