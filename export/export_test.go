package export

import (
	"bytes"
	"io"
	"math"
	"os"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"kalimba-tab/audio"
	"kalimba-tab/tab"
)

// column 2 plays first, column 1 is silent, column 0 is a two note chord
func testSong() *tab.Song {
	s := tab.NewSong("Lullaby")
	s.Song = tab.NewGrid(3)
	s.Song.Set(8, 2, tab.Cell{Note: "C4", Time: tab.Quarter})
	s.Song.Set(9, 0, tab.Cell{Note: "E4", Time: tab.Eighth})
	s.Song.Set(10, 0, tab.Cell{Note: "G4", Time: tab.Eighth})
	s.Song.Set(0, 0, tab.Cell{Note: tab.Rest, Time: tab.Sixteenth})
	return s
}

type noteAt struct {
	on   bool
	key  uint8
	tick uint32
}

func TestMIDITimeline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MIDI(&buf, testSong()))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	var got []noteAt
	var abs uint32
	for _, ev := range s.Tracks[0] {
		abs += ev.Delta
		msg := gomidi.Message(ev.Message)
		var ch, key, vel uint8
		switch {
		case msg.GetNoteOn(&ch, &key, &vel):
			got = append(got, noteAt{true, key, abs})
		case msg.GetNoteOff(&ch, &key, &vel):
			got = append(got, noteAt{false, key, abs})
		}
	}

	assert.Equal(t, []noteAt{
		{true, 60, 0},
		{false, 60, 960},
		{true, 64, 1920},
		{true, 67, 1920},
		{false, 64, 2400},
		{false, 67, 2400},
	}, got)

	tempos := s.TempoChanges()
	require.NotEmpty(t, tempos)
	assert.Equal(t, 120.0, tempos[0].BPM)
}

func TestMIDIRejectsInvalidSong(t *testing.T) {
	s := testSong()
	s.Tempo = 0
	assert.ErrorIs(t, MIDI(&bytes.Buffer{}, s), tab.ErrInvalidTempo)
}

func TestMIDIKeysDedupeEnharmonics(t *testing.T) {
	assert.Equal(t, []uint8{61, 60}, midiKeys([]string{"C#4", "Db4", "C4", "rest", "zz"}))
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, testSong(), true))
	out := buf.String()
	assert.Contains(t, out, "Lullaby\n120 bpm, 3 columns, 1.25s")
	assert.Contains(t, out, "  0  |")
}

func TestStrikes(t *testing.T) {
	assert.Equal(t, []audio.Strike{
		{Key: 60, Start: 0, Hold: 500 * time.Millisecond},
		{Key: 64, Start: time.Second, Hold: 250 * time.Millisecond},
		{Key: 67, Start: time.Second, Hold: 250 * time.Millisecond},
	}, Strikes(testSong()))
}

func TestWriteWAVRoundTrip(t *testing.T) {
	assert := assert.New(t)
	f, err := os.CreateTemp(t.TempDir(), "out-*.wav")
	require.NoError(t, err)
	defer f.Close()

	samples := []int{0, 0, 1000, -1000, math.MaxInt16, -math.MaxInt16, 12, -12}
	require.NoError(t, writeWAV(f, samples))

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(uint16(2), dec.NumChans)
	assert.Equal(uint32(audio.SampleRate), dec.SampleRate)
	assert.Equal(uint16(16), dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(samples, buf.Data)
	assert.Equal(4, buf.NumFrames())
}
