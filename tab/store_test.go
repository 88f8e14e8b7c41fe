package tab

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOriginalDocument(t *testing.T) {
	// a .kal file as written by the desktop editor: no dotted/triplet keys
	var b strings.Builder
	b.WriteString(`{"songTitle":"Twinkle","tempo":90,"tineNotes":[`)
	for i, n := range DefaultTuning {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"` + n + `"`)
	}
	b.WriteString(`],"song":[`)
	for i := 0; i < NumTines; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`[{"note":"","time":4},{"note":"rest","time":8}]`)
	}
	b.WriteString(`]}`)

	song, err := Decode(strings.NewReader(b.String()), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Twinkle", song.Title)
	assert.Equal(t, 90, song.Tempo)
	assert.Equal(t, 2, song.Song.Columns())
	assert.Equal(t, Cell{Note: Rest, Time: Eighth}, song.Song.Cell(16, 1))
}

func TestDecodeRejectsRaggedGrid(t *testing.T) {
	doc := `{"songTitle":"x","tempo":100,"song":[[{"note":"","time":4}]]}`
	_, err := Decode(strings.NewReader(doc), FormatJSON)
	assert.ErrorIs(t, err, ErrTineCount)
}

func TestDecodeFillsMissingTuning(t *testing.T) {
	song := NewSong("x")
	song.TineNotes = Tuning{}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, song, FormatJSON))

	got, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning, got.TineNotes)
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	song := NewSong("Yaml Song")
	song.Song.Set(3, 5, Cell{Note: "E5", Time: Sixteenth, Triplet: true})

	path := filepath.Join(dir, "song.yaml")
	require.NoError(t, Save(path, song))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, song, got)
}

func TestListSongsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := SongPath(dir, "old song")
	recent := SongPath(dir, "recent")
	require.NoError(t, Save(old, NewSong("old song")))
	require.NoError(t, Save(recent, NewSong("recent")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	songs, err := ListSongs(dir)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "recent", songs[0].Name)
	assert.Equal(t, "old-song", songs[1].Name)
}

func TestListSongsMissingDir(t *testing.T) {
	songs, err := ListSongs(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my-song-1", SanitizeFilename("my song/1"))
	assert.Equal(t, "what", SanitizeFilename("what?"))
}
