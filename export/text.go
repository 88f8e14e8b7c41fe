package export

import (
	"fmt"
	"io"

	"kalimba-tab/playback"
	"kalimba-tab/render"
	"kalimba-tab/tab"
)

// Text writes a printable tab: title, tempo and the grid read bottom-up
func Text(w io.Writer, song *tab.Song, ascii bool) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("cannot export %q: %w", song.Title, err)
	}
	total := playback.Total(playback.Compact(song.Song), song.Tempo)
	_, err := fmt.Fprintf(w, "%s\n%d bpm, %d columns, %s\n\n%s\n",
		song.Title, song.Tempo, song.Song.Columns(), total.Round(1e6), render.Tab(song, render.Plain(ascii)))
	return err
}
