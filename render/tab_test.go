package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kalimba-tab/tab"
	"kalimba-tab/theme"
)

func testSong() *tab.Song {
	s := tab.NewSong("t")
	s.Song = tab.NewGrid(3)
	s.Song.Set(8, 0, tab.Cell{Note: "C4", Time: tab.Quarter})
	s.Song.Set(6, 1, tab.Cell{Note: "F#4", Time: tab.Eighth, Dotted: true})
	s.Song.Set(0, 2, tab.Cell{Note: tab.Rest, Time: tab.Half})
	return s
}

func TestPlainTabLayout(t *testing.T) {
	assert := assert.New(t)
	lines := strings.Split(Tab(testSong(), Plain(true)), "\n")
	assert.Len(lines, 4)

	assert.True(strings.HasPrefix(lines[0], "      D6  B5  "))
	// column 0 is drawn first, right under the header
	assert.True(strings.HasPrefix(lines[1], "  0  |"))
	assert.Equal("q   ", lines[1][6+8*cellWidth:6+9*cellWidth])
	assert.Equal("e.# ", lines[2][6+6*cellWidth:6+7*cellWidth])
	assert.True(strings.HasPrefix(lines[3], "  2  |H   "))
	assert.True(strings.HasSuffix(lines[3], ".   |"))
}

func TestMarkers(t *testing.T) {
	opts := Plain(true)
	opts.Highlight = 2
	opts.Cursor = &tab.Cursor{Tine: 8, Column: 1}
	lines := strings.Split(Tab(testSong(), opts), "\n")

	assert.True(t, strings.HasPrefix(lines[1], "  0  |"))
	assert.True(t, strings.HasPrefix(lines[2], "  1 *|"))
	assert.True(t, strings.HasPrefix(lines[3], "  2 >|"))
}

func TestViewport(t *testing.T) {
	opts := Plain(true)
	opts.From = 1
	opts.Rows = 1
	lines := strings.Split(Tab(testSong(), opts), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "  1  |"))
}

func TestWindowAndScroll(t *testing.T) {
	assert := assert.New(t)

	from, to := Window(0, 0, 10)
	assert.Equal([2]int{0, 10}, [2]int{from, to})
	from, to = Window(8, 5, 10)
	assert.Equal([2]int{5, 10}, [2]int{from, to})
	from, to = Window(-3, 5, 2)
	assert.Equal([2]int{0, 2}, [2]int{from, to})

	assert.Equal(0, Scroll(0, 3, 5, 20))
	assert.Equal(4, Scroll(0, 8, 5, 20))
	assert.Equal(2, Scroll(6, 2, 5, 20))
	assert.Equal(6, Scroll(6, -1, 5, 20))
}

func TestThemedRenderKeepsContent(t *testing.T) {
	opts := Options{Theme: theme.Default(), Highlight: 1, Cursor: &tab.Cursor{Tine: 8, Column: 0}}
	out := Tab(testSong(), opts)
	assert.Contains(t, out, "♩")
	assert.Contains(t, out, "▶")
	assert.Contains(t, out, "C4")
}
