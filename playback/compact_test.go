package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kalimba-tab/tab"
)

func note(n string, d tab.Duration) tab.Cell {
	return tab.Cell{Note: n, Time: d}
}

func TestCompactOneEventPerColumn(t *testing.T) {
	assert := assert.New(t)

	g := tab.NewGrid(5)
	g.Set(8, 0, note("C4", tab.Quarter))
	g.Set(7, 3, note("D4", tab.Half))

	events := Compact(g)
	assert.Len(events, 5)

	// last column plays first
	assert.Equal([]string{"D4"}, events[1].Notes)
	assert.Equal(tab.Half, events[1].Time)
	assert.Equal([]string{"C4"}, events[4].Notes)
}

func TestCompactEmptyColumnIsQuarterWithNoNotes(t *testing.T) {
	events := Compact(tab.NewGrid(1))
	assert.Len(t, events, 1)
	assert.Empty(t, events[0].Notes)
	assert.Equal(t, tab.Quarter, events[0].Time)
	assert.Equal(t, 0.25, events[0].Length)
}

func TestCompactLongestCellWins(t *testing.T) {
	assert := assert.New(t)

	g := tab.NewGrid(1)
	g.Set(8, 0, note("C4", tab.Quarter))
	g.Set(9, 0, note("E4", tab.Eighth))

	ev := Compact(g)[0]
	assert.Equal(tab.Quarter, ev.Time)
	assert.Equal([]string{"C4", "E4"}, ev.Notes)

	g = tab.NewGrid(1)
	g.Set(8, 0, note("C4", tab.Sixteenth))
	g.Set(9, 0, note("E4", tab.Whole))
	assert.Equal(tab.Whole, Compact(g)[0].Time)
}

func TestCompactModifiersAffectLength(t *testing.T) {
	g := tab.NewGrid(1)
	g.Set(8, 0, tab.Cell{Note: "C4", Time: tab.Quarter, Dotted: true})
	g.Set(9, 0, tab.Cell{Note: "E4", Time: tab.Half, Triplet: true})

	ev := Compact(g)[0]
	assert.Equal(t, tab.Quarter, ev.Time)
	assert.InDelta(t, 0.375, ev.Length, 1e-9)
}

func TestCompactKeepsRestsAndDedupes(t *testing.T) {
	g := tab.NewGrid(1)
	g.Set(0, 0, note(tab.Rest, tab.Half))
	g.Set(5, 0, note("A4", tab.Quarter))
	g.Set(14, 0, note("A4", tab.Quarter))

	ev := Compact(g)[0]
	assert.Equal(t, []string{tab.Rest, "A4"}, ev.Notes)
	assert.Equal(t, []string{"A4"}, ev.Sounding())
	assert.Equal(t, tab.Half, ev.Time)
}

func TestCompactUnknownCodeFallsBackToQuarter(t *testing.T) {
	g := tab.NewGrid(1)
	g.Set(8, 0, note("C4", tab.Duration(3)))
	assert.Equal(t, tab.Quarter, Compact(g)[0].Time)
}

func TestBaseDelay(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(4*time.Second, BaseDelay(60))
	assert.Equal(2*time.Second, BaseDelay(120))
	assert.Equal(time.Duration(0), BaseDelay(0))

	ev := Event{Time: tab.Quarter, Length: 0.25}
	assert.Equal(time.Second, ev.Delay(60))
}

func TestScheduleAndTotal(t *testing.T) {
	assert := assert.New(t)

	g := tab.NewGrid(3)
	g.Set(8, 0, note("C4", tab.Half))
	g.Set(8, 2, note("C4", tab.Eighth))
	events := Compact(g)

	steps := Schedule(events, 60)
	assert.Len(steps, 3)
	assert.Equal(2, steps[0].Column)
	assert.Equal(time.Duration(0), steps[0].Start)
	assert.Equal(500*time.Millisecond, steps[0].Delay)
	assert.Equal(500*time.Millisecond, steps[1].Start)
	assert.Equal(1500*time.Millisecond, steps[2].Start)
	assert.Equal(0, steps[2].Column)
	assert.Equal(3500*time.Millisecond, Total(events, 60))
}
