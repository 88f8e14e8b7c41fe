package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kalimba-tab/debug"
	"kalimba-tab/tab"
)

// NoIndex is the highlight index when nothing is playing
const NoIndex = -1

// ErrAlreadyPlaying is returned when Play is called during a run
var ErrAlreadyPlaying = errors.New("playback already running")

// Engine sounds a note. Calls must not block; the player never waits for
// audio to finish and ignores failures.
type Engine interface {
	Play(note string)
}

// Clock provides the player's only suspension point
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Option configures a Player
type Option func(*Player)

// WithClock replaces the wall clock (tests use a fake)
func WithClock(c Clock) Option {
	return func(p *Player) { p.clock = c }
}

// Player walks compacted events against the tempo clock, striking notes and
// moving a highlight index. One run at a time.
type Player struct {
	engine Engine
	clock  Clock

	mu      sync.Mutex
	running bool
	stopped bool // cancellation flag, observed at event boundaries
	index   int  // highlighted grid column, NoIndex when idle

	updates chan struct{}
}

// NewPlayer creates an idle player
func NewPlayer(engine Engine, opts ...Option) *Player {
	p := &Player{
		engine:  engine,
		clock:   realClock{},
		index:   NoIndex,
		updates: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Updates signals highlight changes. Signals coalesce; read CurrentIndex.
func (p *Player) Updates() <-chan struct{} {
	return p.updates
}

// CurrentIndex returns the highlighted grid column, or NoIndex
func (p *Player) CurrentIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Playing reports whether a run is active
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Play snapshots the song, compacts it and plays it, blocking until the run
// completes, Stop is observed, or ctx is done. Stop and ctx cancellation are
// not errors. Edits made to the caller's song during the run are not heard.
func (p *Player) Play(ctx context.Context, song tab.Song) error {
	if song.Tempo <= 0 {
		return fmt.Errorf("cannot play %q: %w", song.Title, tab.ErrInvalidTempo)
	}
	grid := song.Song.Clone()
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("cannot play %q: %w", song.Title, err)
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}
	p.running = true
	p.stopped = false
	p.mu.Unlock()
	defer p.finish()

	events := Compact(grid)
	debug.Log("play", "start %q: %d events at %d bpm", song.Title, len(events), song.Tempo)
	return p.drive(ctx, events, song.Tempo)
}

func (p *Player) drive(ctx context.Context, events []Event, tempo int) error {
	base := BaseDelay(tempo)
	last := len(events) - 1

	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			debug.Log("play", "context done before event %d: %v", i, err)
			return nil
		}
		if !p.advance(last - i) {
			debug.Log("play", "stopped before event %d", i)
			return nil
		}

		for _, note := range ev.Notes {
			if note == tab.Rest {
				continue
			}
			p.engine.Play(note)
		}

		select {
		case <-ctx.Done():
			debug.Log("play", "context done at event %d: %v", i, ctx.Err())
			return nil
		case <-p.clock.After(scale(base, ev.Length)):
		}
	}

	debug.Log("play", "finished %d events", len(events))
	return nil
}

// advance moves the highlight and reports whether the run may continue
func (p *Player) advance(index int) bool {
	p.mu.Lock()
	p.index = index
	ok := !p.stopped
	if !ok {
		p.index = NoIndex
	}
	p.mu.Unlock()

	p.notify()
	return ok
}

// finish runs on every exit path of a run
func (p *Player) finish() {
	p.mu.Lock()
	p.running = false
	p.stopped = false
	p.index = NoIndex
	p.mu.Unlock()

	p.notify()
}

// Stop requests the current run to end and clears the highlight. The run
// notices at its next event boundary; a wait in progress is not cut short.
// Calling Stop with no active run only clears the highlight.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.running {
		p.stopped = true
	}
	p.index = NoIndex
	p.mu.Unlock()

	p.notify()
}

func (p *Player) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
