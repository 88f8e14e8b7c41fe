package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"

	"kalimba-tab/debug"
)

const (
	sampleRate = 44100
	block      = 1024
	synthCh    = 0
)

// synthesizer is the subset of meltysynth.Synthesizer the engine drives
type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	NoteOn(channel, key, vel int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

// oto allows one context per process
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func audioContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("cannot create oto context: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// stream renders the synthesizer on demand as 16-bit stereo PCM
type stream struct {
	mu          sync.Mutex
	syn         synthesizer
	left, right []float32
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if frames > block {
		frames = block
	}

	s.mu.Lock()
	if cap(s.left) < frames {
		s.left = make([]float32, block)
		s.right = make([]float32, block)
	}
	l, r := s.left[:frames], s.right[:frames]
	s.syn.Render(l, r)
	s.mu.Unlock()

	pcm16(p, l, r)
	return frames * 4, nil
}

// with runs f while holding the synthesizer
func (s *stream) with(f func(synthesizer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.syn)
}

// pcm16 interleaves two float channels into little-endian int16 frames
func pcm16(dst []byte, left, right []float32) {
	for i := range left {
		binary.LittleEndian.PutUint16(dst[4*i:], uint16(sample(left[i])))
		binary.LittleEndian.PutUint16(dst[4*i+2:], uint16(sample(right[i])))
	}
}

func sample(v float32) int16 {
	switch {
	case v < -1:
		return -math.MaxInt16
	case v > 1:
		return math.MaxInt16
	}
	return int16(v * math.MaxInt16)
}

// SynthEngine plays notes through a SoundFont synthesizer on the default
// audio device
type SynthEngine struct {
	stream   *stream
	player   *oto.Player
	velocity uint8
	hold     time.Duration

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

func newSynthEngine(syn synthesizer, program int, velocity uint8, hold time.Duration) *SynthEngine {
	syn.ProcessMidiMessage(synthCh, 0xC0, int32(program), 0)
	return &SynthEngine{
		stream:   &stream{syn: syn},
		velocity: velocity,
		hold:     hold,
		timers:   make(map[*time.Timer]struct{}),
	}
}

// OpenSynth loads a SoundFont and starts streaming to the audio device
func OpenSynth(path string, program int, velocity uint8, hold time.Duration) (*SynthEngine, error) {
	if path == "" {
		return nil, fmt.Errorf("no SoundFont configured")
	}
	sf, err := LoadSoundFont(path)
	if err != nil {
		return nil, err
	}
	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	settings.BlockSize = block
	syn, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("cannot create synthesizer: %w", err)
	}

	ctx, err := audioContext()
	if err != nil {
		return nil, err
	}

	e := newSynthEngine(syn, program, velocity, hold)
	e.player = ctx.NewPlayer(e.stream)
	e.player.Play()
	debug.Log("audio", "synth: %s program=%d", path, program)
	return e, nil
}

// Play strikes the note and releases it after the hold time
func (e *SynthEngine) Play(note string) {
	key, ok := midiKey(note)
	if !ok {
		return
	}
	e.stream.with(func(s synthesizer) { s.NoteOn(synthCh, int32(key), int32(e.velocity)) })

	e.mu.Lock()
	defer e.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(e.hold, func() {
		e.stream.with(func(s synthesizer) { s.NoteOff(synthCh, int32(key)) })
		e.mu.Lock()
		delete(e.timers, t)
		e.mu.Unlock()
	})
	e.timers[t] = struct{}{}
}

// Close cancels pending releases and stops the audio stream
func (e *SynthEngine) Close() error {
	e.mu.Lock()
	for t := range e.timers {
		t.Stop()
	}
	e.timers = make(map[*time.Timer]struct{})
	e.mu.Unlock()

	if e.player == nil {
		return nil
	}
	if err := e.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
