package audio

import (
	"bytes"
	"fmt"
	"os"
	"time"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

// SampleRate of rendered and streamed audio
const SampleRate = sampleRate

// Strike is one note on an offline timeline
type Strike struct {
	Key   uint8
	Start time.Duration
	Hold  time.Duration
}

// LoadSoundFont reads an SF2 file
func LoadSoundFont(path string) (*meltysynth.SoundFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read SoundFont: %w", err)
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot parse SoundFont %s: %w", path, err)
	}
	return sf, nil
}

// RenderOffline renders strikes with a fresh synthesizer and returns the
// left and right channels. tail adds silence-bound render time after the
// last release so the tines can ring out.
func RenderOffline(sf *meltysynth.SoundFont, program int, velocity uint8, strikes []Strike, tail time.Duration) ([]float32, []float32, error) {
	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	settings.BlockSize = block
	syn, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create synthesizer: %w", err)
	}
	syn.ProcessMidiMessage(synthCh, 0xC0, int32(program), 0)
	l, r := renderStrikes(syn, velocity, strikes, tail)
	return l, r, nil
}

func samples(d time.Duration) int {
	return int((d.Nanoseconds()*sampleRate + int64(time.Second/2)) / int64(time.Second))
}

func renderStrikes(syn synthesizer, velocity uint8, strikes []Strike, tail time.Duration) ([]float32, []float32) {
	type event struct {
		key        int32
		start, end int
	}
	var events []event
	var maxEnd int
	for _, s := range strikes {
		ev := event{key: int32(s.Key), start: samples(s.Start)}
		ev.end = ev.start + samples(s.Hold)
		events = append(events, ev)
		if ev.end > maxEnd {
			maxEnd = ev.end
		}
	}
	total := maxEnd + samples(tail)

	left := make([]float32, total)
	right := make([]float32, total)
	for pos := 0; pos < total; pos += block {
		n := min(block, total-pos)
		end := pos + n
		// note-offs first so a retrigger in the same block sounds
		for _, ev := range events {
			if ev.end >= pos && ev.end < end {
				syn.NoteOff(synthCh, ev.key)
			}
		}
		for _, ev := range events {
			if ev.start >= pos && ev.start < end {
				syn.NoteOn(synthCh, ev.key, int32(velocity))
			}
		}
		syn.Render(left[pos:end], right[pos:end])
	}
	return left, right
}

// Interleave16 clamps rendered channels to int16 range and interleaves them
// left, right, left, ...
func Interleave16(left, right []float32) []int {
	out := make([]int, 2*len(left))
	for i := range left {
		out[2*i] = int(sample(left[i]))
		out[2*i+1] = int(sample(right[i]))
	}
	return out
}
