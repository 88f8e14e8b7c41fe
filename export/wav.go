package export

import (
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"

	"kalimba-tab/audio"
	"kalimba-tab/playback"
	"kalimba-tab/tab"
)

// ringOut is rendered after the last note
const ringOut = 2 * time.Second

const (
	wavChannels = 2
	wavBitDepth = 16
	wavPCM      = 1
)

// Strikes lays the song's sounding notes out on a timeline
func Strikes(song *tab.Song) []audio.Strike {
	var out []audio.Strike
	for _, step := range playback.Schedule(playback.Compact(song.Song), song.Tempo) {
		for _, k := range midiKeys(step.Sounding()) {
			out = append(out, audio.Strike{Key: k, Start: step.Start, Hold: step.Delay})
		}
	}
	return out
}

// WAV renders the song through a SoundFont into a 16-bit stereo WAV.
// The encoder seeks back to patch the header, so w must be seekable.
func WAV(w io.WriteSeeker, song *tab.Song, sf *meltysynth.SoundFont, program int) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("cannot export %q: %w", song.Title, err)
	}
	left, right, err := audio.RenderOffline(sf, program, velocity, Strikes(song), ringOut)
	if err != nil {
		return err
	}
	return writeWAV(w, audio.Interleave16(left, right))
}

// writeWAV encodes interleaved stereo samples
func writeWAV(w io.WriteSeeker, samples []int) error {
	enc := wav.NewEncoder(w, audio.SampleRate, wavBitDepth, wavChannels, wavPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: wavChannels,
			SampleRate:  audio.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("cannot write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("cannot finish WAV: %w", err)
	}
	return nil
}
