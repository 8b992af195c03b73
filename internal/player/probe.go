package player

import (
	"math"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// ProbeDuration decodes the MP3 header at path and returns the track length
// in whole seconds (rounded). Used by the manifest generator and for lazy
// backfill of tracks the manifest carries with a null duration.
func ProbeDuration(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}

	// Decoded output is 16-bit stereo at the source sample rate.
	bytesPerSecond := float64(dec.SampleRate() * channelCount * bitDepth)
	secs := float64(dec.Length()) / bytesPerSecond
	return int(math.Round(secs)), nil
}
