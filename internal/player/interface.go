package player

import "time"

// Interface is the media-handle contract the playback layer talks to. The
// real implementation sits on oto + go-mp3; tests use Mock. Callers must not
// assume a call succeeded synchronously: playback start in particular can
// fail silently (no audio device, blocked output) and the player state above
// still records intent.
type Interface interface {
	// Load prepares the track at path for playback, replacing any loaded
	// track. It does not start audio.
	Load(path string) error
	// CurrentPath returns the loaded track's path, "" when none.
	CurrentPath() string

	Play()
	Pause()
	Toggle()
	Paused() bool
	// Idle reports that nothing is audibly playing: no track loaded, or
	// paused at position zero.
	Idle() bool

	SeekToStart()
	// SeekFraction seeks to a fraction [0,1] of the track.
	SeekFraction(f float64)
	Position() time.Duration
	Duration() time.Duration

	Volume() float64
	SetVolume(v float64)
	AdjustVolume(delta float64)

	// FinishedChan receives one signal each time a loaded track plays to
	// its end.
	FinishedChan() <-chan struct{}

	Close()
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
