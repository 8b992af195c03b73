package library

// DurationUnknown marks a track whose length has not been probed yet.
// It is distinct from a legitimate zero-second duration: unknown durations
// are eligible for lazy backfill, zero durations are not.
const DurationUnknown = -1

// Track is a single entry in an album's track list.
type Track struct {
	// Number is the track number as parsed from the file name, unique
	// within its album and used for display and file naming.
	Number int

	// Title is the human-readable track title.
	Title string

	// Base is the stable file basename ("NN - Title") used to locate the
	// media and artwork files inside the album folder.
	Base string

	// HasArtwork reports whether a per-track PNG exists next to the media.
	HasArtwork bool

	// Duration is the track length in whole seconds, or DurationUnknown.
	Duration int
}

// HasDuration reports whether the track length is known.
func (t *Track) HasDuration() bool {
	return t.Duration != DurationUnknown
}

// FillDuration records a probed duration. It applies only once: a track
// whose duration is already known keeps its original value. Returns true
// if the value was recorded.
func (t *Track) FillDuration(seconds int) bool {
	if t.HasDuration() || seconds < 0 {
		return false
	}
	t.Duration = seconds
	return true
}
