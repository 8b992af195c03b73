package playback

// Effect is a side-effect instruction emitted by a Controller transition.
// The controller never touches the media handle or the screen itself: every
// operation returns the effects it wants performed and the caller interprets
// them. This keeps transitions pure and testable.
type Effect interface{ isEffect() }

// RenderCarousel asks for the album carousel to be rebuilt in the current
// collection order.
type RenderCarousel struct{}

// ShowAlbum asks for the track list and album header of the selected album.
type ShowAlbum struct{ AlbumID string }

// PreviewTrack asks the now-playing panel to display a track without
// starting audio. IfIdle limits the update to when nothing is audibly
// playing (media handle paused at position zero), so browsing albums does
// not clobber the display of an active track.
type PreviewTrack struct {
	AlbumID    string
	TrackIndex int
	IfIdle     bool
}

// PlayTrack asks the media handle to load the track (if not already loaded)
// and start playback, and the now-playing display to follow. A media start
// failure is swallowed by the interpreter; the controller state already
// records the track as playing.
type PlayTrack struct {
	AlbumID    string
	TrackIndex int
}

// RestartTrack asks the media handle to seek the current track to zero and
// resume. Emitted for loop-enabled track endings.
type RestartTrack struct{}

// RefreshIndicators asks for the cheap chrome updates: carousel
// selected/playing markers, active-track highlight, shuffle/loop and
// play/pause button states.
type RefreshIndicators struct{}

// Warn reports a recoverable problem (unresolvable album or track, for
// example). The player stays usable.
type Warn struct{ Message string }

func (RenderCarousel) isEffect()    {}
func (ShowAlbum) isEffect()         {}
func (PreviewTrack) isEffect()      {}
func (PlayTrack) isEffect()         {}
func (RestartTrack) isEffect()      {}
func (RefreshIndicators) isEffect() {}
func (Warn) isEffect()              {}
