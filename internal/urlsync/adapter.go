package urlsync

import (
	"github.com/mneuronico/spotifai/internal/library"
	"github.com/mneuronico/spotifai/internal/playback"
)

// Adapter keeps the URL and the playback controller in agreement in both
// directions. Programmatic state changes write history entries; externally
// observed navigation (back/forward) is replayed into the controller under a
// suppression guard so the resulting transitions do not write the URL again.
type Adapter struct {
	history  History
	suppress bool
}

// NewAdapter creates an adapter over the given history.
func NewAdapter(h History) *Adapter {
	return &Adapter{history: h}
}

// WriteAlbum records the album in the URL. Selecting an album always clears
// any track parameter: a previously shared track link is invalidated by
// switching albums. replace avoids growing history during programmatic
// normalization.
func (ad *Adapter) WriteAlbum(a *library.Album, replace bool) {
	if ad.suppress || a == nil {
		return
	}
	ad.write(Location{Album: AlbumSlug(a)}, replace)
}

// WriteTrack records the album and track in the URL.
func (ad *Adapter) WriteTrack(a *library.Album, t *library.Track, replace bool) {
	if ad.suppress || a == nil || t == nil {
		return
	}
	ad.write(Location{Album: AlbumSlug(a), Track: TrackSlug(t)}, replace)
}

func (ad *Adapter) write(loc Location, replace bool) {
	if loc == ad.history.Current() {
		return
	}
	if replace {
		ad.history.Replace(loc)
		return
	}
	ad.history.Push(loc)
}

// Current returns the location the history is positioned on.
func (ad *Adapter) Current() Location { return ad.history.Current() }

// HandleNavigation reconciles an externally observed location (a back or
// forward move, or the startup URL) into controller transitions. The write
// path is suppressed for the duration, so replaying the state change cannot
// push fresh entries and pollute history.
//
// Lookup misses fall back to the documented defaults: first album, no track.
func (ad *Adapter) HandleNavigation(c *playback.Controller, loc Location) []playback.Effect {
	albums := c.Albums()
	if len(albums) == 0 {
		return nil
	}

	idx := FindAlbumIndexBySlug(albums, loc.Album)
	if idx < 0 {
		idx = 0
	}
	album := albums[idx]

	ad.suppress = true
	defer func() { ad.suppress = false }()

	effects := c.SelectAlbum(album.ID)
	if trackIdx := FindTrackIndexBySlug(album, loc.Track); trackIdx >= 0 {
		effects = append(effects, playback.PreviewTrack{
			AlbumID:    album.ID,
			TrackIndex: trackIdx,
			IfIdle:     c.PlayingID() != "",
		})
	}
	return effects
}
