// Package playback owns the player's selection and playback state: which
// album is viewed, which album/track is audible, the shuffle/loop flags and
// the cached shuffle order. All mutation goes through Controller operations,
// each a transition from (state, input) to (state, effects).
package playback

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mneuronico/spotifai/internal/library"
)

// Controller is the single owner of player state for a page/program session.
// It is driven from one event loop and is not safe for concurrent use.
type Controller struct {
	albums []*library.Album

	selectedID string // viewed album, "" when none
	playingID  string // audible album, "" when none
	playingIdx int    // track list index within the playing album

	shuffle bool
	loop    bool
	perm    []int // cached shuffle order, nil until first use

	sortMode library.SortMode
	rng      *rand.Rand
}

// New creates a Controller over the album collection, ordered by the given
// sort mode. Nothing is selected or playing yet.
func New(albums []*library.Album, mode library.SortMode) *Controller {
	c := &Controller{
		albums:     albums,
		playingIdx: -1,
		sortMode:   library.ParseSortMode(string(mode)),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	library.Reorder(c.albums, c.sortMode)
	return c
}

// Albums returns the collection in current display order.
func (c *Controller) Albums() []*library.Album { return c.albums }

// SelectedID returns the viewed album id, or "".
func (c *Controller) SelectedID() string { return c.selectedID }

// PlayingID returns the audible album id, or "".
func (c *Controller) PlayingID() string { return c.playingID }

// SelectedAlbum returns the viewed album, or nil.
func (c *Controller) SelectedAlbum() *library.Album { return c.albumByID(c.selectedID) }

// PlayingAlbum returns the audible album, or nil.
func (c *Controller) PlayingAlbum() *library.Album { return c.playingAlbum() }

// PlayingTrackIndex returns the list index of the playing track, -1 if none.
func (c *Controller) PlayingTrackIndex() int {
	if c.playingID == "" {
		return -1
	}
	return c.playingIdx
}

// PlayingTrack returns the playing track, or nil.
func (c *Controller) PlayingTrack() *library.Track {
	album := c.playingAlbum()
	if album == nil {
		return nil
	}
	return album.Track(c.playingIdx)
}

// Shuffle reports whether shuffle mode is on.
func (c *Controller) Shuffle() bool { return c.shuffle }

// Loop reports whether loop mode is on.
func (c *Controller) Loop() bool { return c.loop }

// SortMode returns the active album ordering.
func (c *Controller) SortMode() library.SortMode { return c.sortMode }

// SelectAlbum makes the album the viewed one. Playback is untouched: the
// selected and playing albums are independent. When nothing is audible the
// now-playing panel previews the album's first track without starting audio.
func (c *Controller) SelectAlbum(id string) []Effect {
	album := c.albumByID(id)
	if album == nil {
		return []Effect{Warn{Message: fmt.Sprintf("unknown album %q", id)}}
	}
	c.selectedID = id

	effects := []Effect{ShowAlbum{AlbumID: id}}
	if len(album.Tracks) > 0 {
		effects = append(effects, PreviewTrack{
			AlbumID:    id,
			TrackIndex: 0,
			IfIdle:     c.playingID != "",
		})
	}
	return append(effects, RefreshIndicators{})
}

// StartPlayingAt starts playback of the track with the given track number.
// First playback seeds the selection when none exists, but never overrides
// an explicit one. A fresh play action always begins a new shuffle session.
func (c *Controller) StartPlayingAt(albumID string, trackNumber int) []Effect {
	album := c.albumByID(albumID)
	if album == nil {
		return []Effect{Warn{Message: fmt.Sprintf("unknown album %q", albumID)}}
	}
	_, idx := album.TrackByNumber(trackNumber)
	if idx < 0 {
		return []Effect{Warn{Message: fmt.Sprintf("album %q has no track %d", albumID, trackNumber)}}
	}
	return c.startIndex(albumID, idx, true)
}

// StartTrackIndex starts playback of the track at the given list index
// (how the track list reports clicks).
func (c *Controller) StartTrackIndex(albumID string, idx int) []Effect {
	return c.startIndex(albumID, idx, true)
}

// startIndex is the shared playback transition. invalidate distinguishes a
// fresh play action (new shuffle session) from navigation within one.
func (c *Controller) startIndex(albumID string, idx int, invalidate bool) []Effect {
	album := c.albumByID(albumID)
	if album == nil {
		return []Effect{Warn{Message: fmt.Sprintf("unknown album %q", albumID)}}
	}
	if album.Track(idx) == nil {
		return []Effect{Warn{Message: fmt.Sprintf("album %q has no track at index %d", albumID, idx)}}
	}

	var effects []Effect
	if c.selectedID == "" {
		c.selectedID = albumID
		effects = append(effects, ShowAlbum{AlbumID: albumID})
	}
	if invalidate || c.playingID != albumID {
		c.invalidatePermutation()
	}
	c.playingID = albumID
	c.playingIdx = idx

	effects = append(effects,
		PlayTrack{AlbumID: albumID, TrackIndex: idx},
		RefreshIndicators{},
	)
	return effects
}

// Advance moves playback to the next track of the playing album, honoring
// shuffle order and wrapping circularly.
func (c *Controller) Advance() []Effect {
	if c.playingAlbum() == nil {
		return []Effect{Warn{Message: "nothing is playing"}}
	}
	return c.startIndex(c.playingID, c.nextIndex(), false)
}

// Regress moves playback to the previous track of the playing album.
func (c *Controller) Regress() []Effect {
	if c.playingAlbum() == nil {
		return []Effect{Warn{Message: "nothing is playing"}}
	}
	return c.startIndex(c.playingID, c.prevIndex(), false)
}

// OnTrackEnded reacts to the media handle reporting the end of the current
// track. Loop replays the same track. With shuffle off, exhausting the last
// track flows into the first track of the next album in display order,
// wrapping to the first album; shuffle keeps playback inside the album's
// permutation instead.
func (c *Controller) OnTrackEnded() []Effect {
	album := c.playingAlbum()
	if album == nil {
		return nil
	}
	if c.loop {
		// Same track, same album. Not an advance: the shuffle order is kept.
		return []Effect{RestartTrack{}, RefreshIndicators{}}
	}
	if !c.shuffle && c.playingIdx == len(album.Tracks)-1 {
		return c.startNextAlbum()
	}
	return c.Advance()
}

// startNextAlbum begins track 0 of the album after the playing one in the
// current collection order, skipping empty albums and wrapping circularly.
func (c *Controller) startNextAlbum() []Effect {
	pos := library.FindByID(c.albums, c.playingID)
	if pos < 0 {
		return []Effect{Warn{Message: fmt.Sprintf("playing album %q not in collection", c.playingID)}}
	}
	for step := 1; step <= len(c.albums); step++ {
		next := c.albums[(pos+step)%len(c.albums)]
		if len(next.Tracks) > 0 {
			return c.startIndex(next.ID, 0, true)
		}
	}
	return nil
}

// ToggleShuffle flips shuffle mode. Turning it on drops any cached
// permutation so the next step computes a fresh order.
func (c *Controller) ToggleShuffle() []Effect {
	c.shuffle = !c.shuffle
	if c.shuffle {
		c.invalidatePermutation()
	}
	return []Effect{RefreshIndicators{}}
}

// ToggleLoop flips loop mode.
func (c *Controller) ToggleLoop() []Effect {
	c.loop = !c.loop
	return []Effect{RefreshIndicators{}}
}

// Reorder re-sorts the collection. The selected and playing albums are
// re-resolved by id, never by index: a resort changes rendering order only.
func (c *Controller) Reorder(mode library.SortMode) []Effect {
	c.sortMode = library.ParseSortMode(string(mode))
	library.Reorder(c.albums, c.sortMode)
	return []Effect{RenderCarousel{}, RefreshIndicators{}}
}

// FillDuration records a lazily probed track duration. The write applies at
// most once per track; a display refresh is requested only when the track's
// album is the viewed one.
func (c *Controller) FillDuration(albumID string, trackNumber int, seconds int) []Effect {
	album := c.albumByID(albumID)
	if album == nil {
		return nil
	}
	track, _ := album.TrackByNumber(trackNumber)
	if track == nil || !track.FillDuration(seconds) {
		return nil
	}
	if c.selectedID == albumID {
		return []Effect{ShowAlbum{AlbumID: albumID}}
	}
	return nil
}

func (c *Controller) albumByID(id string) *library.Album {
	if id == "" {
		return nil
	}
	if i := library.FindByID(c.albums, id); i >= 0 {
		return c.albums[i]
	}
	return nil
}

func (c *Controller) playingAlbum() *library.Album { return c.albumByID(c.playingID) }
