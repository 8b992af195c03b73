package library

import (
	"sort"
	"time"
)

// Album is the normalized in-memory representation of one album folder.
//
// ID is the stable identity used everywhere state must survive a resort:
// it is never recomputed from display fields, so retitling an album does
// not move the selection or the playing marker.
type Album struct {
	ID          string
	Title       string
	Folder      string
	HasCover    bool
	Artist      string // empty when unknown
	Released    time.Time
	Added       time.Time
	Recommended bool
	Tracks      []Track
}

// HasArtist reports whether the album carries artist metadata.
func (a *Album) HasArtist() bool { return a.Artist != "" }

// HasReleased reports whether the release date is known.
func (a *Album) HasReleased() bool { return !a.Released.IsZero() }

// HasAdded reports whether the date-added is known.
func (a *Album) HasAdded() bool { return !a.Added.IsZero() }

// Track returns the track at the given list index, or nil if out of range.
func (a *Album) Track(i int) *Track {
	if i < 0 || i >= len(a.Tracks) {
		return nil
	}
	return &a.Tracks[i]
}

// TrackByNumber returns the first track with the given track number, or nil.
func (a *Album) TrackByNumber(n int) (*Track, int) {
	for i := range a.Tracks {
		if a.Tracks[i].Number == n {
			return &a.Tracks[i], i
		}
	}
	return nil, -1
}

// SortTracks orders the track list ascending by track number. The sort is
// stable so duplicate numbers from a broken manifest keep their relative
// order instead of flapping.
func (a *Album) SortTracks() {
	sort.SliceStable(a.Tracks, func(i, j int) bool {
		return a.Tracks[i].Number < a.Tracks[j].Number
	})
}

// FindByID returns the index of the album with the given id, or -1.
func FindByID(albums []*Album, id string) int {
	for i, a := range albums {
		if a.ID == id {
			return i
		}
	}
	return -1
}
