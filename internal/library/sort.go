package library

import (
	"sort"
	"strings"
	"time"
)

// SortMode names one of the album orderings offered by the UI.
type SortMode string

const (
	SortTitleAscending       SortMode = "title_ascending"
	SortArtistAscending      SortMode = "artist_ascending"
	SortTrackCountDescending SortMode = "track_count_descending"
	SortReleasedDescending   SortMode = "released_descending"
	SortAddedDescending      SortMode = "added_descending"
	SortRecommendedFirst     SortMode = "recommended_first"
)

// DefaultSortMode is used when a configured or requested mode is unknown.
const DefaultSortMode = SortAddedDescending

// ParseSortMode maps a mode name to a SortMode, falling back to the default
// for unrecognized names.
func ParseSortMode(name string) SortMode {
	switch SortMode(name) {
	case SortTitleAscending, SortArtistAscending, SortTrackCountDescending,
		SortReleasedDescending, SortAddedDescending, SortRecommendedFirst:
		return SortMode(name)
	}
	return DefaultSortMode
}

// SortModes lists all modes in UI cycling order.
func SortModes() []SortMode {
	return []SortMode{
		SortAddedDescending,
		SortReleasedDescending,
		SortTitleAscending,
		SortArtistAscending,
		SortTrackCountDescending,
		SortRecommendedFirst,
	}
}

// Label returns a short display name for the mode.
func (m SortMode) Label() string {
	switch m {
	case SortTitleAscending:
		return "title"
	case SortArtistAscending:
		return "artist"
	case SortTrackCountDescending:
		return "track count"
	case SortReleasedDescending:
		return "released"
	case SortAddedDescending:
		return "added"
	case SortRecommendedFirst:
		return "recommended"
	default:
		return string(m)
	}
}

// Reorder sorts albums in place by the given mode and returns the slice.
// Every comparator is total: ties always fall through to a case-insensitive
// title comparison and finally the album id, so no two distinct albums
// compare equal. Callers holding an album reference must re-resolve it by id
// afterwards; indices are not identity.
func Reorder(albums []*Album, mode SortMode) []*Album {
	cmp := comparator(ParseSortMode(string(mode)))
	sort.SliceStable(albums, func(i, j int) bool {
		return cmp(albums[i], albums[j]) < 0
	})
	return albums
}

func comparator(mode SortMode) func(a, b *Album) int {
	switch mode {
	case SortTitleAscending:
		return compareTitle
	case SortArtistAscending:
		return compareArtist
	case SortTrackCountDescending:
		return compareTrackCount
	case SortReleasedDescending:
		return compareReleased
	case SortRecommendedFirst:
		return compareRecommended
	default:
		return compareAdded
	}
}

func compareTitle(a, b *Album) int {
	ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if ta != tb {
		return strings.Compare(ta, tb)
	}
	return strings.Compare(a.ID, b.ID)
}

func compareArtist(a, b *Album) int {
	// Unknown artists sort after everyone with one.
	switch {
	case a.HasArtist() && !b.HasArtist():
		return -1
	case !a.HasArtist() && b.HasArtist():
		return 1
	case a.HasArtist() && b.HasArtist():
		aa, ab := strings.ToLower(a.Artist), strings.ToLower(b.Artist)
		if aa != ab {
			return strings.Compare(aa, ab)
		}
	}
	return compareTitle(a, b)
}

func compareTrackCount(a, b *Album) int {
	if len(a.Tracks) != len(b.Tracks) {
		if len(a.Tracks) > len(b.Tracks) {
			return -1
		}
		return 1
	}
	return compareTitle(a, b)
}

func compareReleased(a, b *Album) int {
	if c := compareDateDescending(a.Released, b.Released); c != 0 {
		return c
	}
	return compareTitle(a, b)
}

func compareAdded(a, b *Album) int {
	if c := compareDateDescending(a.Added, b.Added); c != 0 {
		return c
	}
	return compareTitle(a, b)
}

func compareRecommended(a, b *Album) int {
	if a.Recommended != b.Recommended {
		if a.Recommended {
			return -1
		}
		return 1
	}
	return compareAdded(a, b)
}

// compareDateDescending orders newer dates first and pushes unknown (zero)
// dates after all dated entries.
func compareDateDescending(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a.After(b):
		return -1
	case b.After(a):
		return 1
	}
	return 0
}
