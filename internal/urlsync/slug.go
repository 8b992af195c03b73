// Package urlsync maps album and track identity onto addressable URLs:
// slug generation, the album/track query parameters, and the reconciliation
// of back/forward navigation with the playback controller.
package urlsync

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mneuronico/spotifai/internal/library"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a title into a URL-safe slug: diacritics stripped,
// lowercased, runs of non-alphanumerics collapsed to single hyphens,
// leading/trailing hyphens trimmed. Deterministic but not guaranteed unique;
// lookups take the first match.
func Slugify(s string) string {
	if stripped, _, err := transform.String(deaccent, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// AlbumSlug returns the shareable slug for an album.
func AlbumSlug(a *library.Album) string {
	return Slugify(a.Title)
}

// TrackSlug returns the shareable slug for a track: zero-padded number plus
// title, slugified together.
func TrackSlug(t *library.Track) string {
	return Slugify(fmt.Sprintf("%02d %s", t.Number, t.Title))
}

// FindAlbumIndexBySlug returns the index of the first album whose slug
// matches, or -1.
func FindAlbumIndexBySlug(albums []*library.Album, slug string) int {
	if slug == "" {
		return -1
	}
	for i, a := range albums {
		if AlbumSlug(a) == slug {
			return i
		}
	}
	return -1
}

// FindTrackIndexBySlug returns the list index of the first track in the
// album whose slug matches, or -1.
func FindTrackIndexBySlug(a *library.Album, slug string) int {
	if a == nil || slug == "" {
		return -1
	}
	for i := range a.Tracks {
		if TrackSlug(&a.Tracks[i]) == slug {
			return i
		}
	}
	return -1
}
