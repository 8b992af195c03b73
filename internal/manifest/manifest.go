// Package manifest reads the generated manifest.json document and turns it
// into the normalized library model the player runs on.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mneuronico/spotifai/internal/library"
)

// Error is a fatal-to-render manifest problem: the document is missing,
// unreadable, or not shaped like a manifest. The player shows a setup-needed
// screen instead of initializing playback.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest: %s: %v", e.Reason, e.Err)
	}
	return "manifest: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Document is the on-disk manifest schema (versions 1 and 2).
type Document struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Albums      []AlbumDoc `json:"albums"`
}

// AlbumDoc is one album entry in the manifest. ID exists from version 2 on;
// older manifests fall back to the folder path, then the title.
type AlbumDoc struct {
	ID           string     `json:"id,omitempty"`
	Title        string     `json:"title"`
	Folder       string     `json:"folder"`
	CoverExists  bool       `json:"coverExists"`
	Artist       *string    `json:"artist,omitempty"`
	DateReleased *string    `json:"date_released,omitempty"`
	DateAdded    *string    `json:"date_added,omitempty"`
	Recommended  bool       `json:"recommended,omitempty"`
	Tracks       []TrackDoc `json:"tracks"`
}

// TrackDoc is one track entry. Duration is a pointer on purpose: null means
// "not probed yet" and must stay distinct from an actual zero.
type TrackDoc struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Base      string `json:"base"`
	PNGExists bool   `json:"pngExists"`
	Duration  *int   `json:"duration"`
}

const dateLayout = "2006-01-02"

// Fetch loads the manifest from a local path or an http(s) URL and returns
// the normalized album collection.
func Fetch(location string) ([]*library.Album, error) {
	var r io.ReadCloser
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		client := &http.Client{Timeout: 15 * time.Second}
		resp, err := client.Get(location)
		if err != nil {
			return nil, &Error{Reason: "fetching " + location, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &Error{Reason: fmt.Sprintf("fetching %s: status %d", location, resp.StatusCode)}
		}
		r = resp.Body
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, &Error{Reason: "opening " + location, Err: err}
		}
		r = f
	}
	defer r.Close()
	return Load(r)
}

// Load decodes and normalizes a manifest document.
func Load(r io.Reader) ([]*library.Album, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &Error{Reason: "decoding document", Err: err}
	}
	return Normalize(&doc)
}

// Normalize converts a decoded document into library albums, applying field
// coercion: missing booleans are false, missing strings empty, and a null
// duration becomes library.DurationUnknown so lazy probing can tell it apart
// from a legitimate zero.
func Normalize(doc *Document) ([]*library.Album, error) {
	if doc.Albums == nil {
		return nil, &Error{Reason: "document has no albums array"}
	}

	albums := make([]*library.Album, 0, len(doc.Albums))
	for i := range doc.Albums {
		albums = append(albums, normalizeAlbum(&doc.Albums[i]))
	}
	return albums, nil
}

func normalizeAlbum(d *AlbumDoc) *library.Album {
	a := &library.Album{
		ID:          albumID(d),
		Title:       d.Title,
		Folder:      d.Folder,
		HasCover:    d.CoverExists,
		Recommended: d.Recommended,
		Tracks:      make([]library.Track, 0, len(d.Tracks)),
	}
	if d.Artist != nil {
		a.Artist = strings.TrimSpace(*d.Artist)
	}
	a.Released = parseDate(d.DateReleased)
	a.Added = parseDate(d.DateAdded)

	for _, t := range d.Tracks {
		dur := library.DurationUnknown
		if t.Duration != nil {
			dur = *t.Duration
		}
		a.Tracks = append(a.Tracks, library.Track{
			Number:     t.Number,
			Title:      t.Title,
			Base:       t.Base,
			HasArtwork: t.PNGExists,
			Duration:   dur,
		})
	}
	a.SortTracks()
	return a
}

// albumID picks the stable identity: explicit id, else folder, else title.
func albumID(d *AlbumDoc) string {
	if d.ID != "" {
		return d.ID
	}
	if d.Folder != "" {
		return d.Folder
	}
	return d.Title
}

func parseDate(s *string) time.Time {
	if s == nil || *s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}
