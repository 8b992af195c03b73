package urlsync

import "net/url"

// Location is the addressable part of the player URL: the album and track
// query parameters. Both optional; an empty Location means "default album,
// no track preselected". Track is only meaningful alongside Album.
type Location struct {
	Album string
	Track string
}

// IsZero reports whether the location carries no parameters.
func (l Location) IsZero() bool { return l.Album == "" && l.Track == "" }

// Query renders the location as a URL query string.
func (l Location) Query() string {
	v := url.Values{}
	if l.Album != "" {
		v.Set("album", l.Album)
	}
	if l.Track != "" {
		v.Set("track", l.Track)
	}
	return v.Encode()
}

// ParseLocation reads a location from a raw query string. Unparseable input
// yields the zero location.
func ParseLocation(rawQuery string) Location {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Location{}
	}
	return Location{Album: v.Get("album"), Track: v.Get("track")}
}

// History is the navigation-entry store the adapter writes to. In a browser
// this is the session history; here MemoryHistory stands in, and tests and
// the TUI use its back/forward traversal to emulate external navigation.
type History interface {
	// Push appends a new entry, discarding any forward entries.
	Push(loc Location)
	// Replace overwrites the current entry without growing the history.
	Replace(loc Location)
	// Current returns the entry the history is positioned on.
	Current() Location
}

// MemoryHistory is an in-process History with back/forward traversal.
type MemoryHistory struct {
	entries []Location
	pos     int
}

// NewMemoryHistory creates a history positioned on an initial empty entry.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{entries: []Location{{}}}
}

func (h *MemoryHistory) Push(loc Location) {
	h.entries = append(h.entries[:h.pos+1], loc)
	h.pos = len(h.entries) - 1
}

func (h *MemoryHistory) Replace(loc Location) {
	h.entries[h.pos] = loc
}

func (h *MemoryHistory) Current() Location {
	return h.entries[h.pos]
}

// Back moves one entry backwards. Returns the new current entry and whether
// a move happened.
func (h *MemoryHistory) Back() (Location, bool) {
	if h.pos == 0 {
		return h.Current(), false
	}
	h.pos--
	return h.Current(), true
}

// Forward moves one entry forwards.
func (h *MemoryHistory) Forward() (Location, bool) {
	if h.pos >= len(h.entries)-1 {
		return h.Current(), false
	}
	h.pos++
	return h.Current(), true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int { return len(h.entries) }
