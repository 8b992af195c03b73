package player

import (
	"strings"

	"github.com/bogem/id3v2/v2"
)

// TagArtist reads the artist recorded in a track's ID3v2 tags. Returns ""
// when the file has no readable tag or no artist frame. The manifest
// generator uses this as a fallback when an album folder carries no
// explicit artist metadata.
func TagArtist(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer tag.Close()
	return strings.TrimSpace(tag.Artist())
}
