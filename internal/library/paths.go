package library

import "strings"

// unreservedPath lists the characters left literal by percent-encoding of a
// relative media path. This mirrors browser encodeURI semantics minus '#',
// which must be escaped or everything after it is read as a fragment.
const unreservedPath = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()"

const hexDigits = "0123456789ABCDEF"

// EncodePath percent-encodes a relative file path for use in a URL.
func EncodePath(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		if strings.IndexByte(unreservedPath, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xf])
	}
	return b.String()
}

// MediaPath returns the encoded URL path of a track's MP3 file.
func (a *Album) MediaPath(t *Track) string {
	return EncodePath(a.Folder + "/" + t.Base + ".mp3")
}

// CoverPath returns the encoded URL path of the album cover, or "" when the
// album has no cover art and a placeholder should be used instead.
func (a *Album) CoverPath() string {
	if !a.HasCover {
		return ""
	}
	return EncodePath(a.Folder + "/cover.png")
}

// TrackArtPath returns the encoded URL path of the artwork to show for a
// track: the per-track PNG when present, else the album cover, else "".
func (a *Album) TrackArtPath(t *Track) string {
	if t != nil && t.HasArtwork {
		return EncodePath(a.Folder + "/" + t.Base + ".png")
	}
	return a.CoverPath()
}
