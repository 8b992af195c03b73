package urlsync

import (
	"testing"

	"github.com/mneuronico/spotifai/internal/library"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "My Great Album", want: "my-great-album"},
		{in: "Café Tacvba", want: "cafe-tacvba"},
		{in: "  spaced   out  ", want: "spaced-out"},
		{in: "Señor & Señora!", want: "senor-senora"},
		{in: "AC/DC: Live!", want: "ac-dc-live"},
		{in: "2001 — A Space Odyssey", want: "2001-a-space-odyssey"},
		{in: "!!!", want: ""},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrackSlug(t *testing.T) {
	tr := &library.Track{Number: 3, Title: "Pequeño Vals"}
	if got, want := TrackSlug(tr), "03-pequeno-vals"; got != want {
		t.Fatalf("TrackSlug = %q, want %q", got, want)
	}
}

func TestFindAlbumIndexBySlug(t *testing.T) {
	albums := []*library.Album{
		{ID: "1", Title: "First Album"},
		{ID: "2", Title: "Sécond Album"},
		{ID: "3", Title: "Second Album"}, // same slug as above
	}

	if got := FindAlbumIndexBySlug(albums, "second-album"); got != 1 {
		t.Fatalf("FindAlbumIndexBySlug = %d, want first match 1", got)
	}
	if got := FindAlbumIndexBySlug(albums, "missing"); got != -1 {
		t.Fatalf("FindAlbumIndexBySlug(missing) = %d, want -1", got)
	}
	if got := FindAlbumIndexBySlug(albums, ""); got != -1 {
		t.Fatalf("FindAlbumIndexBySlug(\"\") = %d, want -1", got)
	}
}

func TestFindTrackIndexBySlug(t *testing.T) {
	a := &library.Album{Tracks: []library.Track{
		{Number: 1, Title: "Opener"},
		{Number: 2, Title: "Closer"},
	}}

	if got := FindTrackIndexBySlug(a, "02-closer"); got != 1 {
		t.Fatalf("FindTrackIndexBySlug = %d, want 1", got)
	}
	if got := FindTrackIndexBySlug(a, "02-opener"); got != -1 {
		t.Fatalf("FindTrackIndexBySlug(mismatch) = %d, want -1", got)
	}
	if got := FindTrackIndexBySlug(nil, "02-closer"); got != -1 {
		t.Fatalf("FindTrackIndexBySlug(nil album) = %d, want -1", got)
	}
}
