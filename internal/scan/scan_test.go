package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func makeAlbumDir(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		writeFile(t, filepath.Join(dir, f))
	}
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestScanBuildsManifest(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "First Album",
		"01 - Opener.mp3",
		"02 - Closer.mp3",
		"02 - Closer.png",
		"cover.png",
	)
	makeAlbumDir(t, root, "Café Nights",
		"01 - Tune.mp3",
	)
	writeFile(t, filepath.Join(root, "stray.txt")) // non-directory entries are ignored

	res, err := Scan(root, Options{Now: fixedNow})
	require.NoError(t, err)

	doc := res.Document
	assert.Equal(t, 2, doc.Version)
	assert.True(t, doc.GeneratedAt.Equal(fixedNow()))
	require.Len(t, doc.Albums, 2)

	// Title order: "Café Nights" then "First Album".
	cafe, first := doc.Albums[0], doc.Albums[1]
	require.Equal(t, "Café Nights", cafe.Title)
	require.Equal(t, "First Album", first.Title)
	assert.Equal(t, "cafe-nights", cafe.ID)
	assert.Equal(t, "albums/Café Nights", cafe.Folder)
	assert.False(t, cafe.CoverExists)
	assert.True(t, first.CoverExists)

	require.Len(t, first.Tracks, 2)
	opener := first.Tracks[0]
	assert.Equal(t, 1, opener.Number)
	assert.Equal(t, "Opener", opener.Title)
	assert.Equal(t, "01 - Opener", opener.Base)
	assert.False(t, opener.PNGExists)
	assert.True(t, first.Tracks[1].PNGExists)
	assert.Nil(t, opener.Duration, "durations stay null without probing")
}

func TestScanSkipsUnparseableNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "Messy",
		"01 - Good.mp3",
		"1 - Single Digit.mp3",
		"notes.mp3",
		"03-NoSpaces.mp3",
	)

	res, err := Scan(root, Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Len(t, res.Document.Albums[0].Tracks, 1)
	require.Len(t, res.Warnings, 3)
	for _, w := range res.Warnings {
		assert.Contains(t, w, "skipping")
	}
}

func TestScanAlbumJSONMetadata(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "Tagged", "01 - Song.mp3")
	meta := `{"artist": "The Band", "date_released": "2020-04-01", "date_added": "2023-01-15", "recommended": true}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "Tagged", "album.json"), []byte(meta), 0o644))

	res, err := Scan(root, Options{Now: fixedNow})
	require.NoError(t, err)
	a := res.Document.Albums[0]
	require.NotNil(t, a.Artist)
	assert.Equal(t, "The Band", *a.Artist)
	require.NotNil(t, a.DateReleased)
	assert.Equal(t, "2020-04-01", *a.DateReleased)
	require.NotNil(t, a.DateAdded)
	assert.Equal(t, "2023-01-15", *a.DateAdded)
	assert.True(t, a.Recommended)
}

func TestScanArtistTxtFallback(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "Fallback", "01 - Song.mp3")
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fallback", "artist.txt"), []byte("  Solo Act \n"), 0o644))

	res, err := Scan(root, Options{Now: fixedNow})
	require.NoError(t, err)
	a := res.Document.Albums[0]
	require.NotNil(t, a.Artist)
	assert.Equal(t, "Solo Act", *a.Artist)
}

func TestScanMalformedAlbumJSONWarns(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "Broken", "01 - Song.mp3")
	require.NoError(t, os.WriteFile(filepath.Join(root, "Broken", "album.json"), []byte("{nope"), 0o644))

	res, err := Scan(root, Options{Now: fixedNow})
	require.NoError(t, err)
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "malformed album.json") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestScanDuplicateSlugFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "albums")
	makeAlbumDir(t, root, "Same Name", "01 - A.mp3")
	makeAlbumDir(t, root, "Same  Name!", "01 - B.mp3")

	_, err := Scan(root, Options{Now: fixedNow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same-name")
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
}
