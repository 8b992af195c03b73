// Package scan walks an albums directory tree and produces the manifest
// document the player consumes. It is the build-time half of the system:
// one shot, no watching.
package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mneuronico/spotifai/internal/manifest"
	"github.com/mneuronico/spotifai/internal/player"
	"github.com/mneuronico/spotifai/internal/urlsync"
)

// trackFileRe matches "NN - Title.mp3" / "NN - Title.png": two-digit
// zero-padded number, literal " - " separator, title, extension.
var trackFileRe = regexp.MustCompile(`^(\d{2}) - (.+)\.(?i:mp3|png)$`)

// Options controls a scan.
type Options struct {
	// ProbeDurations decodes each MP3 to fill in track durations. Probe
	// failures leave the duration null; they are reported as warnings.
	ProbeDurations bool
	// Concurrency bounds parallel duration probes. Defaults to 4.
	Concurrency int
	// Now stands in for time.Now in tests.
	Now func() time.Time
}

// Result is a completed scan: the manifest document plus non-fatal warnings
// (skipped files, malformed metadata, failed probes).
type Result struct {
	Document *manifest.Document
	Warnings []string
}

// albumMeta is the optional per-album metadata file (album.json).
type albumMeta struct {
	Artist       string `json:"artist"`
	DateReleased string `json:"date_released"`
	DateAdded    string `json:"date_added"`
	Recommended  bool   `json:"recommended"`
}

// Scan reads every album folder under root and builds a version-2 manifest.
// Albums whose titles collapse to the same slug would produce ambiguous
// share links, so that is an error here rather than a latent lookup bug.
func Scan(root string, opts Options) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading albums directory %s: %w", root, err)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	res := &Result{Document: &manifest.Document{
		Version:     2,
		GeneratedAt: now().UTC(),
		Albums:      []manifest.AlbumDoc{},
	}}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		album, warnings := scanAlbum(root, e.Name())
		res.Warnings = append(res.Warnings, warnings...)
		res.Document.Albums = append(res.Document.Albums, *album)
	}

	sort.Slice(res.Document.Albums, func(i, j int) bool {
		return res.Document.Albums[i].Title < res.Document.Albums[j].Title
	})

	if dup := duplicateSlug(res.Document.Albums); dup != "" {
		return nil, fmt.Errorf("albums with colliding slug %q; rename one so share links stay unambiguous", dup)
	}

	if opts.ProbeDurations {
		res.Warnings = append(res.Warnings, probeDurations(root, res.Document, opts.Concurrency)...)
	}
	return res, nil
}

func scanAlbum(root, name string) (*manifest.AlbumDoc, []string) {
	dir := filepath.Join(root, name)
	var warnings []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: %v", name, err))
		entries = nil
	}

	pngs := map[string]bool{}
	coverExists := false
	var mp3s []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png":
			if e.Name() == "cover.png" {
				coverExists = true
			} else {
				pngs[e.Name()] = true
			}
		case ".mp3":
			mp3s = append(mp3s, e.Name())
		}
	}

	album := &manifest.AlbumDoc{
		ID:          urlsync.Slugify(name),
		Title:       name,
		Folder:      folderPath(root, name),
		CoverExists: coverExists,
		Tracks:      []manifest.TrackDoc{},
	}

	for _, f := range mp3s {
		m := trackFileRe.FindStringSubmatch(f)
		if m == nil {
			warnings = append(warnings, fmt.Sprintf("%s: skipping %q (want \"NN - Title.mp3\")", name, f))
			continue
		}
		num, _ := strconv.Atoi(m[1])
		base := m[1] + " - " + m[2]
		album.Tracks = append(album.Tracks, manifest.TrackDoc{
			Number:    num,
			Title:     m[2],
			Base:      base,
			PNGExists: pngs[base+".png"],
		})
	}
	sort.SliceStable(album.Tracks, func(i, j int) bool {
		return album.Tracks[i].Number < album.Tracks[j].Number
	})

	warnings = append(warnings, fillMetadata(root, name, dir, album)...)
	return album, warnings
}

// folderPath builds the manifest-relative folder path with forward slashes
// regardless of host OS.
func folderPath(root, name string) string {
	return filepath.Base(root) + "/" + name
}

// fillMetadata resolves artist, dates and the recommended flag for one
// album: album.json first, then artist.txt, then the first track's ID3
// tags for the artist; git history for a missing date_added.
func fillMetadata(root, name, dir string, album *manifest.AlbumDoc) []string {
	var warnings []string

	if raw, err := os.ReadFile(filepath.Join(dir, "album.json")); err == nil {
		var meta albumMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: malformed album.json: %v", name, err))
		} else {
			if meta.Artist != "" {
				album.Artist = &meta.Artist
			}
			if meta.DateReleased != "" {
				album.DateReleased = &meta.DateReleased
			}
			if meta.DateAdded != "" {
				album.DateAdded = &meta.DateAdded
			}
			album.Recommended = meta.Recommended
		}
	}

	if album.Artist == nil {
		if raw, err := os.ReadFile(filepath.Join(dir, "artist.txt")); err == nil {
			if artist := strings.TrimSpace(string(raw)); artist != "" {
				album.Artist = &artist
			}
		}
	}
	if album.Artist == nil && len(album.Tracks) > 0 {
		if artist := player.TagArtist(filepath.Join(dir, album.Tracks[0].Base+".mp3")); artist != "" {
			album.Artist = &artist
		}
	}

	if album.DateAdded == nil {
		if added := gitEarliestDate(root, name); added != "" {
			album.DateAdded = &added
		}
	}
	return warnings
}

// gitEarliestDate returns the commit date (YYYY-MM-DD) of the earliest
// commit touching the album folder, or "" when the tree is not under git.
func gitEarliestDate(root, name string) string {
	cmd := exec.Command("git", "log", "--reverse", "--format=%cs", "--", name)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if _, err := time.Parse("2006-01-02", first); err != nil {
		return ""
	}
	return first
}

// probeDurations decodes every track missing a duration, a few at a time.
func probeDurations(root string, doc *manifest.Document, concurrency int) []string {
	var g errgroup.Group
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var warnings []string
	for ai := range doc.Albums {
		album := &doc.Albums[ai]
		for ti := range album.Tracks {
			track := &album.Tracks[ti]
			if track.Duration != nil {
				continue
			}
			g.Go(func() error {
				file := filepath.Join(root, filepath.Base(album.Folder), track.Base+".mp3")
				secs, err := player.ProbeDuration(file)
				if err != nil {
					mu.Lock()
					warnings = append(warnings, fmt.Sprintf("%s: duration probe failed for %q: %v", album.Title, track.Base, err))
					mu.Unlock()
					return nil
				}
				track.Duration = &secs
				return nil
			})
		}
	}
	g.Wait()
	sort.Strings(warnings)
	return warnings
}

func duplicateSlug(albums []manifest.AlbumDoc) string {
	seen := map[string]bool{}
	for i := range albums {
		slug := urlsync.Slugify(albums[i].Title)
		if slug == "" {
			continue
		}
		if seen[slug] {
			return slug
		}
		seen[slug] = true
	}
	return ""
}
