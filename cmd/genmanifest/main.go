// Command genmanifest scans an albums directory and writes the manifest.json
// the player consumes. Run it whenever album folders change.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mneuronico/spotifai/internal/cover"
	"github.com/mneuronico/spotifai/internal/errmsg"
	"github.com/mneuronico/spotifai/internal/scan"
)

func main() {
	var (
		albumsDir    = flag.String("albums", "albums", "albums directory to scan")
		out          = flag.String("out", "manifest.json", "manifest output path")
		probe        = flag.Bool("probe", true, "decode MP3s to fill in track durations")
		concurrency  = flag.Int("j", 4, "parallel duration probes")
		placeholders = flag.String("placeholders", "", "if set, write placeholder covers for albums without cover.png into this directory")
		size         = flag.Int("size", 800, "placeholder cover size in pixels")
	)
	flag.Parse()

	res, err := scan.Scan(*albumsDir, scan.Options{
		ProbeDurations: *probe,
		Concurrency:    *concurrency,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(errmsg.OpManifestScan, err))
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	raw, err := json.MarshalIndent(res.Document, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *placeholders != "" {
		if err := writePlaceholders(*placeholders, res, *size); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(errmsg.OpCoverWrite, err))
			os.Exit(1)
		}
	}

	tracks := 0
	for _, a := range res.Document.Albums {
		tracks += len(a.Tracks)
	}
	fmt.Printf("Wrote %s: %d albums, %d tracks\n", *out, len(res.Document.Albums), tracks)
}

// writePlaceholders renders a generated cover for every album that has no
// cover.png, named <album id>.png.
func writePlaceholders(dir string, res *scan.Result, size int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, a := range res.Document.Albums {
		if a.CoverExists {
			continue
		}
		f, err := os.Create(filepath.Join(dir, a.ID+".png"))
		if err != nil {
			return err
		}
		if err := cover.WritePNG(f, a.Title, size); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
