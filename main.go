package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mneuronico/spotifai/internal/config"
	"github.com/mneuronico/spotifai/internal/errmsg"
	"github.com/mneuronico/spotifai/internal/library"
	"github.com/mneuronico/spotifai/internal/manifest"
	"github.com/mneuronico/spotifai/internal/playback"
	"github.com/mneuronico/spotifai/internal/player"
	"github.com/mneuronico/spotifai/internal/ui"
	"github.com/mneuronico/spotifai/internal/urlsync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	albums, err := manifest.Fetch(cfg.ManifestPath)
	if err != nil {
		var mErr *manifest.Error
		if errors.As(err, &mErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", mErr)
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "No usable manifest found. Generate one with:")
			fmt.Fprintf(os.Stderr, "  genmanifest -albums %s -out %s\n", cfg.AlbumsDir, cfg.ManifestPath)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	media, err := player.NewPlayer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
	defer media.Close()
	media.SetVolume(cfg.Volume)

	ctrl := playback.New(albums, library.ParseSortMode(cfg.DefaultSort))
	history := urlsync.NewMemoryHistory()

	// Manifest folders are relative to the directory that holds the albums
	// tree, the same base a deployed site serves from.
	rootDir := filepath.Dir(cfg.AlbumsDir)

	model := ui.New(ctrl, media, history, rootDir, startLocation(os.Args[1:]))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startLocation parses an optional deep link argument, accepting either a
// bare query string or one prefixed with '?'.
func startLocation(args []string) urlsync.Location {
	if len(args) == 0 {
		return urlsync.Location{}
	}
	return urlsync.ParseLocation(strings.TrimPrefix(args[0], "?"))
}
