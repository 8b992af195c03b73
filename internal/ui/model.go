package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mneuronico/spotifai/internal/errmsg"
	"github.com/mneuronico/spotifai/internal/library"
	"github.com/mneuronico/spotifai/internal/playback"
	"github.com/mneuronico/spotifai/internal/player"
	"github.com/mneuronico/spotifai/internal/urlsync"
)

// Model is the Bubbletea model for the album browser. It interprets the
// effects emitted by the playback controller: the controller decides what
// should happen, the model pokes the media handle, the URL adapter and its
// own display state accordingly.
type Model struct {
	ctrl    *playback.Controller
	media   player.Interface
	sync    *urlsync.Adapter
	history *urlsync.MemoryHistory
	rootDir string // directory the manifest folder paths are relative to

	cursor       int    // highlighted row in the track list
	shownAlbumID string // album the track list currently shows
	previewAlbum string // now-playing panel preview when nothing is audible
	previewIdx   int
	pendingProbe map[string]bool // tracks with an outstanding duration probe

	seekbar  progress.Model
	elapsed  time.Duration
	duration time.Duration
	paused   bool

	width      int
	height     int
	status     string
	statusTime time.Time
	quitting   bool
}

// New creates the player model. startLoc carries the album/track query
// parameters the program was opened with, if any.
func New(ctrl *playback.Controller, media player.Interface, history *urlsync.MemoryHistory, rootDir string, startLoc urlsync.Location) Model {
	m := Model{
		ctrl:         ctrl,
		media:        media,
		sync:         urlsync.NewAdapter(history),
		history:      history,
		rootDir:      rootDir,
		previewIdx:   -1,
		pendingProbe: map[string]bool{},
		seekbar: progress.New(
			progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
			progress.WithoutPercentage(),
		),
		paused: true,
	}

	// Resolve the startup URL into an initial selection; the guard keeps
	// this from pushing a history entry, and the normalized location is
	// recorded with replace so a shared deep link stays shareable.
	effects := m.sync.HandleNavigation(ctrl, startLoc)
	m.applyEffects(effects, false)
	if a := ctrl.SelectedAlbum(); a != nil {
		if idx := urlsync.FindTrackIndexBySlug(a, startLoc.Track); idx >= 0 {
			m.sync.WriteTrack(a, a.Track(idx), true)
			m.cursor = idx
		} else {
			m.sync.WriteAlbum(a, true)
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchFinished(m.media))
}

func watchFinished(p player.Interface) tea.Cmd {
	return func() tea.Msg {
		<-p.FinishedChan()
		return trackEndedMsg{}
	}
}

func probeCmd(path, albumID string, trackNumber int) tea.Cmd {
	return func() tea.Msg {
		secs, err := player.ProbeDuration(path)
		return durationProbedMsg{albumID: albumID, trackNumber: trackNumber, seconds: secs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.elapsed = m.media.Position()
		m.duration = m.media.Duration()
		m.paused = m.media.Paused()
		if m.status != "" && time.Since(m.statusTime) > 5*time.Second {
			m.status = ""
		}
		return m, tickCmd()

	case trackEndedMsg:
		cmd := m.applyEffects(m.ctrl.OnTrackEnded(), false)
		return m, tea.Batch(cmd, watchFinished(m.media))

	case durationProbedMsg:
		delete(m.pendingProbe, probeKey(msg.albumID, msg.trackNumber))
		if msg.err != nil {
			// Terminal, silent: the dash stays in the track list.
			return m, nil
		}
		m.applyEffects(m.ctrl.FillDuration(msg.albumID, msg.trackNumber, msg.seconds), false)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seekbar.Width = clampInt(msg.Width-30, 10, 60)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.media.Close()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if a := m.ctrl.SelectedAlbum(); a != nil && m.cursor < len(a.Tracks)-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		return m, m.selectAdjacentAlbum(-1)

	case "right", "l":
		return m, m.selectAdjacentAlbum(1)

	case "enter":
		a := m.ctrl.SelectedAlbum()
		if a == nil {
			return m, nil
		}
		return m, m.applyEffects(m.ctrl.StartTrackIndex(a.ID, m.cursor), true)

	case " ":
		m.media.Toggle()
		m.paused = m.media.Paused()
		return m, nil

	case "n":
		return m, m.applyEffects(m.ctrl.Advance(), true)

	case "p":
		return m, m.applyEffects(m.ctrl.Regress(), true)

	case "s":
		return m, m.applyEffects(m.ctrl.ToggleShuffle(), false)

	case "r":
		return m, m.applyEffects(m.ctrl.ToggleLoop(), false)

	case "o":
		return m, m.applyEffects(m.ctrl.Reorder(nextSortMode(m.ctrl.SortMode())), false)

	case "[":
		if loc, ok := m.history.Back(); ok {
			return m, m.applyEffects(m.sync.HandleNavigation(m.ctrl, loc), false)
		}
		return m, nil

	case "]":
		if loc, ok := m.history.Forward(); ok {
			return m, m.applyEffects(m.sync.HandleNavigation(m.ctrl, loc), false)
		}
		return m, nil

	case ",":
		m.media.SeekFraction(seekFraction(m.elapsed-5*time.Second, m.duration))
		return m, nil

	case ".":
		m.media.SeekFraction(seekFraction(m.elapsed+5*time.Second, m.duration))
		return m, nil

	case "+", "=":
		m.media.AdjustVolume(0.05)
		return m, nil

	case "-":
		m.media.AdjustVolume(-0.05)
		return m, nil
	}
	return m, nil
}

// selectAdjacentAlbum moves the selection along the carousel and records
// the new album in the URL.
func (m *Model) selectAdjacentAlbum(delta int) tea.Cmd {
	albums := m.ctrl.Albums()
	if len(albums) == 0 {
		return nil
	}
	idx := library.FindByID(albums, m.ctrl.SelectedID())
	target := clampInt(idx+delta, 0, len(albums)-1)
	if target == idx {
		return nil
	}
	album := albums[target]
	cmd := m.applyEffects(m.ctrl.SelectAlbum(album.ID), true)
	m.sync.WriteAlbum(album, false)
	return cmd
}

// applyEffects interprets controller effects. userInitiated picks between
// pushing a history entry (a deliberate action) and replacing the current
// one (programmatic moves like auto-advance), so history is not polluted.
func (m *Model) applyEffects(effects []playback.Effect, userInitiated bool) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case playback.ShowAlbum:
			if e.AlbumID != m.shownAlbumID {
				m.shownAlbumID = e.AlbumID
				m.cursor = 0
			}

		case playback.PreviewTrack:
			if !e.IfIdle || m.media.Idle() {
				m.previewAlbum = e.AlbumID
				m.previewIdx = e.TrackIndex
			}

		case playback.PlayTrack:
			if cmd := m.playTrack(e, userInitiated); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case playback.RestartTrack:
			m.media.SeekToStart()
			m.media.Play()

		case playback.Warn:
			m.setStatus(e.Message)

		case playback.RenderCarousel, playback.RefreshIndicators:
			// The view derives everything from controller state.
		}
	}
	return tea.Batch(cmds...)
}

// playTrack loads and starts the media for a PlayTrack effect. Start
// failures are swallowed here: controller state already reflects intent,
// the icons follow it, and a later deliberate play retries the same track.
func (m *Model) playTrack(e playback.PlayTrack, userInitiated bool) tea.Cmd {
	album := m.ctrl.PlayingAlbum()
	if album == nil || album.ID != e.AlbumID {
		return nil
	}
	track := album.Track(e.TrackIndex)
	if track == nil {
		return nil
	}

	path := filepath.Join(m.rootDir, filepath.FromSlash(album.Folder), track.Base+".mp3")
	if m.media.CurrentPath() != path {
		if err := m.media.Load(path); err != nil {
			m.setStatus(errmsg.FormatWith(errmsg.OpPlaybackStart, track.Title, err))
		}
	} else if d := m.media.Duration(); d > 0 && m.media.Position() >= d {
		// Re-targeting a track that played to its end: resuming a drained
		// handle produces no audio, so rewind first.
		m.media.SeekToStart()
	}
	m.media.Play()
	m.previewAlbum, m.previewIdx = "", -1

	m.sync.WriteTrack(album, track, !userInitiated)

	// Lazy duration backfill, at most one outstanding probe per track.
	if !track.HasDuration() && !m.pendingProbe[probeKey(album.ID, track.Number)] {
		m.pendingProbe[probeKey(album.ID, track.Number)] = true
		return probeCmd(path, album.ID, track.Number)
	}
	return nil
}

func (m *Model) setStatus(s string) {
	if s == "" {
		return
	}
	m.status = s
	m.statusTime = time.Now()
}

// ShareLocation returns the current addressable location, for display.
func (m Model) ShareLocation() urlsync.Location {
	return m.sync.Current()
}

func probeKey(albumID string, trackNumber int) string {
	return fmt.Sprintf("%s#%d", albumID, trackNumber)
}

func nextSortMode(mode library.SortMode) library.SortMode {
	modes := library.SortModes()
	for i, v := range modes {
		if v == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

func seekFraction(target, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(target) / float64(total)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
