package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mneuronico/spotifai/internal/library"
	"github.com/mneuronico/spotifai/internal/playback"
	"github.com/mneuronico/spotifai/internal/player"
	"github.com/mneuronico/spotifai/internal/urlsync"
)

func testModel(t *testing.T) (Model, *player.Mock, *urlsync.MemoryHistory) {
	t.Helper()
	albums := []*library.Album{
		{ID: "a", Title: "Alpha Days", Folder: "albums/Alpha Days", Tracks: []library.Track{
			{Number: 1, Title: "Sunrise", Base: "01 - Sunrise", Duration: 120},
			{Number: 2, Title: "Noon", Base: "02 - Noon", Duration: 90},
		}},
		{ID: "b", Title: "Beta Nights", Folder: "albums/Beta Nights", Tracks: []library.Track{
			{Number: 1, Title: "Dusk", Base: "01 - Dusk", Duration: 60},
		}},
	}
	ctrl := playback.New(albums, library.SortTitleAscending)
	mock := player.NewMock()
	history := urlsync.NewMemoryHistory()
	m := New(ctrl, mock, history, "/music", urlsync.Location{})
	return m, mock, history
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(key(s))
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestNewResolvesStartupLocation(t *testing.T) {
	albums := []*library.Album{
		{ID: "a", Title: "Alpha Days", Folder: "albums/Alpha Days", Tracks: []library.Track{
			{Number: 1, Title: "Sunrise", Base: "01 - Sunrise"},
			{Number: 2, Title: "Noon", Base: "02 - Noon"},
		}},
	}
	ctrl := playback.New(albums, library.SortTitleAscending)
	history := urlsync.NewMemoryHistory()

	m := New(ctrl, player.NewMock(), history, "/music", urlsync.Location{Album: "alpha-days", Track: "02-noon"})
	if ctrl.SelectedID() != "a" {
		t.Fatalf("SelectedID = %q", ctrl.SelectedID())
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want track from the deep link", m.cursor)
	}
	if ctrl.PlayingID() != "" {
		t.Fatalf("startup started playback")
	}

	// The normalized location replaces the initial entry.
	if history.Len() != 1 {
		t.Fatalf("history len = %d, want 1", history.Len())
	}
	cur := history.Current()
	if cur.Album != "alpha-days" || cur.Track != "02-noon" {
		t.Fatalf("current = %+v", cur)
	}
}

func TestEnterPlaysCursorTrack(t *testing.T) {
	m, mock, history := testModel(t)
	m = press(t, m, "j") // cursor to track 2
	m = press(t, m, "enter")

	want := filepath.Join("/music", "albums", "Alpha Days", "02 - Noon.mp3")
	calls := mock.LoadCalls()
	if len(calls) != 1 || calls[0] != want {
		t.Fatalf("LoadCalls = %v, want [%s]", calls, want)
	}
	if mock.Paused() {
		t.Fatalf("media paused after play")
	}

	// A deliberate play pushes a history entry for the track.
	if history.Len() != 2 {
		t.Fatalf("history len = %d, want 2", history.Len())
	}
	if got := history.Current(); got.Track != "02-noon" {
		t.Fatalf("current = %+v", got)
	}
}

func TestAlbumNavigationWritesURL(t *testing.T) {
	m, _, history := testModel(t)
	m = press(t, m, "l")

	if m.ctrl.SelectedID() != "b" {
		t.Fatalf("SelectedID = %q, want \"b\"", m.ctrl.SelectedID())
	}
	if got := history.Current(); got.Album != "beta-nights" || got.Track != "" {
		t.Fatalf("current = %+v, want beta-nights with no track", got)
	}
}

func TestAutoAdvanceReplacesHistory(t *testing.T) {
	m, mock, history := testModel(t)
	m = press(t, m, "enter") // play track 1, pushes an entry
	baseLen := history.Len()

	next, _ := m.Update(trackEndedMsg{})
	m = next.(Model)

	if m.ctrl.PlayingTrackIndex() != 1 {
		t.Fatalf("playing index = %d, want auto-advance to 1", m.ctrl.PlayingTrackIndex())
	}
	if history.Len() != baseLen {
		t.Fatalf("history len = %d, auto-advance grew history", history.Len())
	}
	if got := history.Current(); got.Track != "02-noon" {
		t.Fatalf("current = %+v", got)
	}
	if calls := mock.LoadCalls(); len(calls) != 2 {
		t.Fatalf("LoadCalls = %v, want the next track loaded", calls)
	}
}

func TestLoopRestartsWithoutReload(t *testing.T) {
	m, mock, _ := testModel(t)
	m = press(t, m, "enter")
	m = press(t, m, "r") // loop on

	next, _ := m.Update(trackEndedMsg{})
	m = next.(Model)

	if mock.SeekToStartCalls() != 1 {
		t.Fatalf("SeekToStartCalls = %d, want 1", mock.SeekToStartCalls())
	}
	if calls := mock.LoadCalls(); len(calls) != 1 {
		t.Fatalf("LoadCalls = %v, loop reloaded the track", calls)
	}
	if m.ctrl.PlayingTrackIndex() != 0 {
		t.Fatalf("playing index = %d, want unchanged 0", m.ctrl.PlayingTrackIndex())
	}
}

func TestTrackEndWrappingOntoItselfRewinds(t *testing.T) {
	albums := []*library.Album{
		{ID: "solo", Title: "Solo", Folder: "albums/Solo", Tracks: []library.Track{
			{Number: 1, Title: "Only", Base: "01 - Only", Duration: 60},
		}},
	}
	ctrl := playback.New(albums, library.SortTitleAscending)
	mock := player.NewMock()
	m := New(ctrl, mock, urlsync.NewMemoryHistory(), "/music", urlsync.Location{})
	m = press(t, m, "enter")

	// The track plays to its end; the collection wraps back onto the same
	// album and track, so the loaded path does not change.
	mock.SetDuration(60 * time.Second)
	mock.SetPosition(60 * time.Second)
	next, _ := m.Update(trackEndedMsg{})
	m = next.(Model)

	if calls := mock.LoadCalls(); len(calls) != 1 {
		t.Fatalf("LoadCalls = %v, want no reload of the same path", calls)
	}
	if mock.SeekToStartCalls() == 0 {
		t.Fatalf("drained media was not rewound before replay")
	}
	if mock.Paused() {
		t.Fatalf("media paused after replay")
	}
	if m.ctrl.PlayingTrackIndex() != 0 {
		t.Fatalf("playing index = %d, want 0", m.ctrl.PlayingTrackIndex())
	}
}

func TestHistoryBackRestoresSelection(t *testing.T) {
	m, _, history := testModel(t)
	m = press(t, m, "l") // select Beta Nights, pushes entry
	m = press(t, m, "[") // back

	if m.ctrl.SelectedID() != "a" {
		t.Fatalf("SelectedID = %q after back, want \"a\"", m.ctrl.SelectedID())
	}
	// Replaying the navigation must not have written new entries.
	if history.Len() != 2 {
		t.Fatalf("history len = %d, want 2", history.Len())
	}

	m = press(t, m, "]") // forward
	if m.ctrl.SelectedID() != "b" {
		t.Fatalf("SelectedID = %q after forward, want \"b\"", m.ctrl.SelectedID())
	}
}

func TestViewRenders(t *testing.T) {
	m, mock, _ := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	m = press(t, m, "enter")
	mock.SetDuration(120 * time.Second)

	out := m.View()
	for _, want := range []string{"Alpha Days", "Sunrise", "01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q", want)
		}
	}
}
