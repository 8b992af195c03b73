package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mneuronico/spotifai/internal/cover"
	"github.com/mneuronico/spotifai/internal/library"
	"github.com/mneuronico/spotifai/internal/util"
)

const (
	cardWidth     = 16
	trackRowCount = 10
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 40 {
		w = 80
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("spotifai"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  ·  sort: %s", m.ctrl.SortMode().Label())))
	b.WriteString("\n\n")

	b.WriteString(m.viewCarousel(w))
	b.WriteString("\n")
	b.WriteString(m.viewAlbumHeader())
	b.WriteString("\n")
	b.WriteString(m.viewTrackList())
	b.WriteString("\n")
	b.WriteString(m.viewNowPlaying())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if q := m.ShareLocation().Query(); q != "" {
		b.WriteString(helpStyle.Render("link: ?" + q))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ tracks · ←/→ albums · enter play · space pause · n/p skip · s shuffle · r loop · o sort · [/] history · q quit"))
	return b.String()
}

func (m Model) viewCarousel(w int) string {
	albums := m.ctrl.Albums()
	if len(albums) == 0 {
		return statusStyle.Render("no albums")
	}

	visible := clampInt(w/(cardWidth+4), 1, len(albums))
	selIdx := library.FindByID(albums, m.ctrl.SelectedID())
	if selIdx < 0 {
		selIdx = 0
	}
	start := clampInt(selIdx-visible/2, 0, len(albums)-visible)

	cards := make([]string, 0, visible)
	for i := start; i < start+visible; i++ {
		cards = append(cards, m.viewCard(albums[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) viewCard(a *library.Album) string {
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(cover.Color(a.Title).Hex())).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Width(cardWidth).
		Align(lipgloss.Center).
		Render(cover.Initials(a.Title))

	marker := " "
	if a.ID == m.ctrl.PlayingID() {
		marker = "▶"
	}
	title := fmt.Sprintf("%s %s", marker, truncate(a.Title, cardWidth-2))
	sub := fmt.Sprintf("%d track%s", len(a.Tracks), plural(len(a.Tracks)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		swatch,
		titleStyle.Render(title),
		artistStyle.Render(sub),
	)
	if a.ID == m.ctrl.SelectedID() {
		return cardSelectedStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func (m Model) viewAlbumHeader() string {
	a := m.ctrl.SelectedAlbum()
	if a == nil {
		return ""
	}

	line := titleStyle.Render(a.Title)
	if a.Recommended {
		line += " " + recommendedStyle.Render("★")
	}
	var details []string
	if a.HasArtist() {
		details = append(details, a.Artist)
	}
	if a.HasReleased() {
		details = append(details, "released "+a.Released.Format("2006-01-02"))
	}
	if a.HasAdded() {
		details = append(details, "added "+humanize.Time(a.Added))
	}
	if len(details) > 0 {
		line += "\n" + artistStyle.Render(strings.Join(details, " · "))
	}
	return line + "\n"
}

func (m Model) viewTrackList() string {
	a := m.ctrl.SelectedAlbum()
	if a == nil || len(a.Tracks) == 0 {
		return statusStyle.Render("  (no tracks)") + "\n"
	}

	start := clampInt(m.cursor-trackRowCount/2, 0, maxInt(0, len(a.Tracks)-trackRowCount))
	end := minInt(len(a.Tracks), start+trackRowCount)

	playingHere := a.ID == m.ctrl.PlayingID()
	var b strings.Builder
	for i := start; i < end; i++ {
		t := &a.Tracks[i]

		marker := "  "
		if playingHere && i == m.ctrl.PlayingTrackIndex() {
			marker = "▶ "
		}
		row := fmt.Sprintf("%s%s  %s  %s",
			marker, util.Pad2(t.Number), padRight(truncate(t.Title, 40), 40), util.FormatSeconds(t.Duration))

		switch {
		case i == m.cursor:
			b.WriteString(trackActiveStyle.Render("> " + row))
		case playingHere && i == m.ctrl.PlayingTrackIndex():
			b.WriteString(trackActiveStyle.Render("  " + row))
		default:
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewNowPlaying() string {
	album, track := m.nowShowing()
	if album == nil || track == nil {
		return statusStyle.Render("nothing playing")
	}

	icon := "▶"
	if m.paused {
		icon = "⏸"
	}
	flags := ""
	if m.ctrl.Shuffle() {
		flags += " [shuffle]"
	}
	if m.ctrl.Loop() {
		flags += " [loop]"
	}

	head := fmt.Sprintf("%s %s — %s", icon, util.Pad2(track.Number), track.Title)
	line1 := titleStyle.Render(head) + artistStyle.Render("  "+album.Title) + statusStyle.Render(flags)

	frac := 0.0
	if m.duration > 0 {
		frac = float64(m.elapsed) / float64(m.duration)
	}
	line2 := fmt.Sprintf("%s %s/%s  vol %d%%",
		m.seekbar.ViewAs(frac),
		util.FormatDuration(m.elapsed),
		util.FormatDuration(m.duration),
		int(m.media.Volume()*100+0.5),
	)
	return line1 + "\n" + timeStyle.Render(line2)
}

// nowShowing resolves what the now-playing panel displays: the audible
// track when there is one, else the previewed track.
func (m Model) nowShowing() (*library.Album, *library.Track) {
	if t := m.ctrl.PlayingTrack(); t != nil {
		return m.ctrl.PlayingAlbum(), t
	}
	if m.previewAlbum != "" {
		albums := m.ctrl.Albums()
		if i := library.FindByID(albums, m.previewAlbum); i >= 0 {
			return albums[i], albums[i].Track(m.previewIdx)
		}
	}
	return nil, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if len([]rune(s)) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len([]rune(s)))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
