package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui/common"
)

const (
	maxCardWidth = 80
	minCardWidth = 30
	indentStep   = 4
)

// View renders the thread detail view.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n")

	if m.showKeys {
		b.WriteString(m.renderKeyDialog())
		return b.String()
	}

	rows := m.rows()
	switch {
	case m.ctrl.State() == thread.StateNotFound:
		b.WriteString(m.styles.Section.Render("Thread not found.") + "\n")
		b.WriteString(m.styles.StatusBar.Render("  r: retry • q: quit"))
		return b.String()

	case len(rows) == 0:
		b.WriteString("\n  " + m.spinner.View() + " Loading thread...\n")
		return b.String()
	}

	b.WriteString(m.renderRows(rows))
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) header() string {
	title := m.styles.AppTitle.Render("chirpterm")
	crumb := m.styles.Crumb.Render("Thread " + m.ctrl.ThreadID())
	if m.ctrl.State() == thread.StateLoading {
		crumb += " " + m.spinner.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, crumb)
}

// renderRows renders the cards and keeps the selected one on screen.
func (m Model) renderRows(rows []row) string {
	cur := m.resolveCursor(rows)
	cards := make([]string, 0, len(rows)+1)
	selectedCard := 0
	for i, r := range rows {
		if r.depth == 1 && i > 0 && rows[i-1].depth == 0 {
			cards = append(cards, m.styles.Section.Render(fmt.Sprintf("Replies (%d)", len(m.ctrl.Tree().Replies()))))
		}
		if i == cur {
			selectedCard = len(cards)
		}
		cards = append(cards, m.renderCard(r, i == cur))
	}
	if len(rows) == 1 {
		cards = append(cards, m.styles.Section.Render("No replies yet."))
	}

	budget := max(m.height-6, 8)
	start := 0
	used := 0
	for i := selectedCard; i >= 0; i-- {
		h := lipgloss.Height(cards[i])
		if used+h > budget && i < selectedCard {
			break
		}
		used += h
		start = i
	}
	end := selectedCard + 1
	for ; end < len(cards); end++ {
		used += lipgloss.Height(cards[end])
		if used > budget {
			break
		}
	}
	return strings.Join(cards[start:end], "\n")
}

func (m Model) cardWidth(depth int) int {
	w := min(m.width-4-depth*indentStep, maxCardWidth-depth*indentStep)
	return max(w, minCardWidth)
}

func (m Model) renderCard(r row, selected bool) string {
	p := r.post
	width := m.cardWidth(r.depth)
	contentWidth := max(width-4, 20)

	var c strings.Builder
	c.WriteString(m.renderAuthor(p) + "\n")
	if r.depth == 2 && r.parentUser != "" {
		c.WriteString(m.styles.Metadata.Italic(true).Render("⬑ Reply to @"+common.Sanitize(r.parentUser)) + "\n")
	}

	content := strings.TrimSpace(common.Sanitize(p.Content))
	if content == "" && len(p.Attachments) > 0 {
		content = "(media post)"
	}
	if content != "" {
		c.WriteString(m.styles.Content.Width(contentWidth).Render(content) + "\n")
	}
	if n := len(p.Attachments); n > 0 {
		label := "attachment"
		if n > 1 {
			label += "s"
		}
		c.WriteString(m.styles.Metadata.Render(fmt.Sprintf("📎 %d %s (o: open)", n, label)) + "\n")
	}
	c.WriteString(m.renderStats(p))

	style := m.styles.Unselected
	switch {
	case r.depth == 0:
		style = m.styles.RootCard.BorderForeground(m.styles.Theme.Border)
		if selected {
			style = style.BorderForeground(m.styles.Theme.Accent)
		}
	case selected:
		style = m.styles.Selected
	}
	return style.
		MarginLeft(2 + r.depth*indentStep).
		Width(width).
		Render(c.String())
}

func (m Model) renderAuthor(p domain.Post) string {
	name := m.styles.DisplayName.Render(common.Truncate(common.Sanitize(p.Author.DisplayName), 32))
	if p.Author.Verified {
		name += " " + m.styles.Verified.Render("✓")
	}
	out := name + " " + m.styles.Handle.Render("@"+common.Sanitize(p.Author.Username))
	if ts := common.RelativeTime(p.CreatedAt, m.now()); ts != "" {
		out += m.styles.Timestamp.Render(" · " + ts)
	}
	return out
}

func (m Model) renderStats(p domain.Post) string {
	like := m.styles.Metadata.Render("♡ " + common.FormatCount(p.LikesCount))
	if p.Liked {
		like = m.styles.LikeActive.Render("♥ " + common.FormatCount(p.LikesCount))
	}
	if m.ctrl.IsPending(p.ID, domain.Like) {
		like += m.styles.Pending.Render("…")
	}

	mark := m.styles.Metadata.Render("🔖 " + common.FormatCount(p.BookmarksCount))
	if p.Bookmarked {
		mark = m.styles.MarkActive.Render("🔖 " + common.FormatCount(p.BookmarksCount))
	}
	if m.ctrl.IsPending(p.ID, domain.Bookmark) {
		mark += m.styles.Pending.Render("…")
	}

	parts := []string{
		like,
		m.styles.Metadata.Render("💬 " + common.FormatCount(p.RepliesCount)),
		m.styles.Metadata.Render("🔁 " + common.FormatCount(p.RepostsCount)),
		mark,
	}
	if p.ViewsCount > 0 {
		parts = append(parts, m.styles.Metadata.Render("👁 "+common.FormatCount(p.ViewsCount)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) helpView() string {
	items := []string{
		"j/k: focus",
		"l: like",
		"b: bookmark",
		"c/C: reply",
		"r: reload",
		"q: quit",
		"?: all keys",
	}
	return m.styles.StatusBar.
		Width(max(m.width-2, 16)).
		Render("  " + strings.Join(items, " • "))
}

func (m Model) renderKeyDialog() string {
	lines := []string{
		"j / k           move focus down / up",
		"g               jump to the thread root",
		"l               like/unlike selected post",
		"b               bookmark/unbookmark selected post",
		"c / C           reply via editor / inline",
		"o               open selected attachments",
		"r               reload thread",
		"t               toggle dark/light theme",
		"q               quit",
		"?/esc           close this list",
	}
	return m.styles.Dialog.Render(
		m.styles.DisplayName.Render("Keys") + "\n\n" + strings.Join(lines, "\n"),
	)
}
