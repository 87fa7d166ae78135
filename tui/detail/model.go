package detail

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui/common"
)

// --- Messages ---

// LoadedMsg carries the result of load sequence Seq.
type LoadedMsg struct {
	Seq    int
	Result thread.LoadResult
}

// InteractionResultMsg is the server answer to an optimistic like or bookmark.
type InteractionResultMsg struct {
	Interaction thread.Interaction
	Err         error
}

// OpenComposerMsg asks the root model to open the composer for Draft.
type OpenComposerMsg struct {
	Draft  thread.Draft
	Inline bool
}

// ReplyResultMsg is sent after a reply submission attempt.
type ReplyResultMsg struct {
	Draft   thread.Draft
	Payload domain.Payload
	Err     error
}

// ToggleThemeMsg asks the root model to switch between dark and light.
type ToggleThemeMsg struct{}

// --- Model ---

// row is one visible post: the root at depth 0, first-level replies at 1
// and their nested replies at 2.
type row struct {
	post       domain.Post
	depth      int
	parentUser string // Author of the first-level parent, nested rows only
}

// Model holds the state for the thread detail view.
type Model struct {
	ctrl       *thread.Controller
	keys       common.KeyMap
	styles     common.Styles
	spinner    spinner.Model
	width      int
	height     int
	cursor     int
	selectedID string // Survives reloads and inserts that shift rows
	showKeys   bool   // Whether the full key list is open
	now        func() time.Time
}

// New creates a detail view driven by ctrl.
func New(ctrl *thread.Controller, styles common.Styles) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Theme.Accent)

	return Model{
		ctrl:    ctrl,
		keys:    common.DefaultKeyMap(),
		styles:  styles,
		spinner: s,
		width:   80,
		height:  24,
		now:     time.Now,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Controller exposes the thread controller.
func (m Model) Controller() *thread.Controller { return m.ctrl }

// SetStyles swaps the theme.
func (m Model) SetStyles(s common.Styles) Model {
	m.styles = s
	m.spinner.Style = lipgloss.NewStyle().Foreground(s.Theme.Accent)
	return m
}

// SetSize sets the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Selected returns the post under the cursor.
func (m Model) Selected() (domain.Post, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return domain.Post{}, false
	}
	return rows[m.resolveCursor(rows)].post, true
}

// Teardown cancels in-flight loads. Results arriving later are dropped.
func (m Model) Teardown() {
	m.ctrl.Teardown()
}

// rows flattens the tree in display order.
func (m Model) rows() []row {
	tree := m.ctrl.Tree()
	root, ok := tree.Root()
	if !ok {
		return nil
	}
	out := make([]row, 0, tree.Len())
	out = append(out, row{post: root})
	for _, reply := range tree.Replies() {
		out = append(out, row{post: reply, depth: 1})
		for _, nested := range tree.Nested(reply.ID) {
			out = append(out, row{post: nested, depth: 2, parentUser: reply.Author.Username})
		}
	}
	return out
}

// resolveCursor finds the selected post in rows, falling back to the
// clamped cursor index when it is gone.
func (m Model) resolveCursor(rows []row) int {
	if m.selectedID != "" {
		for i, r := range rows {
			if r.post.ID == m.selectedID {
				return i
			}
		}
	}
	return min(max(m.cursor, 0), max(len(rows)-1, 0))
}

func (m Model) selectIndex(rows []row, i int) Model {
	if len(rows) == 0 {
		m.cursor, m.selectedID = 0, ""
		return m
	}
	i = min(max(i, 0), len(rows)-1)
	m.cursor = i
	m.selectedID = rows[i].post.ID
	return m
}
