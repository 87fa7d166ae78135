package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chirpterm/infra/editor"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui/common"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (submit or cancel).
type DoneMsg struct {
	Draft     thread.Draft // Content is set when submitting
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the reply composer.
type Model struct {
	mode       mode
	editor     *editor.EnvEditor
	draft      thread.Draft
	styles     common.Styles
	status     string
	err        error
	submitting bool
	textarea   textarea.Model // Only used in inline mode
	tmpPath    string         // Temp file path for editor mode
}

// NewEditor creates a composer that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor, d thread.Draft, styles common.Styles) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		draft:  d,
		styles: styles,
		status: "Opening editor...",
	}
}

// NewInline creates a composer with an inline Bubble Tea textarea.
func NewInline(d thread.Draft, styles common.Styles) Model {
	return Model{
		mode:     inlineMode,
		draft:    d,
		styles:   styles,
		textarea: newTextarea(initialContent(d)),
	}
}

func newTextarea(content string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Post your reply"
	ta.CharLimit = 0 // Over-long replies are reported, not cut.
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.SetValue(content)
	ta.Focus()
	return ta
}

func initialContent(d thread.Draft) string {
	if d.Content != "" {
		return d.Content
	}
	return d.Mention()
}

// Draft returns the draft being composed.
func (m Model) Draft() thread.Draft { return m.draft }

// Submitting reports whether a submission is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Err is the last validation or submission error shown.
func (m Model) Err() error { return m.err }

// Failed keeps the composer open after a failed submission, switching to
// inline mode so the text can be fixed without losing it.
func (m Model) Failed(err error) Model {
	m.submitting = false
	m.err = err
	m.status = ""
	if m.mode != inlineMode {
		m.mode = inlineMode
		m.textarea = newTextarea(m.draft.Content)
	}
	return m
}

// SetStyles swaps the theme.
func (m Model) SetStyles(s common.Styles) Model {
	m.styles = s
	return m
}

// Init returns the initial command for the active mode.
func (m *Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	replyTo := ""
	if m.draft.TargetUsername != "" {
		replyTo = "@" + m.draft.TargetUsername
	}
	cmd, tmpPath, err := m.editor.Cmd(initialContent(m.draft), replyTo)
	if err != nil {
		return done(DoneMsg{Draft: m.draft, Cancelled: true, Err: fmt.Errorf("preparing editor: %w", err)})
	}
	m.tmpPath = tmpPath

	// tea.ExecProcess suspends Bubble Tea, runs the command with full terminal
	// control, then resumes Bubble Tea and delivers the callback message.
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Draft: m.draft, Cancelled: true, Err: fmt.Errorf("editor: %w", msg.err)})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Draft: m.draft, Cancelled: true, Err: err})
		}
		if content == "" || content == m.draft.Mention() {
			return m, done(DoneMsg{Draft: m.draft, Cancelled: true})
		}
		return m.submit(content)

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Draft: m.draft, Cancelled: true})

		case "ctrl+d":
			return m.submit(m.textarea.Value())
		}

		// Delegate to textarea for normal typing.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	// Pass through any remaining messages to textarea in inline mode.
	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit validates content locally and hands the draft to the parent. A
// validation failure keeps the composer open with the error shown.
func (m Model) submit(content string) (Model, tea.Cmd) {
	m.draft.Content = content
	if err := m.draft.Validate(); err != nil {
		return m.Failed(err), nil
	}
	m.err = nil
	m.submitting = true
	m.status = "Posting reply..."
	return m, done(DoneMsg{Draft: m.draft})
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
