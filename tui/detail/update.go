package detail

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
)

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		if m.ctrl.State() != thread.StateLoading && m.ctrl.State() != thread.StateIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		if m.ctrl.Apply(msg.Seq, msg.Result) {
			rows := m.rows()
			m = m.selectIndex(rows, m.resolveCursor(rows))
		}
		return m, nil

	case InteractionResultMsg:
		m.ctrl.InteractionSettled(msg.Interaction, msg.Err)
		return m, nil

	case ReplyResultMsg:
		if msg.Err != nil {
			m.ctrl.ReplyFailed(msg.Err)
			return m, nil
		}
		post := m.ctrl.ReplySubmitted(msg.Draft, msg.Payload)
		if _, _, ok := m.ctrl.Tree().Find(post.ID); ok {
			m.selectedID = post.ID
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showKeys {
		if key.Matches(msg, m.keys.ToggleHints) || msg.String() == "esc" {
			m.showKeys = false
		}
		return m, nil
	}

	rows := m.rows()
	cur := m.resolveCursor(rows)

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showKeys = true

	case key.Matches(msg, m.keys.Up):
		return m.selectIndex(rows, cur-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.selectIndex(rows, cur+1), nil
	case key.Matches(msg, m.keys.Top):
		return m.selectIndex(rows, 0), nil

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.load(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Theme):
		return m, func() tea.Msg { return ToggleThemeMsg{} }

	case key.Matches(msg, m.keys.Like):
		return m.toggle(rows, cur, domain.Like)
	case key.Matches(msg, m.keys.Bookmark):
		return m.toggle(rows, cur, domain.Bookmark)

	case key.Matches(msg, m.keys.Reply):
		return m.reply(rows, cur, false)
	case key.Matches(msg, m.keys.ReplyInline):
		return m.reply(rows, cur, true)

	case key.Matches(msg, m.keys.Open):
		if len(rows) == 0 {
			break
		}
		return m, openURLs(rows[cur].post.Attachments)
	}

	return m, nil
}

func (m Model) toggle(rows []row, cur int, kind domain.InteractionKind) (Model, tea.Cmd) {
	if len(rows) == 0 || m.ctrl.State() != thread.StateLoaded {
		return m, nil
	}
	in, err := m.ctrl.Toggle(rows[cur].post.ID, kind)
	if err != nil {
		return m, nil
	}
	return m, m.confirm(in)
}

func (m Model) reply(rows []row, cur int, inline bool) (Model, tea.Cmd) {
	if len(rows) == 0 || m.ctrl.State() != thread.StateLoaded {
		return m, nil
	}
	// The controller raises the sign-in toast itself.
	d, err := m.ctrl.ReplyTo(rows[cur].post.ID)
	if err != nil {
		return m, nil
	}
	return m, func() tea.Msg { return OpenComposerMsg{Draft: d, Inline: inline} }
}
