package compose

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// View renders the composer based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(m.styles.AppTitle.Render("chirpterm"))
		b.WriteString("  Reply\n")
		if m.draft.TargetUsername != "" {
			b.WriteString(m.styles.Handle.MarginLeft(1).Render("Replying to @"+m.draft.TargetUsername) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n")

		if m.err != nil {
			b.WriteString("\n" + m.styles.Error.Render(errorText(m.err)) + "\n")
		}

		if m.status != "" {
			b.WriteString(m.styles.StatusBar.Render(m.status))
		} else {
			count := utf8.RuneCountInString(strings.TrimSpace(m.textarea.Value()))
			counter := fmt.Sprintf("%d/%d chars", count, domain.MaxReplyLength)
			if count > domain.MaxReplyLength {
				counter = m.styles.Error.Render(counter)
			}
			b.WriteString(m.styles.StatusBar.Render("  ctrl+d: post • esc: cancel • " + counter))
		}

		return b.String()
	}

	return ""
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyReply):
		return "Reply cannot be empty."
	case errors.Is(err, domain.ErrReplyTooLong):
		return fmt.Sprintf("Reply is over %d characters.", domain.MaxReplyLength)
	}
	return "Error: " + err.Error()
}
