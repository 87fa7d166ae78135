package detail

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chirpterm/thread"
)

// load starts a new load scope and fetches the thread off the UI goroutine.
func (m Model) load() tea.Cmd {
	ctrl := m.ctrl
	ctx, seq := ctrl.Begin(context.Background())
	return func() tea.Msg {
		return LoadedMsg{Seq: seq, Result: ctrl.Fetch(ctx)}
	}
}

// Reload restarts the load sequence.
func (m Model) Reload() tea.Cmd {
	return m.load()
}

func (m Model) confirm(in thread.Interaction) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.ConfirmInteraction(context.Background(), in)
		return InteractionResultMsg{Interaction: in, Err: err}
	}
}

// SubmitReply publishes d and reports the outcome as a ReplyResultMsg.
func (m Model) SubmitReply(d thread.Draft) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		payload, err := ctrl.SubmitReply(context.Background(), d)
		return ReplyResultMsg{Draft: d, Payload: payload, Err: err}
	}
}

func openURLs(urls []string) tea.Cmd {
	clean := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || !isSafeExternalURL(u) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		clean = append(clean, u)
	}
	if len(clean) == 0 {
		return nil
	}
	return func() tea.Msg {
		for _, u := range clean {
			_ = exec.Command(openerCommand(), u).Start()
		}
		return nil
	}
}

func openerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
