package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/infra/config"
	"github.com/CrestNiraj12/chirpterm/infra/editor"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui/common"
	"github.com/CrestNiraj12/chirpterm/tui/compose"
	"github.com/CrestNiraj12/chirpterm/tui/detail"
)

const (
	defaultToastDuration = 3 * time.Second
	maxVisibleToasts     = 3
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	ThreadID         string
	Threads          app.ThreadService
	Posts            app.PostService
	Session          app.Session
	Editor           *editor.EnvEditor // nil forces the inline composer
	Logger           *zap.Logger
	NestedFetchLimit int
	ToastDuration    time.Duration
	UIState          config.UIState
	UIStatePath      string // Empty disables persisting the theme
}

type activeView int

const (
	detailView activeView = iota
	composeView
)

type toastExpiredMsg struct {
	ID int
}

// App is the root Bubble Tea model. It routes between the thread view and
// the reply composer and owns the toast stack.
type App struct {
	deps    Deps
	active  activeView
	detail  detail.Model
	compose compose.Model
	keys    common.KeyMap
	theme   common.Theme
	styles  common.Styles
	toasts  *common.ToastQueue
	visible []common.Toast
	log     *zap.Logger
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.ToastDuration <= 0 {
		deps.ToastDuration = defaultToastDuration
	}
	theme := common.ThemeByName(deps.UIState.Theme)
	styles := common.NewStyles(theme)
	toasts := common.NewToastQueue()

	ctrl := thread.NewController(deps.ThreadID, thread.Deps{
		Threads:          deps.Threads,
		Posts:            deps.Posts,
		Session:          deps.Session,
		Notifier:         toasts,
		Logger:           log,
		NestedFetchLimit: deps.NestedFetchLimit,
	})

	return App{
		deps:   deps,
		active: detailView,
		detail: detail.New(ctrl, styles),
		keys:   common.DefaultKeyMap(),
		theme:  theme,
		styles: styles,
		toasts: toasts,
		log:    log,
	}
}

// Init starts loading the thread.
func (a App) Init() tea.Cmd {
	return a.detail.Init()
}

// Update handles messages, then turns toasts raised while handling them
// into expiring notifications.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a, cmd := a.update(msg)
	a, toastCmd := a.flushToasts()
	return a, tea.Batch(cmd, toastCmd)
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.detail = a.detail.SetSize(msg.Width, msg.Height)
		if a.active == composeView {
			var cmd tea.Cmd
			a.compose, cmd = a.compose.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		// Global key bindings, handled regardless of active view.
		if key.Matches(msg, a.keys.ForceQuit) {
			a.detail.Teardown()
			return a, tea.Quit
		}
		if a.active == detailView && key.Matches(msg, a.keys.Quit) {
			a.detail.Teardown()
			return a, tea.Quit
		}

	case toastExpiredMsg:
		for i, t := range a.visible {
			if t.ID == msg.ID {
				a.visible = append(a.visible[:i:i], a.visible[i+1:]...)
				break
			}
		}
		return a, nil

	// The thread keeps loading and confirming likes while the composer is open.
	case detail.LoadedMsg, detail.InteractionResultMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case detail.ToggleThemeMsg:
		a = a.setTheme(a.theme.Toggle())
		return a, nil

	case detail.OpenComposerMsg:
		a.active = composeView
		if msg.Inline || a.deps.Editor == nil {
			a.compose = compose.NewInline(msg.Draft, a.styles)
		} else {
			a.compose = compose.NewEditor(a.deps.Editor, msg.Draft, a.styles)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		if msg.Err != nil {
			a.log.Warn("composer failed", zap.Error(msg.Err))
			a.toasts.Notify(app.ToastError, "Could not open editor")
		}
		if msg.Cancelled {
			a.active = detailView
			return a, nil
		}
		return a, a.detail.SubmitReply(msg.Draft)

	case detail.ReplyResultMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		if msg.Err != nil {
			a.compose = a.compose.Failed(msg.Err)
		} else {
			a.active = detailView
		}
		return a, cmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case detailView:
		updated, cmd := a.detail.Update(msg)
		a.detail = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

func (a App) setTheme(t common.Theme) App {
	a.theme = t
	a.styles = common.NewStyles(t)
	a.detail = a.detail.SetStyles(a.styles)
	a.compose = a.compose.SetStyles(a.styles)

	if a.deps.UIStatePath == "" {
		return a
	}
	a.deps.UIState.Theme = t.Name
	if err := config.SaveUIState(a.deps.UIStatePath, a.deps.UIState); err != nil {
		a.log.Warn("saving ui state", zap.Error(err))
	}
	return a
}

func (a App) flushToasts() (App, tea.Cmd) {
	fresh := a.toasts.Drain()
	if len(fresh) == 0 {
		return a, nil
	}
	cmds := make([]tea.Cmd, 0, len(fresh))
	for _, t := range fresh {
		a.visible = append(a.visible, t)
		id := t.ID
		cmds = append(cmds, tea.Tick(a.deps.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{ID: id}
		}))
	}
	if n := len(a.visible); n > maxVisibleToasts {
		a.visible = append([]common.Toast(nil), a.visible[n-maxVisibleToasts:]...)
	}
	return a, tea.Batch(cmds...)
}

// Toasts returns the notifications currently on screen, oldest first.
func (a App) Toasts() []common.Toast {
	return append([]common.Toast(nil), a.visible...)
}

// View renders the active sub-model with the toast stack below it.
func (a App) View() string {
	var s string

	switch a.active {
	case detailView:
		s = a.detail.View()
	case composeView:
		s = a.compose.View()
	}

	if len(a.visible) > 0 {
		lines := make([]string, 0, len(a.visible))
		for _, t := range a.visible {
			lines = append(lines, "  "+common.RenderToast(a.styles, t))
		}
		s += "\n" + strings.Join(lines, "\n")
	}

	return s
}
