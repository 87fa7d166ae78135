package detail

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
	"github.com/CrestNiraj12/chirpterm/tui/common"
)

type fakeThreads struct {
	root    domain.Payload
	rootErr error
	replies []domain.Payload
	nested  map[string][]domain.Payload
}

func (f *fakeThreads) GetThread(_ context.Context, id string) (domain.Payload, error) {
	if f.rootErr != nil {
		return nil, f.rootErr
	}
	return f.root, nil
}

func (f *fakeThreads) GetThreadReplies(_ context.Context, id string) ([]domain.Payload, error) {
	return f.replies, nil
}

func (f *fakeThreads) GetReplyReplies(_ context.Context, replyID string) ([]domain.Payload, error) {
	return f.nested[replyID], nil
}

type fakePosts struct {
	mu      sync.Mutex
	calls   []string
	err     error
	created domain.Payload
}

func (f *fakePosts) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakePosts) SubmitReply(_ context.Context, req app.ReplyRequest) (domain.Payload, error) {
	if err := f.record("reply:" + req.ParentReplyID); err != nil {
		return nil, err
	}
	return f.created, nil
}

func (f *fakePosts) Like(_ context.Context, id string) error       { return f.record("like:" + id) }
func (f *fakePosts) Unlike(_ context.Context, id string) error     { return f.record("unlike:" + id) }
func (f *fakePosts) Bookmark(_ context.Context, id string) error   { return f.record("bookmark:" + id) }
func (f *fakePosts) Unbookmark(_ context.Context, id string) error { return f.record("unbookmark:" + id) }

type session bool

func (s session) IsAuthenticated() bool { return bool(s) }

type toastLog struct {
	kinds    []app.ToastKind
	messages []string
}

func (l *toastLog) Notify(kind app.ToastKind, msg string) {
	l.kinds = append(l.kinds, kind)
	l.messages = append(l.messages, msg)
}

func sampleThreads() *fakeThreads {
	return &fakeThreads{
		root: domain.Payload{
			"id":           "T1",
			"content":      "root post",
			"author":       map[string]any{"username": "sam", "displayName": "Sam"},
			"repliesCount": 1,
		},
		replies: []domain.Payload{{
			"id":           "R1",
			"content":      "first reply",
			"author":       map[string]any{"username": "lee"},
			"likesCount":   2,
			"repliesCount": 1,
		}},
		nested: map[string][]domain.Payload{
			"R1": {{
				"id":      "R2",
				"content": "nested reply",
				"author":  map[string]any{"username": "ava"},
			}},
		},
	}
}

type fixture struct {
	model   Model
	threads *fakeThreads
	posts   *fakePosts
	toasts  *toastLog
}

func newFixture(t *testing.T, threads *fakeThreads, signedIn bool) *fixture {
	t.Helper()
	f := &fixture{threads: threads, posts: &fakePosts{}, toasts: &toastLog{}}
	ctrl := thread.NewController("T1", thread.Deps{
		Threads:  threads,
		Posts:    f.posts,
		Session:  session(signedIn),
		Notifier: f.toasts,
	})
	f.model = New(ctrl, common.NewStyles(common.DarkTheme)).SetSize(120, 200)
	return f
}

// loaded runs the initial load to completion.
func (f *fixture) loaded(t *testing.T) *fixture {
	t.Helper()
	f.model = f.send(t, f.model.load()())
	return f
}

func (f *fixture) send(t *testing.T, msg tea.Msg) Model {
	t.Helper()
	m, _ := f.model.Update(msg)
	f.model = m
	return m
}

func (f *fixture) press(t *testing.T, k string) tea.Cmd {
	t.Helper()
	m, cmd := f.model.Update(keyMsg(k))
	f.model = m
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

var errBoom = errors.New("boom")
