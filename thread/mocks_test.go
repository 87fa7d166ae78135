package thread

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
)

type mockThreadService struct {
	mock.Mock
}

func (m *mockThreadService) GetThread(ctx context.Context, id string) (domain.Payload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Payload), args.Error(1)
}

func (m *mockThreadService) GetThreadReplies(ctx context.Context, id string) ([]domain.Payload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payload), args.Error(1)
}

func (m *mockThreadService) GetReplyReplies(ctx context.Context, replyID string) ([]domain.Payload, error) {
	args := m.Called(ctx, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payload), args.Error(1)
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) SubmitReply(ctx context.Context, req app.ReplyRequest) (domain.Payload, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Payload), args.Error(1)
}

func (m *mockPostService) Like(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostService) Unlike(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostService) Bookmark(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostService) Unbookmark(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type staticSession bool

func (s staticSession) IsAuthenticated() bool { return bool(s) }

type toast struct {
	kind    app.ToastKind
	message string
}

type recordingNotifier struct {
	toasts []toast
}

func (r *recordingNotifier) Notify(kind app.ToastKind, message string) {
	r.toasts = append(r.toasts, toast{kind: kind, message: message})
}

func (r *recordingNotifier) kinds() []app.ToastKind {
	out := make([]app.ToastKind, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, t.kind)
	}
	return out
}
