package common

import "github.com/CrestNiraj12/chirpterm/app"

// Toast is one transient notification.
type Toast struct {
	ID      int
	Kind    app.ToastKind
	Message string
}

// ToastQueue collects notifications raised during an update. It implements
// app.Notifier and is drained by the root model after every message.
type ToastQueue struct {
	nextID  int
	pending []Toast
}

// NewToastQueue returns an empty queue.
func NewToastQueue() *ToastQueue {
	return &ToastQueue{}
}

func (q *ToastQueue) Notify(kind app.ToastKind, message string) {
	q.nextID++
	q.pending = append(q.pending, Toast{ID: q.nextID, Kind: kind, Message: message})
}

// Drain returns and clears the queued toasts, oldest first.
func (q *ToastQueue) Drain() []Toast {
	out := q.pending
	q.pending = nil
	return out
}

// RenderToast formats t with the style matching its kind.
func RenderToast(s Styles, t Toast) string {
	switch t.Kind {
	case app.ToastSuccess:
		return s.Success.Render("✓ " + t.Message)
	case app.ToastWarning:
		return s.Warning.Render("! " + t.Message)
	case app.ToastError:
		return s.Error.Render("✗ " + t.Message)
	default:
		return s.Metadata.Render(t.Message)
	}
}
