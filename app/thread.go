package app

import (
	"context"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// ThreadService fetches a thread and its replies from the social backend.
// Payloads are returned raw; callers normalize them with domain.NormalizePost.
type ThreadService interface {
	// GetThread returns the root post. It returns domain.ErrNotFound when
	// the thread does not exist.
	GetThread(ctx context.Context, id string) (domain.Payload, error)

	// GetThreadReplies returns the first-level replies of a thread.
	GetThreadReplies(ctx context.Context, id string) ([]domain.Payload, error)

	// GetReplyReplies returns the replies posted under a first-level reply.
	GetReplyReplies(ctx context.Context, replyID string) ([]domain.Payload, error)
}
