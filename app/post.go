package app

import (
	"context"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// ReplyRequest is a reply ready to be published.
type ReplyRequest struct {
	ThreadID      string
	ParentReplyID string // Empty when replying to the thread root
	Content       string
	Attachments   []string
}

// PostService publishes replies and toggles viewer interactions.
type PostService interface {
	// SubmitReply publishes a reply and returns the created post.
	SubmitReply(ctx context.Context, req ReplyRequest) (domain.Payload, error)

	Like(ctx context.Context, id string) error
	Unlike(ctx context.Context, id string) error
	Bookmark(ctx context.Context, id string) error
	Unbookmark(ctx context.Context, id string) error
}
