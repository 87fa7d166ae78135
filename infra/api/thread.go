package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// threadService implements app.ThreadService over the REST API.
type threadService struct {
	client *Client
}

// NewThreadService creates a ThreadService backed by client.
func NewThreadService(client *Client) *threadService {
	return &threadService{client: client}
}

func (s *threadService) GetThread(ctx context.Context, id string) (domain.Payload, error) {
	if id == "" {
		return nil, fmt.Errorf("fetching thread: %w", domain.ErrNotFound)
	}
	data, err := s.client.Get(ctx, "/api/threads/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("fetching thread %s: %w", id, err)
	}
	p, err := decodeObject(data, "thread", "data", "tweet")
	if err != nil {
		return nil, fmt.Errorf("fetching thread %s: %w", id, err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("fetching thread %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *threadService) GetThreadReplies(ctx context.Context, id string) ([]domain.Payload, error) {
	data, err := s.client.Get(ctx, "/api/threads/"+url.PathEscape(id)+"/replies")
	if err != nil {
		return nil, fmt.Errorf("fetching replies of %s: %w", id, err)
	}
	list, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("fetching replies of %s: %w", id, err)
	}
	return list, nil
}

func (s *threadService) GetReplyReplies(ctx context.Context, replyID string) ([]domain.Payload, error) {
	data, err := s.client.Get(ctx, "/api/replies/"+url.PathEscape(replyID)+"/replies")
	if err != nil {
		return nil, fmt.Errorf("fetching replies of reply %s: %w", replyID, err)
	}
	list, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("fetching replies of reply %s: %w", replyID, err)
	}
	return list, nil
}
