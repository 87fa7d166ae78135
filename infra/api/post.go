package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
)

// postService implements app.PostService over the REST API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by client.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type replyBody struct {
	Content       string   `json:"content"`
	ParentReplyID string   `json:"parent_reply_id,omitempty"`
	Attachments   []string `json:"attachments,omitempty"`
}

func (s *postService) SubmitReply(ctx context.Context, req app.ReplyRequest) (domain.Payload, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.ErrEmptyReply
	}
	if req.ThreadID == "" {
		return nil, errors.New("submitting reply: missing thread id")
	}

	body := replyBody{Content: content, ParentReplyID: req.ParentReplyID, Attachments: req.Attachments}
	data, err := s.client.PostJSON(ctx, "/api/threads/"+url.PathEscape(req.ThreadID)+"/replies", body)
	if err != nil {
		return nil, fmt.Errorf("submitting reply: %w", err)
	}
	p, err := decodeObject(data, "reply", "data")
	if err != nil {
		return nil, fmt.Errorf("submitting reply: %w", err)
	}
	return p, nil
}

func (s *postService) Like(ctx context.Context, id string) error {
	return s.toggle(ctx, id, "like", true)
}

func (s *postService) Unlike(ctx context.Context, id string) error {
	return s.toggle(ctx, id, "like", false)
}

func (s *postService) Bookmark(ctx context.Context, id string) error {
	return s.toggle(ctx, id, "bookmark", true)
}

func (s *postService) Unbookmark(ctx context.Context, id string) error {
	return s.toggle(ctx, id, "bookmark", false)
}

func (s *postService) toggle(ctx context.Context, id, action string, on bool) error {
	path := "/api/posts/" + url.PathEscape(id) + "/" + action
	var err error
	if on {
		_, err = s.client.PostJSON(ctx, path, nil)
	} else {
		_, err = s.client.Delete(ctx, path)
	}
	if err != nil {
		verb := action
		if !on {
			verb = "un" + action
		}
		return fmt.Errorf("%s %s: %w", verb, id, err)
	}
	return nil
}
