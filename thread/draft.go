package thread

import (
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
)

// Draft is a reply being composed.
type Draft struct {
	LocalID        string
	ThreadID       string
	ParentReplyID  string // Empty when replying to the root
	TargetID       string // Post the user pressed reply on
	TargetUsername string
	Content        string
	Attachments    []string
}

// IsNestedTarget reports whether the draft answers a nested reply and was
// re-parented onto its first-level ancestor.
func (d Draft) IsNestedTarget() bool {
	return d.ParentReplyID != "" && d.TargetID != d.ParentReplyID
}

// Mention returns the "@user " prefix used to keep the conversational
// context of a re-parented reply, or "" when none is needed.
func (d Draft) Mention() string {
	if !d.IsNestedTarget() || d.TargetUsername == "" {
		return ""
	}
	return "@" + d.TargetUsername + " "
}

// Validate checks the trimmed content against the reply limits.
func (d Draft) Validate() error {
	content := strings.TrimSpace(d.Content)
	if content == "" {
		return domain.ErrEmptyReply
	}
	if utf8.RuneCountInString(content) > domain.MaxReplyLength {
		return domain.ErrReplyTooLong
	}
	return nil
}

// Request converts the draft into a publish request.
func (d Draft) Request() app.ReplyRequest {
	return app.ReplyRequest{
		ThreadID:      d.ThreadID,
		ParentReplyID: d.ParentReplyID,
		Content:       strings.TrimSpace(d.Content),
		Attachments:   append([]string(nil), d.Attachments...),
	}
}
