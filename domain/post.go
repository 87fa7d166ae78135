package domain

import "time"

// DefaultAvatarURL is used when a payload carries no usable avatar.
const DefaultAvatarURL = "https://chirp.social/static/default-avatar.png"

// MaxReplyLength is the longest reply body accepted, in runes.
const MaxReplyLength = 280

// Author identifies who wrote a post.
type Author struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	Verified    bool // Premium/verified badge
}

// Post is a thread root or a reply after normalization.
type Post struct {
	ID            string
	ThreadID      string
	ParentReplyID string // Set only for nested replies
	Author        Author
	Content       string
	CreatedAt     time.Time
	Attachments   []string

	LikesCount     int
	RepliesCount   int
	RepostsCount   int
	BookmarksCount int
	ViewsCount     int

	Liked      bool
	Bookmarked bool

	// Partial is true when the payload lacked an id or an author and
	// placeholders were filled in.
	Partial bool
}

// InteractionKind is a viewer-relative toggle on a post.
type InteractionKind int

const (
	Like InteractionKind = iota
	Bookmark
)

func (k InteractionKind) String() string {
	switch k {
	case Like:
		return "like"
	case Bookmark:
		return "bookmark"
	default:
		return "unknown"
	}
}

// Active reports the viewer flag for kind.
func (p Post) Active(kind InteractionKind) bool {
	switch kind {
	case Like:
		return p.Liked
	case Bookmark:
		return p.Bookmarked
	}
	return false
}

// SetActive flips the viewer flag for kind and moves the matching counter
// by one. Counters never drop below zero. It is a no-op when the flag
// already has the requested value.
func (p *Post) SetActive(kind InteractionKind, active bool) {
	if p.Active(kind) == active {
		return
	}
	delta := 1
	if !active {
		delta = -1
	}
	switch kind {
	case Like:
		p.Liked = active
		p.LikesCount = clampCount(p.LikesCount + delta)
	case Bookmark:
		p.Bookmarked = active
		p.BookmarksCount = clampCount(p.BookmarksCount + delta)
	}
}

// AddReplies moves the reply counter by delta, clamped at zero.
func (p *Post) AddReplies(delta int) {
	p.RepliesCount = clampCount(p.RepliesCount + delta)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
