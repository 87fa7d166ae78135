// Package thread holds the reply tree of a single thread detail view and
// the controller that loads and mutates it.
package thread

import (
	"slices"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind int

const (
	ChangeRoot ChangeKind = iota
	ChangeCleared
	ChangeReplies
	ChangeNested
	ChangeInserted
	ChangeInteraction
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRoot:
		return "root"
	case ChangeCleared:
		return "cleared"
	case ChangeReplies:
		return "replies"
	case ChangeNested:
		return "nested"
	case ChangeInserted:
		return "inserted"
	case ChangeInteraction:
		return "interaction"
	default:
		return "unknown"
	}
}

// Change describes one mutation of a Tree.
type Change struct {
	Kind     ChangeKind
	PostID   string
	ParentID string
}

// Level is the depth of a post inside the tree.
type Level int

const (
	LevelRoot Level = iota
	LevelReply
	LevelNested
)

// Location tells where Find located a post. ParentID is set for nested
// replies only.
type Location struct {
	Level    Level
	ParentID string
}

// View is the read side of a Tree. Every method returns copies.
type View interface {
	Root() (domain.Post, bool)
	Replies() []domain.Post
	Nested(parentID string) []domain.Post
	HasNested(parentID string) bool
	Find(id string) (domain.Post, Location, bool)
	Len() int
	Version() uint64
	Subscribe(fn func(Change)) (unsubscribe func())
}

type subscriber struct {
	id int
	fn func(Change)
}

// Tree is a two-level reply tree: a root, its first-level replies, and the
// nested replies of each first-level reply keyed by that reply's id.
//
// Tree is not safe for concurrent use. All mutations are expected to run on
// the UI goroutine.
type Tree struct {
	root    *domain.Post
	replies []domain.Post
	nested  map[string][]domain.Post

	version uint64
	subs    []subscriber
	nextSub int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nested: make(map[string][]domain.Post)}
}

// Subscribe registers fn to be called synchronously after every mutation.
// The returned function removes the subscription.
func (t *Tree) Subscribe(fn func(Change)) (unsubscribe func()) {
	t.nextSub++
	id := t.nextSub
	t.subs = append(t.subs, subscriber{id: id, fn: fn})
	return func() {
		t.subs = slices.DeleteFunc(t.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Version increases by one with every mutation.
func (t *Tree) Version() uint64 { return t.version }

func (t *Tree) changed(c Change) {
	t.version++
	for _, s := range slices.Clone(t.subs) {
		s.fn(c)
	}
}

// SetRoot replaces the root post. Replies and nested replies are dropped
// only when the new root has a different id than the current one, so the
// same thread reloaded keeps its replies until they are replaced.
func (t *Tree) SetRoot(post domain.Post) {
	if t.root == nil || t.root.ID != post.ID {
		t.replies = nil
		clear(t.nested)
	}
	p := clonePost(post)
	t.root = &p
	t.changed(Change{Kind: ChangeRoot, PostID: post.ID})
}

// Clear empties the tree, root included.
func (t *Tree) Clear() {
	t.root = nil
	t.replies = nil
	clear(t.nested)
	t.changed(Change{Kind: ChangeCleared})
}

// SetFirstLevelReplies replaces the first-level replies, keeping the given
// order. Nested sequences whose parent is no longer present are removed.
func (t *Tree) SetFirstLevelReplies(list []domain.Post) {
	t.replies = clonePosts(list)
	for parentID := range t.nested {
		if t.replyIndex(parentID) < 0 {
			delete(t.nested, parentID)
		}
	}
	t.changed(Change{Kind: ChangeReplies})
}

// SetNestedReplies stores list as the nested replies of the first-level
// reply parentID, replacing any previous sequence. It reports false and
// changes nothing when parentID is not a first-level reply.
func (t *Tree) SetNestedReplies(parentID string, list []domain.Post) bool {
	if t.replyIndex(parentID) < 0 {
		return false
	}
	t.nested[parentID] = clonePosts(list)
	t.changed(Change{Kind: ChangeNested, ParentID: parentID})
	return true
}

// InsertReply prepends a freshly composed reply. With an empty parentID the
// post becomes the first first-level reply and the root's reply count goes
// up by one. Otherwise it is prepended to the nested replies of parentID
// and that reply's count goes up by one. An unknown parent, a missing root
// or an id already in the tree leaves the tree untouched and returns false.
func (t *Tree) InsertReply(post domain.Post, parentID string) bool {
	if t.root == nil {
		return false
	}
	if _, _, exists := t.Find(post.ID); exists && post.ID != "" {
		return false
	}
	p := clonePost(post)
	if p.ThreadID == "" {
		p.ThreadID = t.root.ID
	}

	if parentID == "" {
		t.replies = slices.Insert(t.replies, 0, p)
		t.root.AddReplies(1)
		t.changed(Change{Kind: ChangeInserted, PostID: p.ID})
		return true
	}

	i := t.replyIndex(parentID)
	if i < 0 {
		return false
	}
	if p.ParentReplyID == "" {
		p.ParentReplyID = parentID
	}
	t.nested[parentID] = slices.Insert(t.nested[parentID], 0, p)
	t.replies[i].AddReplies(1)
	t.changed(Change{Kind: ChangeInserted, PostID: p.ID, ParentID: parentID})
	return true
}

// SetInteraction sets the like or bookmark flag of the post with the given
// id and moves the matching counter when the flag actually changes. The
// root is searched first, then first-level replies, then nested replies.
// It reports whether the post was found.
func (t *Tree) SetInteraction(postID string, kind domain.InteractionKind, active bool) bool {
	p, loc, ok := t.lookup(postID)
	if !ok {
		return false
	}
	if p.Active(kind) == active {
		return true
	}
	p.SetActive(kind, active)
	t.changed(Change{Kind: ChangeInteraction, PostID: postID, ParentID: loc.ParentID})
	return true
}

// Root returns a copy of the root post.
func (t *Tree) Root() (domain.Post, bool) {
	if t.root == nil {
		return domain.Post{}, false
	}
	return clonePost(*t.root), true
}

// Replies returns a copy of the first-level replies in display order.
func (t *Tree) Replies() []domain.Post {
	return clonePosts(t.replies)
}

// Nested returns a copy of the nested replies under parentID.
func (t *Tree) Nested(parentID string) []domain.Post {
	return clonePosts(t.nested[parentID])
}

// HasNested reports whether nested replies were stored for parentID, even
// an empty sequence.
func (t *Tree) HasNested(parentID string) bool {
	_, ok := t.nested[parentID]
	return ok
}

// Find returns a copy of the post with the given id and where it sits.
func (t *Tree) Find(id string) (domain.Post, Location, bool) {
	p, loc, ok := t.lookup(id)
	if !ok {
		return domain.Post{}, Location{}, false
	}
	return clonePost(*p), loc, true
}

// Len counts every post in the tree, root included.
func (t *Tree) Len() int {
	n := len(t.replies)
	if t.root != nil {
		n++
	}
	for _, list := range t.nested {
		n += len(list)
	}
	return n
}

func (t *Tree) lookup(id string) (*domain.Post, Location, bool) {
	if id == "" {
		return nil, Location{}, false
	}
	if t.root != nil && t.root.ID == id {
		return t.root, Location{Level: LevelRoot}, true
	}
	if i := t.replyIndex(id); i >= 0 {
		return &t.replies[i], Location{Level: LevelReply}, true
	}
	// Walk nested sequences in first-level order so the first match is stable.
	for _, parent := range t.replies {
		list := t.nested[parent.ID]
		for i := range list {
			if list[i].ID == id {
				return &list[i], Location{Level: LevelNested, ParentID: parent.ID}, true
			}
		}
	}
	return nil, Location{}, false
}

func (t *Tree) replyIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(t.replies, func(p domain.Post) bool { return p.ID == id })
}

func clonePost(p domain.Post) domain.Post {
	p.Attachments = slices.Clone(p.Attachments)
	return p
}

func clonePosts(list []domain.Post) []domain.Post {
	if list == nil {
		return nil
	}
	out := make([]domain.Post, len(list))
	for i, p := range list {
		out[i] = clonePost(p)
	}
	return out
}
