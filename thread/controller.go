package thread

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
)

// State is the load state of a thread view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateNotFound:
		return "not_found"
	default:
		return "idle"
	}
}

// Interaction is an optimistic like or bookmark awaiting confirmation.
type Interaction struct {
	PostID string
	Kind   domain.InteractionKind
	Active bool
	Token  uint64
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Threads          app.ThreadService
	Posts            app.PostService
	Session          app.Session
	Notifier         app.Notifier
	Logger           *zap.Logger
	NestedFetchLimit int
}

// Controller owns the reply tree of one thread view. Methods that mutate
// the tree must be called from the UI goroutine; Fetch, SubmitReply and
// ConfirmInteraction only use the services and may run elsewhere.
type Controller struct {
	threadID string
	tree     *Tree
	pending  *Pending
	loader   *Loader

	posts   app.PostService
	session app.Session
	notify  app.Notifier
	log     *zap.Logger

	state  State
	seq    int
	scope  context.Context
	cancel context.CancelFunc
}

// NewController creates a controller for threadID in StateIdle.
func NewController(threadID string, deps Deps) *Controller {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	notify := deps.Notifier
	if notify == nil {
		notify = app.NotifierFunc(func(app.ToastKind, string) {})
	}
	return &Controller{
		threadID: threadID,
		tree:     NewTree(),
		pending:  NewPending(),
		loader:   NewLoader(deps.Threads, deps.NestedFetchLimit, log),
		posts:    deps.Posts,
		session:  deps.Session,
		notify:   notify,
		log:      log.With(zap.String("thread_id", threadID)),
	}
}

// ThreadID is the id of the thread this controller shows.
func (c *Controller) ThreadID() string { return c.threadID }

// State is the current load state.
func (c *Controller) State() State { return c.state }

// Tree exposes the reply tree read-only.
func (c *Controller) Tree() View { return c.tree }

// Seq is the sequence number of the latest load.
func (c *Controller) Seq() int { return c.seq }

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.log.Debug("thread state", zap.Stringer("from", c.state), zap.Stringer("to", s))
	c.state = s
}

// Begin starts a new load scope, cancelling the previous one. Results
// carrying an older sequence number are dropped by Apply. Unconfirmed likes
// and bookmarks stay pending across the reload.
func (c *Controller) Begin(parent context.Context) (context.Context, int) {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.scope, c.cancel = context.WithCancel(parent)
	c.setState(StateLoading)
	return c.scope, c.seq
}

// Fetch runs the load sequence without touching the tree.
func (c *Controller) Fetch(ctx context.Context) LoadResult {
	return c.loader.Load(ctx, c.threadID)
}

// Apply stores res in the tree when seq is the active load. It reports
// false for stale, cancelled or foreign results.
func (c *Controller) Apply(seq int, res LoadResult) bool {
	if seq != c.seq || c.scope == nil || c.scope.Err() != nil || res.ThreadID != c.threadID {
		c.log.Debug("dropping load result", zap.Int("seq", seq), zap.Int("active_seq", c.seq))
		return false
	}
	c.cancel()
	c.scope, c.cancel = nil, nil

	switch {
	case res.RootErr != nil:
		c.tree.Clear()
		c.setState(StateNotFound)
		c.notify.Notify(app.ToastError, "Could not load thread")
		return true
	case res.NotFound || res.Root == nil:
		c.tree.Clear()
		c.setState(StateNotFound)
		return true
	}

	c.tree.SetRoot(*res.Root)
	c.tree.SetFirstLevelReplies(res.Replies)
	for _, r := range res.Replies {
		if list, ok := res.Nested[r.ID]; ok {
			c.tree.SetNestedReplies(r.ID, list)
		}
	}
	// Loaded data may predate an in-flight confirmation.
	c.pending.Each(func(postID string, kind domain.InteractionKind, active bool) {
		c.tree.SetInteraction(postID, kind, active)
	})
	c.setState(StateLoaded)
	if res.Failed() {
		c.notify.Notify(app.ToastWarning, "Some replies could not be loaded")
	}
	return true
}

// Load runs a whole load synchronously and returns the resulting state.
func (c *Controller) Load(ctx context.Context) State {
	scope, seq := c.Begin(ctx)
	c.Apply(seq, c.Fetch(scope))
	return c.state
}

// Teardown cancels the active load. Later results are dropped.
func (c *Controller) Teardown() {
	if c.cancel != nil {
		c.cancel()
	}
	c.scope, c.cancel = nil, nil
	c.pending.Reset()
}

func (c *Controller) requireAuth(action string) error {
	if c.session != nil && c.session.IsAuthenticated() {
		return nil
	}
	c.notify.Notify(app.ToastWarning, "Sign in to "+action)
	return domain.ErrAuthRequired
}

// ReplyTo resolves the reply context for targetID. Replies to nested
// replies are attached to their first-level parent and keep the target's
// username for a mention.
func (c *Controller) ReplyTo(targetID string) (Draft, error) {
	if err := c.requireAuth("reply"); err != nil {
		return Draft{}, err
	}
	post, loc, ok := c.tree.Find(targetID)
	if !ok {
		return Draft{}, fmt.Errorf("reply target %s: %w", targetID, domain.ErrNotFound)
	}

	d := Draft{
		LocalID:        uuid.NewString(),
		ThreadID:       c.threadID,
		TargetID:       post.ID,
		TargetUsername: post.Author.Username,
	}
	switch loc.Level {
	case LevelReply:
		d.ParentReplyID = post.ID
	case LevelNested:
		d.ParentReplyID = loc.ParentID
	}
	return d, nil
}

// SubmitReply validates and publishes d.
func (c *Controller) SubmitReply(ctx context.Context, d Draft) (domain.Payload, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if c.posts == nil {
		return nil, errors.New("no post service configured")
	}
	payload, err := c.posts.SubmitReply(ctx, d.Request())
	if err != nil {
		return nil, fmt.Errorf("submitting reply: %w", err)
	}
	return payload, nil
}

// ReplySubmitted inserts the published reply into the tree.
func (c *Controller) ReplySubmitted(d Draft, payload domain.Payload) domain.Post {
	post := domain.NormalizePost(payload)
	if post.ID == "" {
		post.ID = d.LocalID
	}
	if post.Content == "" {
		post.Content = d.Request().Content
	}
	if !c.tree.InsertReply(post, d.ParentReplyID) {
		c.log.Debug("reply not inserted", zap.String("reply_id", post.ID), zap.String("parent_id", d.ParentReplyID))
	}
	c.notify.Notify(app.ToastSuccess, "Reply posted")
	return post
}

// ReplyFailed reports a failed submission.
func (c *Controller) ReplyFailed(err error) {
	c.log.Warn("reply failed", zap.Error(err))
	c.notify.Notify(app.ToastError, replyErrorMessage(err))
}

func replyErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyReply):
		return "Reply cannot be empty"
	case errors.Is(err, domain.ErrReplyTooLong):
		return fmt.Sprintf("Reply is longer than %d characters", domain.MaxReplyLength)
	case domain.IsAuth(err):
		return "Session expired, sign in again"
	default:
		return "Could not post reply"
	}
}

// Toggle flips kind on postID optimistically and returns the intent to
// confirm with ConfirmInteraction.
func (c *Controller) Toggle(postID string, kind domain.InteractionKind) (Interaction, error) {
	if err := c.requireAuth(kind.String() + " posts"); err != nil {
		return Interaction{}, err
	}
	post, _, ok := c.tree.Find(postID)
	if !ok {
		return Interaction{}, fmt.Errorf("%s %s: %w", kind, postID, domain.ErrNotFound)
	}
	prev := post.Active(kind)
	c.tree.SetInteraction(postID, kind, !prev)
	token := c.pending.Begin(postID, kind, prev)
	return Interaction{PostID: postID, Kind: kind, Active: !prev, Token: token}, nil
}

// ConfirmInteraction sends in to the server.
func (c *Controller) ConfirmInteraction(ctx context.Context, in Interaction) error {
	if c.posts == nil {
		return errors.New("no post service configured")
	}
	var err error
	switch {
	case in.Kind == domain.Like && in.Active:
		err = c.posts.Like(ctx, in.PostID)
	case in.Kind == domain.Like:
		err = c.posts.Unlike(ctx, in.PostID)
	case in.Kind == domain.Bookmark && in.Active:
		err = c.posts.Bookmark(ctx, in.PostID)
	default:
		err = c.posts.Unbookmark(ctx, in.PostID)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", in.Kind, in.PostID, err)
	}
	return nil
}

// InteractionSettled reconciles the server answer for in. A failure of the
// latest intent restores the previous flag and counter and reports true.
func (c *Controller) InteractionSettled(in Interaction, err error) bool {
	revert, prev := c.pending.Settle(in.PostID, in.Kind, in.Token, err)
	if !revert {
		return false
	}
	c.log.Warn("interaction failed", zap.String("post_id", in.PostID), zap.Stringer("kind", in.Kind), zap.Error(err))
	c.tree.SetInteraction(in.PostID, in.Kind, prev)
	c.notify.Notify(app.ToastError, fmt.Sprintf("Could not update %s", in.Kind))
	return true
}

// IsPending reports whether a like or bookmark on postID is unconfirmed.
func (c *Controller) IsPending(postID string, kind domain.InteractionKind) bool {
	return c.pending.IsPending(postID, kind)
}
