package thread

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
)

// DefaultNestedFetchLimit bounds concurrent nested reply fetches.
const DefaultNestedFetchLimit = 4

// LoadResult is everything one load fetched, normalized but not yet applied.
type LoadResult struct {
	ThreadID string

	Root     *domain.Post
	RootErr  error // Transport failure fetching the root
	NotFound bool

	Replies    []domain.Post
	RepliesErr error

	Nested     map[string][]domain.Post
	NestedErrs map[string]error
}

// Failed reports whether any reply fetch failed.
func (r LoadResult) Failed() bool {
	return r.RepliesErr != nil || len(r.NestedErrs) > 0
}

// Loader fetches and normalizes a thread. It never touches a Tree and is
// safe to call from any goroutine.
type Loader struct {
	threads app.ThreadService
	limit   int
	log     *zap.Logger
}

// NewLoader creates a Loader. A non-positive limit selects
// DefaultNestedFetchLimit; a nil logger discards output.
func NewLoader(threads app.ThreadService, limit int, log *zap.Logger) *Loader {
	if limit <= 0 {
		limit = DefaultNestedFetchLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{threads: threads, limit: limit, log: log}
}

// Load fetches the root, its first-level replies and, for every reply that
// reports children, its nested replies. Reply failures are logged and
// recorded in the result; they never stop the load.
func (l *Loader) Load(ctx context.Context, threadID string) LoadResult {
	res := LoadResult{ThreadID: threadID}

	payload, err := l.threads.GetThread(ctx, threadID)
	switch {
	case domain.IsNotFound(err):
		res.NotFound = true
		return res
	case err != nil:
		l.log.Warn("fetching thread", zap.String("thread_id", threadID), zap.Error(err))
		res.RootErr = err
		return res
	case payload == nil:
		res.NotFound = true
		return res
	}

	root := domain.NormalizePost(payload)
	if root.ID == "" {
		root.ID = threadID
	}
	res.Root = &root

	seen := map[string]struct{}{root.ID: {}}
	payloads, err := l.threads.GetThreadReplies(ctx, threadID)
	if err != nil {
		l.log.Warn("fetching replies", zap.String("thread_id", threadID), zap.Error(err))
		res.RepliesErr = err
	}
	res.Replies = uniquePosts(domain.NormalizePosts(payloads), seen)

	res.Nested, res.NestedErrs = l.loadNested(ctx, threadID, res.Replies)
	for _, r := range res.Replies {
		if list, ok := res.Nested[r.ID]; ok {
			res.Nested[r.ID] = uniquePosts(list, seen)
		}
	}
	return res
}

func (l *Loader) loadNested(ctx context.Context, threadID string, replies []domain.Post) (map[string][]domain.Post, map[string]error) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	nested := make(map[string][]domain.Post)
	errs := make(map[string]error)
	g.SetLimit(l.limit)

	for _, r := range replies {
		if r.RepliesCount <= 0 {
			continue
		}
		replyID := r.ID
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			payloads, err := l.threads.GetReplyReplies(ctx, replyID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.log.Warn("fetching nested replies",
					zap.String("thread_id", threadID),
					zap.String("reply_id", replyID),
					zap.Error(err))
				errs[replyID] = err
				return nil
			}
			posts := domain.NormalizePosts(payloads)
			for i := range posts {
				if posts[i].ParentReplyID == "" {
					posts[i].ParentReplyID = replyID
				}
			}
			nested[replyID] = posts
			return nil
		})
	}
	_ = g.Wait() // Goroutines never return errors.

	if len(errs) == 0 {
		errs = nil
	}
	return nested, errs
}

// uniquePosts drops posts without an id and posts already in seen, adding
// the survivors to seen.
func uniquePosts(posts []domain.Post, seen map[string]struct{}) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
