package thread

import "github.com/CrestNiraj12/chirpterm/domain"

type pendingKey struct {
	postID string
	kind   domain.InteractionKind
}

type pendingEntry struct {
	token uint64
	prev  bool
}

// Pending tracks optimistic interactions awaiting server confirmation.
// Only the latest intent per post and kind counts; confirmations of
// superseded intents are ignored.
type Pending struct {
	next    uint64
	entries map[pendingKey]pendingEntry
}

// NewPending returns an empty tracker.
func NewPending() *Pending {
	return &Pending{entries: make(map[pendingKey]pendingEntry)}
}

// Begin records a new intent and returns its token. prev is the flag value
// before the optimistic update, restored if this intent fails.
func (p *Pending) Begin(postID string, kind domain.InteractionKind, prev bool) uint64 {
	p.next++
	p.entries[pendingKey{postID, kind}] = pendingEntry{token: p.next, prev: prev}
	return p.next
}

// Settle resolves the intent identified by token. It returns revert=true
// with the flag value to restore when the intent is the latest one and err
// is non-nil. Superseded tokens return revert=false and leave the newer
// intent pending.
func (p *Pending) Settle(postID string, kind domain.InteractionKind, token uint64, err error) (revert bool, prev bool) {
	key := pendingKey{postID, kind}
	e, ok := p.entries[key]
	if !ok || e.token != token {
		return false, false
	}
	delete(p.entries, key)
	if err != nil {
		return true, e.prev
	}
	return false, false
}

// IsPending reports whether an intent for postID and kind is unconfirmed.
func (p *Pending) IsPending(postID string, kind domain.InteractionKind) bool {
	_, ok := p.entries[pendingKey{postID, kind}]
	return ok
}

// Each calls fn with the optimistic flag value of every pending intent.
func (p *Pending) Each(fn func(postID string, kind domain.InteractionKind, active bool)) {
	for k, e := range p.entries {
		fn(k.postID, k.kind, !e.prev)
	}
}

// Len is the number of unconfirmed intents.
func (p *Pending) Len() int { return len(p.entries) }

// Reset forgets every pending intent.
func (p *Pending) Reset() {
	clear(p.entries)
}
