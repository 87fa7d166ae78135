package detail

import (
	"strings"
	"testing"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
)

func TestLikeIsOptimisticThenConfirmed(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)
	f.press(t, "j")

	cmd := f.press(t, "l")
	if cmd == nil {
		t.Fatalf("expected confirm command")
	}
	p, _ := f.model.Selected()
	if !p.Liked || p.LikesCount != 3 {
		t.Fatalf("expected optimistic like, got liked=%v count=%d", p.Liked, p.LikesCount)
	}
	if !strings.Contains(f.model.View(), "…") {
		t.Fatalf("expected pending marker")
	}

	f.send(t, cmd())
	p, _ = f.model.Selected()
	if !p.Liked || p.LikesCount != 3 {
		t.Fatalf("expected like kept after success")
	}
	if f.model.Controller().IsPending("R1", domain.Like) {
		t.Fatalf("expected like settled")
	}
	if got := f.posts.calls; len(got) != 1 || got[0] != "like:R1" {
		t.Fatalf("unexpected calls %v", got)
	}
}

func TestLikeFailureReverts(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)
	f.posts.err = errBoom
	f.press(t, "j")

	cmd := f.press(t, "l")
	f.send(t, cmd())

	p, _ := f.model.Selected()
	if p.Liked || p.LikesCount != 2 {
		t.Fatalf("expected like reverted, got liked=%v count=%d", p.Liked, p.LikesCount)
	}
	if got := toastsOf(f.toasts, app.ToastError); len(got) != 1 || got[0] != "Could not update like" {
		t.Fatalf("unexpected error toasts %v", got)
	}
}

func TestBookmarkRequiresAuth(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)

	if cmd := f.press(t, "b"); cmd != nil {
		t.Fatalf("expected no command when signed out")
	}
	p, _ := f.model.Selected()
	if p.Bookmarked {
		t.Fatalf("expected no optimistic change when signed out")
	}
	if got := toastsOf(f.toasts, app.ToastWarning); len(got) != 1 {
		t.Fatalf("expected one sign-in warning, got %v", got)
	}
}

func TestReplyToNestedReparentsDraft(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)
	f.press(t, "j")
	f.press(t, "j")

	cmd := f.press(t, "C")
	if cmd == nil {
		t.Fatalf("expected composer command")
	}
	msg, ok := cmd().(OpenComposerMsg)
	if !ok {
		t.Fatalf("expected OpenComposerMsg")
	}
	if !msg.Inline {
		t.Fatalf("expected inline composer")
	}
	d := msg.Draft
	if d.ThreadID != "T1" || d.ParentReplyID != "R1" || d.TargetID != "R2" || d.TargetUsername != "ava" {
		t.Fatalf("unexpected draft %+v", d)
	}
	if d.Mention() != "@ava " {
		t.Fatalf("expected mention prefill, got %q", d.Mention())
	}
}

func TestReplyToRootHasNoParent(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)

	msg := f.press(t, "c")().(OpenComposerMsg)
	if msg.Inline || msg.Draft.ParentReplyID != "" || msg.Draft.TargetID != "T1" {
		t.Fatalf("unexpected root draft %+v", msg)
	}
}

func TestReplySignedOutWarns(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)
	if cmd := f.press(t, "c"); cmd != nil {
		t.Fatalf("expected no composer when signed out")
	}
	if got := toastsOf(f.toasts, app.ToastWarning); len(got) != 1 || got[0] != "Sign in to reply" {
		t.Fatalf("unexpected warnings %v", got)
	}
}

func TestReplyResultInsertsAndSelects(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)
	f.posts.created = domain.Payload{
		"id":      "R9",
		"content": "@ava same",
		"author":  map[string]any{"username": "me"},
	}
	d := thread.Draft{LocalID: "local", ThreadID: "T1", ParentReplyID: "R1", TargetID: "R2", TargetUsername: "ava", Content: "@ava same"}

	msg := f.model.SubmitReply(d)()
	f.send(t, msg)

	p, ok := f.model.Selected()
	if !ok || p.ID != "R9" {
		t.Fatalf("expected new reply selected, got %+v", p)
	}
	nested := f.model.Controller().Tree().Nested("R1")
	if len(nested) != 2 || nested[0].ID != "R9" {
		t.Fatalf("expected R9 first under R1, got %+v", nested)
	}
	if got := toastsOf(f.toasts, app.ToastSuccess); len(got) != 1 || got[0] != "Reply posted" {
		t.Fatalf("unexpected success toasts %v", got)
	}
}

func TestReplyFailureKeepsTree(t *testing.T) {
	f := newFixture(t, sampleThreads(), true).loaded(t)
	f.posts.err = errBoom
	before := f.model.Controller().Tree().Len()

	f.send(t, f.model.SubmitReply(thread.Draft{ThreadID: "T1", Content: "hi"})())
	if got := f.model.Controller().Tree().Len(); got != before {
		t.Fatalf("expected tree unchanged, got %d posts", got)
	}
	if got := toastsOf(f.toasts, app.ToastError); len(got) != 1 || got[0] != "Could not post reply" {
		t.Fatalf("unexpected error toasts %v", got)
	}
}
