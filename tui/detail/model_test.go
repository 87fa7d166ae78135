package detail

import (
	"strings"
	"testing"

	"github.com/CrestNiraj12/chirpterm/app"
	"github.com/CrestNiraj12/chirpterm/domain"
	"github.com/CrestNiraj12/chirpterm/thread"
)

func TestLoadRendersThreadTree(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)

	if got := f.model.Controller().State(); got != thread.StateLoaded {
		t.Fatalf("expected loaded state, got %s", got)
	}
	rows := f.model.rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	wantIDs := []string{"T1", "R1", "R2"}
	wantDepth := []int{0, 1, 2}
	for i, r := range rows {
		if r.post.ID != wantIDs[i] || r.depth != wantDepth[i] {
			t.Fatalf("row %d: expected %s@%d, got %s@%d", i, wantIDs[i], wantDepth[i], r.post.ID, r.depth)
		}
	}

	view := f.model.View()
	for _, want := range []string{"Thread T1", "root post", "Replies (1)", "first reply", "nested reply", "⬑ Reply to @lee", "@ava"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

func TestViewShowsLoadingBeforeFirstResult(t *testing.T) {
	f := newFixture(t, sampleThreads(), false)
	_ = f.model.load()
	if !strings.Contains(f.model.View(), "Loading thread...") {
		t.Fatalf("expected loading view")
	}
}

func TestNotFoundView(t *testing.T) {
	threads := sampleThreads()
	threads.rootErr = domain.ErrNotFound
	f := newFixture(t, threads, false).loaded(t)

	if got := f.model.Controller().State(); got != thread.StateNotFound {
		t.Fatalf("expected not found state, got %s", got)
	}
	if !strings.Contains(f.model.View(), "Thread not found.") {
		t.Fatalf("expected not found message")
	}
	if len(f.toasts.messages) != 0 {
		t.Fatalf("expected no toast for a missing thread, got %v", f.toasts.messages)
	}
}

func TestStaleLoadIsDropped(t *testing.T) {
	f := newFixture(t, sampleThreads(), false)
	first := f.model.load()
	second := f.press(t, "r")
	if second == nil {
		t.Fatalf("expected reload command")
	}

	f.send(t, first())
	if f.model.Controller().State() != thread.StateLoading {
		t.Fatalf("expected stale result to be dropped")
	}
	if _, ok := f.model.Selected(); ok {
		t.Fatalf("expected empty tree after stale result")
	}

	f.send(t, f.model.load()())
	if f.model.Controller().State() != thread.StateLoaded {
		t.Fatalf("expected latest result to apply")
	}
}

func TestTeardownDropsLateResult(t *testing.T) {
	f := newFixture(t, sampleThreads(), false)
	cmd := f.model.load()
	f.model.Teardown()

	f.send(t, cmd())
	if _, ok := f.model.Controller().Tree().Root(); ok {
		t.Fatalf("expected result after teardown to be dropped")
	}
}

func TestCursorMovement(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)

	f.press(t, "j")
	f.press(t, "j")
	f.press(t, "j")
	if p, _ := f.model.Selected(); p.ID != "R2" {
		t.Fatalf("expected cursor clamped on R2, got %s", p.ID)
	}
	f.press(t, "k")
	if p, _ := f.model.Selected(); p.ID != "R1" {
		t.Fatalf("expected R1, got %s", p.ID)
	}
	f.press(t, "g")
	if p, _ := f.model.Selected(); p.ID != "T1" {
		t.Fatalf("expected root after top, got %s", p.ID)
	}
}

func TestSelectionSurvivesReload(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)
	f.press(t, "j")
	f.press(t, "j")

	f.press(t, "r")
	f.send(t, f.model.load()())
	if p, _ := f.model.Selected(); p.ID != "R2" {
		t.Fatalf("expected R2 still selected, got %s", p.ID)
	}
}

func TestKeyDialogToggle(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)

	f.press(t, "?")
	if !strings.Contains(f.model.View(), "reply via editor / inline") {
		t.Fatalf("expected key dialog")
	}
	if cmd := f.press(t, "l"); cmd != nil {
		t.Fatalf("expected keys swallowed while dialog is open")
	}
	f.press(t, "esc")
	if strings.Contains(f.model.View(), "reply via editor / inline") {
		t.Fatalf("expected key dialog closed")
	}
}

func TestThemeKeyEmitsToggle(t *testing.T) {
	f := newFixture(t, sampleThreads(), false).loaded(t)
	cmd := f.press(t, "t")
	if cmd == nil {
		t.Fatalf("expected theme command")
	}
	if _, ok := cmd().(ToggleThemeMsg); !ok {
		t.Fatalf("expected ToggleThemeMsg")
	}
}

func TestIsSafeExternalURL(t *testing.T) {
	cases := map[string]bool{
		"https://cdn.example.com/a.png": true,
		"http://example.com":            true,
		"javascript:alert(1)":           false,
		"file:///etc/passwd":            false,
		"/relative/path":                false,
	}
	for raw, want := range cases {
		if got := isSafeExternalURL(raw); got != want {
			t.Fatalf("isSafeExternalURL(%q) = %v, want %v", raw, got, want)
		}
	}
	if openURLs([]string{"javascript:alert(1)", " "}) != nil {
		t.Fatalf("expected no command for unsafe urls")
	}
}

func toastsOf(l *toastLog, kind app.ToastKind) []string {
	var out []string
	for i, k := range l.kinds {
		if k == kind {
			out = append(out, l.messages[i])
		}
	}
	return out
}
