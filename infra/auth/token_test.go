package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileTokenProvider_AccessToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  abc123 \n"), 0o600); err != nil {
		t.Fatalf("write token failed: %v", err)
	}

	p := NewFileTokenProvider(path)
	got, err := p.AccessToken()
	if err != nil {
		t.Fatalf("access token failed: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("unexpected token: %q", got)
	}
}

func TestFileTokenProvider_AccessTokenErrors(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "missing"))
	if _, err := p.AccessToken(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for missing file, got: %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte(" \n\t"), 0o600); err != nil {
		t.Fatalf("write empty token failed: %v", err)
	}
	p = NewFileTokenProvider(empty)
	_, err := p.AccessToken()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-token error, got: %v", err)
	}
}

func TestFileTokenProvider_SaveAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")
	p := NewFileTokenProvider(path)

	if err := p.Save("  tok \n"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
	if got, _ := p.AccessToken(); got != "tok" {
		t.Fatalf("unexpected stored token: %q", got)
	}

	if err := p.Remove(); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := p.Remove(); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if err := p.Save(" "); err == nil {
		t.Fatalf("expected empty token to be rejected")
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	dir := t.TempDir()
	p := NewFileTokenProvider(filepath.Join(dir, "token"))
	s := NewSession(p)
	if s.IsAuthenticated() {
		t.Fatalf("expected signed out without a token")
	}
	if err := p.Save("abc"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected signed in with a token")
	}

	var nilSession *Session
	if nilSession.IsAuthenticated() {
		t.Fatalf("nil session must be signed out")
	}
}
