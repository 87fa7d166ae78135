package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken means no token has been stored yet.
var ErrNoToken = errors.New("no stored token")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// Path is the token file location.
func (f *FileTokenProvider) Path() string { return f.path }

// AccessToken reads and returns the token, trimming whitespace. A missing
// file yields ErrNoToken.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, ErrNoToken)
	}

	return token, nil
}

// Save writes token with owner-only permissions.
func (f *FileTokenProvider) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Remove deletes the stored token. Removing a missing token is not an error.
func (f *FileTokenProvider) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
