package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CrestNiraj12/chirpterm/domain"
)

const authTimeout = 15 * time.Second

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a token and stores it through store.
func Login(ctx context.Context, baseURL, username, password string, store *FileTokenProvider) error {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	token, err := requestToken(ctx, baseURL, username, password)
	if err != nil {
		return err
	}
	return store.Save(token)
}

// Logout forgets the stored token.
func Logout(store *FileTokenProvider) error {
	return store.Remove()
}

func requestToken(ctx context.Context, baseURL, username, password string) (string, error) {
	raw, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/auth/login", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: authTimeout}).Do(req)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("reading login response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("logging in: %w", domain.ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("login failed: %d %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out loginResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parsing login response: %w", err)
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	if token == "" {
		return "", errors.New("login response did not include a token")
	}
	return token, nil
}

// ValidateToken asks the server whether token is still accepted.
func ValidateToken(ctx context.Context, baseURL, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/auth/me", nil)
	if err != nil {
		return false, fmt.Errorf("creating token validation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := (&http.Client{Timeout: authTimeout}).Do(req)
	if err != nil {
		return false, fmt.Errorf("validating token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("token validation failed: %d %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return true, nil
}
