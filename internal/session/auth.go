package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
)

// loginResponse is the auth endpoint's reply: the token rides in the
// message field.
type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a session at POST /auth/login.
//
// The returned session is NOT persisted: callers sequence the writes
// themselves (clear the old session, log in, then store the new one)
// so a failed login never leaves a half-written session behind.
func (s *Store) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	var resp loginResponse
	if err := s.postJSON(ctx, "/auth/login", credentials, &resp); err != nil {
		return models.Session{}, err
	}

	s.logger.Info("login succeeded", "username", resp.Username)

	return models.Session{
		Token:    resp.Message,
		Username: resp.Username,
		Email:    credentials.Email,
		Expired:  false,
	}, nil
}

// CreateUser registers a new account at POST /auth/create.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	if err := s.postJSON(ctx, "/auth/create", user, nil); err != nil {
		return err
	}
	s.logger.Info("user created", "email", user.Email)
	return nil
}

// postJSON posts the payload to an auth endpoint and decodes a 2xx body
// into result. A transport failure maps to the fixed unreachable-server
// error; a 4xx/5xx maps to an [shared.APIError] carrying the server's
// message verbatim.
func (s *Store) postJSON(ctx context.Context, path string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &shared.APIError{Status: resp.StatusCode, Message: errResp.Message}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
