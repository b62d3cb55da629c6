// package session owns the authentication token, user identity, and
// expiry flag for the running client.
//
// The session lives in durable key/value storage (a SQLite table) under
// four independent keys, mirroring the service contract: each key is
// readable and writable on its own, no cross-key atomicity is required,
// and every write is visible to subsequent reads immediately. The store
// doubles as an [oauth2.TokenSource] so the catalog client's transport
// reads the current token on every request.
package session

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/oauth2"

	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
)

// Storage keys. expiredToken holds "1"/"0" so the flag survives as a
// plain string like the other keys.
const (
	keyToken     = "token"
	keyUsername  = "username"
	keyUserEmail = "userEmail"
	keyExpired   = "expiredToken"
)

var _ oauth2.TokenSource = (*Store)(nil)

// Store is the process-wide session store.
type Store struct {
	db         *sql.DB
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Open opens (or creates) the session database at the specified path.
// The path can be ":memory:" for an in-memory store.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS session_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	return db, nil
}

// NewStore creates a session store backed by the given database, talking
// to the auth endpoints under baseURL.
func NewStore(db *sql.DB, baseURL string, client *http.Client, logger *log.Logger) *Store {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Store{
		db:         db,
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

func (s *Store) get(key string) string {
	var value string
	err := s.db.QueryRow("SELECT value FROM session_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		s.logger.Errorf("failed to read session key %s: %v", key, err)
		return ""
	}
	return value
}

func (s *Store) set(key, value string) error {
	query := `
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

// GetToken returns the stored token, empty when logged out.
func (s *Store) GetToken() string { return s.get(keyToken) }

// SetToken overwrites the stored token.
func (s *Store) SetToken(token string) error { return s.set(keyToken, token) }

// GetUsername returns the stored display name.
func (s *Store) GetUsername() string { return s.get(keyUsername) }

// SetUsername overwrites the stored display name.
func (s *Store) SetUsername(username string) error { return s.set(keyUsername, username) }

// GetUserEmail returns the stored account email.
func (s *Store) GetUserEmail() string { return s.get(keyUserEmail) }

// SetUserEmail overwrites the stored account email.
func (s *Store) SetUserEmail(email string) error { return s.set(keyUserEmail, email) }

// IsExpired reports whether the session was marked expired.
func (s *Store) IsExpired() bool { return s.get(keyExpired) == "1" }

// SetExpired overwrites the expiry flag.
func (s *Store) SetExpired(expired bool) error {
	value := "0"
	if expired {
		value = "1"
	}
	return s.set(keyExpired, value)
}

// IsAuthenticated reports whether the client holds a usable session:
// a non-empty token that has not been marked expired.
func (s *Store) IsAuthenticated() bool {
	return s.GetToken() != "" && !s.IsExpired()
}

// Current returns a snapshot of the stored session.
func (s *Store) Current() models.Session {
	return models.Session{
		Token:    s.GetToken(),
		Username: s.GetUsername(),
		Email:    s.GetUserEmail(),
		Expired:  s.IsExpired(),
	}
}

// Logout clears token, username, and email, then marks the session
// expired, in that order. Always succeeds and is safe to call when
// already logged out; individual write failures are logged and the
// remaining writes still run.
func (s *Store) Logout() {
	for _, write := range []func() error{
		func() error { return s.SetToken("") },
		func() error { return s.SetUsername("") },
		func() error { return s.SetUserEmail("") },
		func() error { return s.SetExpired(true) },
	} {
		if err := write(); err != nil {
			s.logger.Errorf("logout write failed: %v", err)
		}
	}
}

// Token implements [oauth2.TokenSource] over the durable token key, so
// a transport built on this store picks up token changes per request.
func (s *Store) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.GetToken()}, nil
}

// HTTPClient builds an [http.Client] whose transport injects the stored
// bearer token into every request. The base transport defaults to
// [http.DefaultTransport].
func (s *Store) HTTPClient(base http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{Source: s, Base: base},
	}
}
