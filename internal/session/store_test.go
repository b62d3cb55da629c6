package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
	tu "github.com/vmsouza/musicctl/internal/testing"
)

func newTestStore(t *testing.T, baseURL string) *Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, baseURL, nil, nil)
}

func TestStore(t *testing.T) {
	t.Run("Keys Are Independently Readable And Writable", func(t *testing.T) {
		s := newTestStore(t, "")

		if err := s.SetToken("abc"); err != nil {
			t.Fatalf("SetToken: %v", err)
		}
		if err := s.SetUsername("vin"); err != nil {
			t.Fatalf("SetUsername: %v", err)
		}

		if s.GetToken() != "abc" {
			t.Errorf("expected token abc, got %q", s.GetToken())
		}
		if s.GetUsername() != "vin" {
			t.Errorf("expected username vin, got %q", s.GetUsername())
		}
		if s.GetUserEmail() != "" {
			t.Errorf("unwritten key should read empty, got %q", s.GetUserEmail())
		}
	})

	t.Run("Writes Are Immediately Visible And Idempotent", func(t *testing.T) {
		s := newTestStore(t, "")

		for range 2 {
			if err := s.SetToken("same"); err != nil {
				t.Fatalf("SetToken: %v", err)
			}
		}
		if s.GetToken() != "same" {
			t.Errorf("expected token same, got %q", s.GetToken())
		}
	})

	t.Run("IsAuthenticated", func(t *testing.T) {
		s := newTestStore(t, "")

		if s.IsAuthenticated() {
			t.Error("fresh store should not be authenticated")
		}

		s.SetToken("abc")
		s.SetExpired(false)
		if !s.IsAuthenticated() {
			t.Error("token present and not expired should be authenticated")
		}

		s.SetExpired(true)
		if s.IsAuthenticated() {
			t.Error("expired session should not be authenticated")
		}

		s.SetExpired(false)
		s.SetToken("")
		if s.IsAuthenticated() {
			t.Error("empty token should not be authenticated")
		}
	})

	t.Run("Logout", func(t *testing.T) {
		s := newTestStore(t, "")
		s.SetToken("abc")
		s.SetUsername("vin")
		s.SetUserEmail("vin@b.co")
		s.SetExpired(false)

		s.Logout()

		if s.GetToken() != "" {
			t.Errorf("expected empty token after logout, got %q", s.GetToken())
		}
		if s.GetUsername() != "" || s.GetUserEmail() != "" {
			t.Error("expected identity cleared after logout")
		}
		if !s.IsExpired() {
			t.Error("expected expired flag set after logout")
		}
		if s.IsAuthenticated() {
			t.Error("expected unauthenticated after logout")
		}

		// safe when already logged out
		s.Logout()
		if s.IsAuthenticated() {
			t.Error("second logout should be a no-op")
		}
	})

	t.Run("Current Snapshot", func(t *testing.T) {
		s := newTestStore(t, "")
		s.SetToken("abc")
		s.SetUsername("vin")
		s.SetUserEmail("vin@b.co")
		s.SetExpired(false)

		got := s.Current()
		want := models.Session{Token: "abc", Username: "vin", Email: "vin@b.co"}
		if got != want {
			t.Errorf("unexpected snapshot %+v", got)
		}
		if !got.Authenticated() {
			t.Error("snapshot should be authenticated")
		}
	})

	t.Run("Token Source Reads Current Token", func(t *testing.T) {
		s := newTestStore(t, "")
		s.SetToken("first")

		tok, err := s.Token()
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
		if tok.AccessToken != "first" {
			t.Errorf("expected first, got %q", tok.AccessToken)
		}

		s.SetToken("second")
		tok, _ = s.Token()
		if tok.AccessToken != "second" {
			t.Errorf("token source should follow writes, got %q", tok.AccessToken)
		}
	})

	t.Run("HTTPClient Injects Bearer Header", func(t *testing.T) {
		s := newTestStore(t, "")
		s.SetToken("abc")

		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := s.HTTPClient(nil)
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if gotAuth != "Bearer abc" {
			t.Errorf("expected Bearer abc, got %q", gotAuth)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success Returns Session Without Persisting", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" {
				t.Errorf("expected path /auth/login, got %s", r.URL.Path)
			}
			var creds models.Credentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Errorf("failed to decode credentials: %v", err)
			}
			if creds.Email != "vin@b.co" {
				t.Errorf("unexpected email %q", creds.Email)
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "tok-123", "username": "Vin"})
		}))
		defer server.Close()

		s := newTestStore(t, server.URL)
		sess, err := s.Login(context.Background(), models.Credentials{Email: "vin@b.co", Password: "pw"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if sess.Token != "tok-123" || sess.Username != "Vin" || sess.Email != "vin@b.co" {
			t.Errorf("unexpected session %+v", sess)
		}
		if sess.Expired {
			t.Error("fresh session should not be expired")
		}
		if s.GetToken() != "" {
			t.Error("login must not persist the session itself")
		}
	})

	t.Run("Rejected Credentials Carry The Server Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials!"})
		}))
		defer server.Close()

		s := newTestStore(t, server.URL)
		_, err := s.Login(context.Background(), models.Credentials{Email: "vin@b.co", Password: "bad"})
		if err == nil {
			t.Fatal("expected error")
		}

		apiErr, ok := shared.AsAPIError(err)
		if !ok {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials!" {
			t.Errorf("unexpected error %+v", apiErr)
		}
	})

	t.Run("Unreachable Server", func(t *testing.T) {
		db, err := Open(":memory:")
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer db.Close()

		client := &http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		}
		s := NewStore(db, "http://example.com", client, nil)

		_, err = s.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "pw"})
		if !errors.Is(err, shared.ErrServerUnreachable) {
			t.Errorf("expected ErrServerUnreachable, got %v", err)
		}
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/create" {
				t.Errorf("expected path /auth/create, got %s", r.URL.Path)
			}
			var user models.User
			if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
				t.Errorf("failed to decode user: %v", err)
			}
			if user.Name != "Vin" {
				t.Errorf("unexpected name %q", user.Name)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		s := newTestStore(t, server.URL)
		user := models.User{Name: "Vin", Email: "vin@b.co", Password: "pw"}
		if err := s.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	})

	t.Run("Duplicate Email Surfaces Server Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "E-Mail already registered!"})
		}))
		defer server.Close()

		s := newTestStore(t, server.URL)
		err := s.CreateUser(context.Background(), models.User{Name: "Vin", Email: "vin@b.co", Password: "pw"})

		apiErr, ok := shared.AsAPIError(err)
		if !ok {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Message != "E-Mail already registered!" {
			t.Errorf("unexpected message %q", apiErr.Message)
		}
	})
}
