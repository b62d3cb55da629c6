// package catalog is the API client for the music catalog: paginated
// listing, create/edit/delete, and bulk recovery of soft-deleted
// records.
//
// Every request carries the stored bearer token via the session
// transport. A 401 from any endpoint invalidates the session exactly
// once and publishes an authentication notice on the channel; callers
// see the 401 as an [shared.APIError] and redirect to login. List
// requests are paced by a configurable pre-request delay plus a rate
// limiter, and a page response that was superseded by a newer request
// for the same view is discarded as stale.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vmsouza/musicctl/internal/channel"
	"github.com/vmsouza/musicctl/internal/formatter"
	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/session"
	"github.com/vmsouza/musicctl/internal/shared"
	"github.com/vmsouza/musicctl/internal/validator"
)

// Success messages surfaced to the user after each mutation.
const (
	MsgAdded     = "Music added successfully!"
	MsgEdited    = "Music edited successfully!"
	MsgRecovered = "Musics recovered successfully!"
)

// ConfirmFunc gates a destructive operation. Returning false aborts the
// operation before any request is made.
type ConfirmFunc func(prompt string) bool

// Options configures a [Client].
type Options struct {
	// BaseURL of the catalog API, default http://localhost:8080.
	BaseURL string
	// Base transport under the token-injecting transport. nil means
	// [http.DefaultTransport].
	Base http.RoundTripper
	// Delay applied before every list request. Zero disables it.
	Delay time.Duration
	// RequestsPerSecond for the list rate limiter, default 10.
	RequestsPerSecond float64
	Logger            *log.Logger
}

// Client talks to the catalog endpoints on behalf of the stored session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	bus        *channel.Channel
	logger     *log.Logger
	limiter    *rate.Limiter
	delay      time.Duration

	// Per-view request sequence numbers for stale-response detection.
	listSeq    atomic.Int64
	deletedSeq atomic.Int64

	// Serializes invalidate so concurrent 401s publish one notice.
	invalidateMu sync.Mutex
}

// NewClient creates a catalog client over the given session store and
// notification channel.
func NewClient(store *session.Store, bus *channel.Channel, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: store.HTTPClient(opts.Base),
		session:    store,
		bus:        bus,
		logger:     opts.Logger,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		delay:      opts.Delay,
	}
}

type pageResponse struct {
	Content       []models.Music `json:"content"`
	TotalElements int            `json:"totalElements"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List fetches one page of the active catalog.
//
// Returns [shared.ErrStaleResponse] when a newer List call was issued
// while this one was in flight.
func (c *Client) List(ctx context.Context, page int) (models.Page, error) {
	return c.listPage(ctx, "/musics", page, &c.listSeq)
}

// Save validates and creates a new record at POST /musics. The launch
// date is accepted in the masked edit form (dd/mm/yyyy) and sent to the
// server unmasked. On success the list-changed notice is published and
// the fixed success message returned.
func (c *Client) Save(ctx context.Context, m models.Music) (string, error) {
	if err := checkRecord(m); err != nil {
		return "", err
	}

	m.LaunchDate = formatter.UnmaskLaunchDate(m.LaunchDate)
	if err := c.doRequest(ctx, http.MethodPost, "/musics", m, nil); err != nil {
		return "", err
	}

	c.logger.Info("music added", "title", m.Title)
	c.bus.Publish(channel.ListChanged)
	return MsgAdded, nil
}

// Edit validates and updates an existing record at PUT /musics/{id}.
func (c *Client) Edit(ctx context.Context, m models.Music) (string, error) {
	if !m.Saved() {
		return "", fmt.Errorf("%w: record has no id", shared.ErrInvalidArgument)
	}
	if err := checkRecord(m); err != nil {
		return "", err
	}

	m.LaunchDate = formatter.UnmaskLaunchDate(m.LaunchDate)
	endpoint := fmt.Sprintf("/musics/%d", *m.ID)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, m, nil); err != nil {
		return "", err
	}

	c.logger.Info("music edited", "id", *m.ID, "title", m.Title)
	c.bus.Publish(channel.ListChanged)
	return MsgEdited, nil
}

// Delete soft-deletes a record at DELETE /musics/{id} after the confirm
// gate approves. Returns [shared.ErrNotConfirmed] without touching the
// server when the gate declines.
func (c *Client) Delete(ctx context.Context, id int64, confirm ConfirmFunc) error {
	if confirm != nil && !confirm("Do you really want to delete this music?") {
		return shared.ErrNotConfirmed
	}

	endpoint := fmt.Sprintf("/musics/%d", id)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return err
	}

	c.logger.Info("music deleted", "id", id)
	c.bus.Publish(channel.ListChanged)
	return nil
}

// listPage runs the paced, sequence-checked GET shared by the active
// and deleted listings.
func (c *Client) listPage(ctx context.Context, path string, page int, seq *atomic.Int64) (models.Page, error) {
	id := seq.Add(1)

	if err := c.pace(ctx); err != nil {
		return models.Page{}, err
	}

	var resp pageResponse
	endpoint := fmt.Sprintf("%s?page=%d&size=%d", path, page, models.PageSize)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return models.Page{}, err
	}

	if seq.Load() != id {
		c.logger.Debug("discarding stale page response", "path", path, "page", page)
		return models.Page{}, shared.ErrStaleResponse
	}

	return models.Page{
		Items:         resp.Content,
		TotalElements: resp.TotalElements,
		Index:         page,
	}, nil
}

// pace applies the configured pre-request delay and rate limit.
func (c *Client) pace(ctx context.Context) error {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.limiter.Wait(ctx)
}

// checkRecord runs the record validation pass and folds the result into
// a single error.
func checkRecord(m models.Music) error {
	state, summary := validator.CheckMusic(m)
	if summary != "" {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, summary)
	}
	for _, field := range []string{"title", "artist", "launchDate", "duration"} {
		if msg := state.Message(field); msg != "" {
			return fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
		}
	}
	return nil
}

// doRequest performs one catalog request. Transport failures map to the
// fixed unreachable-server error; a 401 invalidates the session (once)
// and, like any other non-2xx, surfaces as an [shared.APIError].
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidate(errResp.Message)
		}
		return &shared.APIError{Status: resp.StatusCode, Message: errResp.Message}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// invalidate tears down the session after a 401. The authenticated
// check makes the teardown and the notice fire exactly once even when
// several in-flight requests fail together.
func (c *Client) invalidate(serverMessage string) {
	c.invalidateMu.Lock()
	defer c.invalidateMu.Unlock()

	if !c.session.IsAuthenticated() {
		return
	}

	c.logger.Warn("session rejected by server, logging out", "message", serverMessage)
	c.session.Logout()
	c.bus.Publish(channel.Unauthenticated(serverMessage))
}
