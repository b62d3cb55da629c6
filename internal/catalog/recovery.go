package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmsouza/musicctl/internal/channel"
	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
)

// ListDeleted fetches one page of the soft-deleted records.
func (c *Client) ListDeleted(ctx context.Context, page int) (models.Page, error) {
	return c.listPage(ctx, "/musics/deleted", page, &c.deletedSeq)
}

// CountDeleted returns the number of soft-deleted records, read from
// the message field of GET /musics/deleted/count.
func (c *Client) CountDeleted(ctx context.Context) (int, error) {
	var resp messageResponse
	if err := c.doRequest(ctx, http.MethodGet, "/musics/deleted/count", nil, &resp); err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(resp.Message)
	if err != nil {
		return 0, fmt.Errorf("failed to parse deleted count %q: %w", resp.Message, err)
	}
	return count, nil
}

// Recover restores the selected records at POST /musics/recover after
// the confirm gate approves.
//
// An empty selection fails locally with [shared.ErrEmptySelection]
// before any request. On success the selection is cleared, the
// list-changed notice published, and the fixed success message
// returned. Server-side failures other than a 401 fold into
// [shared.ErrRecoverFailed].
func (c *Client) Recover(ctx context.Context, selection *models.Selection, confirm ConfirmFunc) (string, error) {
	if selection == nil || selection.Len() == 0 {
		return "", shared.ErrEmptySelection
	}
	if confirm != nil && !confirm("Do you really want to recover the selected musics?") {
		return "", shared.ErrNotConfirmed
	}

	if err := c.doRequest(ctx, http.MethodPost, "/musics/recover", selection.Records(), nil); err != nil {
		if apiErr, ok := shared.AsAPIError(err); ok && apiErr.Status == http.StatusUnauthorized {
			return "", err
		}
		if errors.Is(err, shared.ErrServerUnreachable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", shared.ErrRecoverFailed, err)
	}

	recovered := selection.Len()
	selection.Clear()

	c.logger.Info("musics recovered", "count", recovered)
	c.bus.Publish(channel.ListChanged)
	return MsgRecovered, nil
}
