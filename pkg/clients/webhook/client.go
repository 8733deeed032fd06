// Package webhook posts usage digests to a user-configured HTTP endpoint.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

// Digest is the JSON payload posted for one user.
type Digest struct {
	Username    string              `json:"username"`
	WindowDays  int                 `json:"window_days"`
	Summary     models.UsageSummary `json:"summary"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Client is a resty-backed poster for digest payloads.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting the given URL.
func NewClient(url string) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient: restyClient,
		url:        url,
	}
}

// PostDigest delivers one digest. Non-2xx responses are reported as errors;
// the caller decides whether to log or retry.
func (c *Client) PostDigest(ctx context.Context, digest Digest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(digest).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post digest for %s: %w", digest.Username, err)
	}

	if resp.IsError() {
		return fmt.Errorf("post digest for %s: webhook returned %s", digest.Username, resp.Status())
	}
	return nil
}
