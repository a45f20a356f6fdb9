// Package boatapi is the HTTP client for the boat catalog. The reservation
// service refuses bookings for boats the catalog does not know about, and
// must tell "boat does not exist" apart from "catalog unreachable": the
// first is permanent, the second is retryable.
package boatapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
)

type Boat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Exists fetches the boat record. Returns httperr.NotFound when the catalog
// answers 404 and httperr.Upstream for any network failure or unexpected
// status, so callers reject with the right semantics.
func (c *Client) Exists(ctx context.Context, boatID string) (*Boat, error) {
	url := fmt.Sprintf("%s/boats/%s", c.baseURL, boatID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httperr.Upstream("boat service unavailable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var b Boat
		if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
			return nil, httperr.Upstream("boat service unavailable", err)
		}
		return &b, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, httperr.NotFound(fmt.Sprintf("boat %s not found", boatID))
	default:
		return nil, httperr.Upstream("boat service unavailable",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}
}
