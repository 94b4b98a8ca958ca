package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/errors"
)

// DefaultLimit is the number of destinations kept when the caller passes 0.
const DefaultLimit = 10

// DefaultTimeout bounds a single countries request.
const DefaultTimeout = 10 * time.Second

// countryFields restricts the response to what FromCountry reads.
const countryFields = "name,capital,region,flags,population"

// Source fetches destinations from an upstream catalogue.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]Destination, error)
}

// Client fetches destinations from the REST Countries API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for baseURL with the default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch returns the first limit countries as destinations.
// Entries without a name are skipped.
func (c *Client) Fetch(ctx context.Context, limit int) ([]Destination, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	url := c.BaseURL + "/all?fields=" + countryFields
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	req.Header.Set("Accept", "application/json")

	zerolog.Ctx(ctx).Debug().Str("url", url).Msg("fetching countries")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstream("countries", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for connection reuse
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, errors.NewUpstream("countries", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var countries []Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, errors.NewUpstream("countries", fmt.Errorf("decode response: %w", err))
	}

	out := make([]Destination, 0, min(limit, len(countries)))
	seen := make(map[string]bool, limit)
	for _, country := range countries {
		if len(out) == limit {
			break
		}
		d := FromCountry(country)
		if d.Title == "" || seen[d.Title] {
			continue
		}
		seen[d.Title] = true
		out = append(out, d)
	}
	return out, nil
}
