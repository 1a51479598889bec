package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable marks transport-level search failures (connectivity,
// non-200 responses). Callers treat these as per-title failures, not
// batch-fatal errors.
var ErrUnavailable = errors.New("catalog unavailable")

// Record is one canonical catalog entry. Rank is the catalog's popularity
// rank; lower numbers are more prominent entries.
type Record struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rank       int    `json:"rank"`
	Year       int    `json:"year_published"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
	PlayTime   int    `json:"play_time"`
}

// Valid reports whether the record meets the schema this engine relies on.
func (r Record) Valid() bool {
	return r.ID > 0 && strings.TrimSpace(r.Name) != ""
}

// searchResponse models the catalog's paginated search payload.
type searchResponse struct {
	Results      []Record `json:"results"`
	TotalResults int      `json:"total_results"`
}

// Searcher is the catalog search capability consumed by the engine.
// Implementations must return an empty slice, not an error, for queries
// with no hits.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Record, error)
}

// Client queries the catalog search API over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a catalog client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the catalog by name. Results arrive ordered by popularity
// and are validated before return; invalid records are dropped. A query
// with no hits returns an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request (latency=%v): %w", ErrUnavailable, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog search returned %d (latency=%v)", ErrUnavailable, resp.StatusCode, latency)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	records := make([]Record, 0, len(payload.Results))
	for _, record := range payload.Results {
		if !record.Valid() {
			continue
		}
		records = append(records, record)
		if len(records) == limit {
			break
		}
	}
	return records, nil
}
