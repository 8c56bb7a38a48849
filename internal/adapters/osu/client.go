package osu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
	"github.com/vekt0r-github/osu-heardle/internal/random"
)

const (
	// DefaultBaseURL serves the legacy v1 endpoints, keyed by k=.
	DefaultBaseURL = "https://osu.ppy.sh/api"
	// DefaultBaseURLV2 serves the OAuth2 v2 endpoints.
	DefaultBaseURLV2 = "https://osu.ppy.sh/api/v2"
	// DefaultTokenURL issues client-credentials tokens for the v2 API.
	DefaultTokenURL = "https://osu.ppy.sh/oauth/token"
)

// Config selects the auth mode: a v1 APIKey, or a v2 ClientID/ClientSecret
// pair exchanged for bearer tokens. When both are present the v1 key wins.
type Config struct {
	BaseURL   string
	BaseURLV2 string
	TokenURL  string

	APIKey       string
	ClientID     string
	ClientSecret string

	MaxRetries  int
	BaseBackoff time.Duration
}

// Client fetches candidate pools from the osu! beatmap API.
//
// Each fetch derives its own random stream from the caller's seed, draws a
// uniform mapset id, converts it through the submit-time curve, and requests
// the window of maps ranked since that time. The same seed therefore always
// lands on the same window.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	baseURLV2   string
	apiKey      string
	useV2       bool
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// NewClient constructs an osu! API client. httpClient may be nil; in v2 mode
// it is replaced by an OAuth2 client that refreshes tokens as needed.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/"),
		baseURLV2:   strings.TrimRight(orDefault(cfg.BaseURLV2, DefaultBaseURLV2), "/"),
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
	}

	if cfg.APIKey == "" && cfg.ClientID != "" {
		creds := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     orDefault(cfg.TokenURL, DefaultTokenURL),
			EndpointParams: url.Values{
				"scope": {"public"},
			},
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		c.httpClient = creds.Client(ctx)
		c.useV2 = true
	}

	return c
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// FetchCandidatePool draws a random submit-time window for the seed and
// returns the catalog records ranked inside it.
func (c *Client) FetchCandidatePool(ctx context.Context, seed string) ([]domain.CatalogRecord, error) {
	rng := random.New(seed)
	startID := rng.IntN(1, MaxMapsetID+1)
	since := submitTimeForID(startID)

	if c.useV2 {
		return c.fetchV2(ctx, since)
	}
	return c.fetchV1(ctx, since)
}

// fetchV1 calls get_beatmaps, which returns one row per difficulty. Rows are
// mapped individually; pool merging by beatmapset happens in the selector.
func (c *Client) fetchV1(ctx context.Context, since time.Time) ([]domain.CatalogRecord, error) {
	q := url.Values{
		"k":     {c.apiKey},
		"since": {since.UTC().Format(sinceLayout)},
		"m":     {"0"},
	}
	endpoint := fmt.Sprintf("%s/get_beatmaps?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("osu adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osu adapter: status %d", resp.StatusCode)
	}

	var rows []osuBeatmap
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("osu adapter: %w", err)
	}

	return recordsFromBeatmaps(rows), nil
}

// fetchV2 searches ranked beatmapsets created since the window start. The
// bearer token is attached by the OAuth2 transport.
func (c *Client) fetchV2(ctx context.Context, since time.Time) ([]domain.CatalogRecord, error) {
	q := url.Values{
		"q": {fmt.Sprintf("created>=%s", since.UTC().Format("2006-01-02"))},
		"m": {"0"},
	}
	endpoint := fmt.Sprintf("%s/beatmapsets/search?%s", c.baseURLV2, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("osu adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osu adapter: status %d", resp.StatusCode)
	}

	var payload beatmapsetSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("osu adapter: %w", err)
	}

	return recordsFromBeatmapsets(payload.Beatmapsets), nil
}
