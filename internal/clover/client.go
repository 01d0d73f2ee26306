package clover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // merchant API, e.g. https://api.clover.com
	TokenURL     string // OAuth token endpoint
	HTTPClient   *http.Client
}

// Client talks to the Clover platform: the OAuth token endpoint and the
// merchant payments API. All calls are single request/response with a
// bounded timeout; retrying is the caller's schedule, not ours.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.clover.com"
	}
	tokenURL := strings.TrimSpace(cfg.TokenURL)
	if tokenURL == "" {
		tokenURL = "https://www.clover.com/oauth/token"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
	}
}

// RemoteError carries the remote's status and response body so handlers can
// pass the diagnostic text through.
type RemoteError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("clover %s: status %d: %s", e.Op, e.Status, e.Body)
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("client_secret", c.clientSecret)
	q.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteError{Op: "token exchange", Status: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		return "", &RemoteError{Op: "token exchange", Status: resp.StatusCode, Body: string(body)}
	}

	return parsed.AccessToken, nil
}

// Payment is the slice of the payments API response the poller cares about.
type Payment struct {
	ID     string `json:"id"`
	Amount *int64 `json:"amount,omitempty"`
}

// LatestPayment fetches the single most recent payment for the merchant.
// Returns nil with no error when the merchant has no payments yet.
func (c *Client) LatestPayment(ctx context.Context, merchantID, accessToken string) (*Payment, error) {
	endpoint := fmt.Sprintf("%s/v3/merchants/%s/payments?limit=1&orderBy=createdTime%%20DESC",
		c.baseURL, url.PathEscape(merchantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build payments request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Op: "latest payment", Status: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		Elements []Payment `json:"elements"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode payments response: %w", err)
	}
	if len(parsed.Elements) == 0 {
		return nil, nil
	}

	p := parsed.Elements[0]
	return &p, nil
}
