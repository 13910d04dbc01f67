package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Siliatu1/dashboard-inscritos/internal/config"
	"github.com/goccy/go-json"
)

// Remote endpoint paths, relative to the configured base URLs.
const (
	eventDatesPath   = "/sintonizarte-V2s"
	reservationsPath = "/sintonizarte-v2-reservas"
	rosterTotalsPath = "/intellinexTot"
	rosterPeoplePath = "/intellinextAct"
)

const maxResponseBytes = 32 << 20

// Client is the shared transport for the reservation and roster APIs.
type Client struct {
	httpClient          *http.Client
	reservationsBaseURL string
	rosterBaseURL       string
	pageSize            int
}

// NewClient creates a client from the remote configuration
func NewClient(cfg config.RemoteConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP lets callers supply their own http.Client.
func NewClientWithHTTP(cfg config.RemoteConfig, httpClient *http.Client) *Client {
	return &Client{
		httpClient:          httpClient,
		reservationsBaseURL: strings.TrimRight(cfg.ReservationsBaseURL, "/"),
		rosterBaseURL:       strings.TrimRight(cfg.RosterBaseURL, "/"),
		pageSize:            cfg.PageSize,
	}
}

// APIError represents a non-2xx answer from a remote API
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API error [%d] %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

// do sends the request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(data)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        url,
			Body:       snippet,
		}
	}

	return data, nil
}
