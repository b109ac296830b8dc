package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL   = "https://api.worldweatheronline.com/premium/v1/weather.ashx"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "WWO-Go-Client/1.0"
)

// Client talks to the World Weather Online premium weather endpoint.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type wwoResponse struct {
	Data Record `json:"data"`
}

// BuildURL returns the request URL for q.
func (c *Client) BuildURL(q Query) string {
	query := url.Values{}
	query.Set("key", q.APIKey)
	query.Set("q", q.Location)
	query.Set("format", "json")
	query.Set("num_of_days", strconv.Itoa(q.Days))
	query.Set("tp", "24")
	query.Set("includelocation", "yes")
	query.Set("cc", "yes")

	return c.baseURL + "?" + query.Encode()
}

func (c *Client) Fetch(ctx context.Context, q Query) (*Record, error) {
	if q.APIKey == "" || q.APIKey == SentinelAPIKey {
		return nil, &ConfigError{Reason: "WWO_API_KEY is not set"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("wwo request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var payload wwoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &DecodeError{Err: err}
	}

	record := &payload.Data
	if len(record.Error) > 0 {
		return nil, &APIError{Message: record.Error[0].Msg}
	}
	if err := record.validate(); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return record, nil
}
