package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// APIError is a non-2xx answer from the portfolio API.
type APIError struct {
	StatusCode int
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("portfolio api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("portfolio api: status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the current document, or nil when the API answers null.
func (c *Client) Fetch(ctx context.Context) (*portfolio.Portfolio, error) {
	var p *portfolio.Portfolio
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &p); err != nil {
		return nil, err
	}
	if p != nil {
		p.Normalize()
	}
	return p, nil
}

func (c *Client) Create(ctx context.Context, p *portfolio.Portfolio) (*portfolio.Portfolio, error) {
	var out struct {
		Portfolio *portfolio.Portfolio `json:"portfolio"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", writeBody(p), &out); err != nil {
		return nil, err
	}
	if out.Portfolio == nil || out.Portfolio.ID == nil {
		return nil, fmt.Errorf("portfolio api: create response carried no id")
	}
	return out.Portfolio, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, p *portfolio.Portfolio) (*portfolio.Portfolio, error) {
	var out portfolio.Portfolio
	if err := c.do(ctx, http.MethodPut, "/api/portfolio/"+id.String(), writeBody(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// writeBody strips server-managed fields; the id travels in the path.
func writeBody(p *portfolio.Portfolio) any {
	return struct {
		Name     string              `json:"name"`
		Title    string              `json:"title"`
		About    string              `json:"about"`
		Skills   []string            `json:"skills"`
		Projects []portfolio.Project `json:"projects"`
		Contact  portfolio.Contact   `json:"contact"`
	}{p.Name, p.Title, p.About, p.Skills, p.Projects, p.Contact}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
