package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

// APIError carries a non-2xx answer from the commerce API. Message is the
// server's own `{"message": ...}` body when one was sent, so handlers can
// surface it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

type response struct {
	status int
	body   []byte
}

// Client is the single HTTP doorway to the external commerce API. All calls
// go through a circuit breaker so a dead upstream fails fast instead of
// stacking up slow requests.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[response]
}

func New(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "commerce-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[response](settings),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON fetches baseURL+path and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

// PostJSON sends in as a JSON body and decodes the answer into out.
// Extra headers (e.g. Idempotency-Key) are attached to the request.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any, headers map[string]string) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, b, out, headers)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, headers map[string]string) error {
	res, err := c.breaker.Execute(func() (response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return response{}, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return response{}, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{}, err
		}
		// 5xx counts against the breaker; 4xx is the caller's problem
		if resp.StatusCode >= 500 {
			return response{}, apiError(resp.StatusCode, b)
		}
		return response{status: resp.StatusCode, body: b}, nil
	})
	if err != nil {
		return err
	}

	if res.status < 200 || res.status > 299 {
		return apiError(res.status, res.body)
	}
	if out == nil || len(res.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	// a non-JSON error body just means no server message to relay
	_ = json.Unmarshal(body, &payload)
	return &APIError{Status: status, Message: payload.Message}
}
