package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Endpoint paths on the search backend
const (
	PathSuggestions   = "/api/suggestions"
	PathESSuggestions = "/api/es_suggestions"
	PathClearHistory  = "/api/clear_history"
	PathRemoveHistory = "/api/remove_history"
	PathSearch        = "/search"
)

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// TraditionalResult is the response of the traditional suggestion endpoint
type TraditionalResult struct {
	Suggestions []string `json:"suggestions"`
	Correction  string   `json:"correction,omitempty"`
}

// Completion is one item from the completion suggester.
// Score is nil when the backend did not send one.
type Completion struct {
	Text  string   `json:"text"`
	Score *float64 `json:"score,omitempty"`
}

type historyResponse struct {
	Suggestions []string `json:"suggestions"`
}

type completionResponse struct {
	Suggestions []Completion `json:"suggestions"`
}

type queryBody struct {
	Query string `json:"query"`
}

// Client talks to the search backend over HTTP
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a backend client. A zero timeout leaves requests bounded only by ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a backend client around an existing http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the backend root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// History fetches the search history list
func (c *Client) History(ctx context.Context) ([]string, error) {
	q := url.Values{}
	q.Set("history", "true")

	var resp historyResponse
	if err := c.doRequest(ctx, http.MethodGet, PathSuggestions+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Suggestions fetches traditional suggestions and an optional spelling correction
func (c *Client) Suggestions(ctx context.Context, query string, pinyin bool) (TraditionalResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("simple", "true")
	q.Set("pinyin", strconv.FormatBool(pinyin))

	var resp TraditionalResult
	if err := c.doRequest(ctx, http.MethodGet, PathSuggestions+"?"+q.Encode(), nil, &resp); err != nil {
		return TraditionalResult{}, err
	}
	return resp, nil
}

// Completions fetches prefix completions from the completion suggester
func (c *Client) Completions(ctx context.Context, query string) ([]Completion, error) {
	var resp completionResponse
	if err := c.doRequest(ctx, http.MethodPost, PathESSuggestions, queryBody{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// ClearHistory asks the backend to drop all history. Any 2xx is success.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, PathClearHistory, nil, nil)
}

// RemoveHistory asks the backend to drop every occurrence of query. Any 2xx is success.
func (c *Client) RemoveHistory(ctx context.Context, query string) error {
	return c.doRequest(ctx, http.MethodPost, PathRemoveHistory, queryBody{Query: query}, nil)
}

// SearchURL builds the results page URL a submitted query lands on
func (c *Client) SearchURL(query, searchType string) string {
	q := url.Values{}
	q.Set("query", query)
	q.Set("search_type", searchType)
	return c.baseURL + PathSearch + "?" + q.Encode()
}

// doRequest sends an optional JSON body and decodes the JSON response into result.
// A nil result skips decoding so that any 2xx body is accepted.
func (c *Client) doRequest(ctx context.Context, method, path string, data interface{}, result interface{}) error {
	endpoint := strings.SplitN(path, "?", 2)[0]

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", endpoint, err)
	}
	return nil
}
