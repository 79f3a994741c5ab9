package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0)
}

func TestHistory(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathSuggestions, r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("history"))
		_, _ = w.Write([]byte(`{"suggestions":["golang","rust"],"type":"history"}`))
	})

	got, err := c.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "rust"}, got)
}

func TestSuggestionsQueryParameters(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "hello world", q.Get("query"))
		assert.Equal(t, "true", q.Get("simple"))
		assert.Equal(t, "false", q.Get("pinyin"))
		_, _ = w.Write([]byte(`{"suggestions":["a","b"],"correction":"c"}`))
	})

	got, err := c.Suggestions(context.Background(), "hello world", false)
	require.NoError(t, err)
	assert.Equal(t, TraditionalResult{Suggestions: []string{"a", "b"}, Correction: "c"}, got)
}

func TestSuggestionsAbsentFieldsAreEmpty(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := c.Suggestions(context.Background(), "x", true)
	require.NoError(t, err)
	assert.Empty(t, got.Suggestions)
	assert.Empty(t, got.Correction)
}

func TestCompletionsPostsQuery(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathESSuggestions, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gol", body["query"])

		_, _ = w.Write([]byte(`{"suggestions":[{"text":"golang","score":3.5},{"text":"gold"}]}`))
	})

	got, err := c.Completions(context.Background(), "gol")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "golang", got[0].Text)
	require.NotNil(t, got[0].Score)
	assert.Equal(t, 3.5, *got[0].Score)
	assert.Nil(t, got[1].Score)
}

func TestNonSuccessStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	err := c.ClearHistory(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, PathClearHistory, statusErr.Endpoint)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestMalformedJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.History(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClearAndRemoveAcceptAnyBody(t *testing.T) {
	var removed string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathRemoveHistory:
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			removed = body["query"]
			w.WriteHeader(http.StatusNoContent)
		case PathClearHistory:
			_, _ = w.Write([]byte("ok"))
		}
	})

	require.NoError(t, c.RemoveHistory(context.Background(), "old query"))
	assert.Equal(t, "old query", removed)
	require.NoError(t, c.ClearHistory(context.Background()))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, 0).History(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestSearchURL(t *testing.T) {
	c := NewClient("http://localhost:5000/", 0)
	raw := c.SearchURL("go 语言", "document")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/search", u.Path)
	assert.Equal(t, "go 语言", u.Query().Get("query"))
	assert.Equal(t, "document", u.Query().Get("search_type"))
}
