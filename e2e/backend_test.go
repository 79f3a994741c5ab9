//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeSearchBackend serves the suggestion and history endpoints from memory
type fakeSearchBackend struct {
	mu          sync.Mutex
	history     []string
	suggestions map[string][]string
	completions map[string][]string
	failClear   bool
	queries     []string
}

func newFakeSearchBackend(t *testing.T, fb *fakeSearchBackend) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/suggestions", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if r.URL.Query().Get("history") == "true" {
			writeJSON(w, map[string]any{"suggestions": fb.history})
			return
		}
		q := r.URL.Query().Get("query")
		fb.queries = append(fb.queries, q)
		writeJSON(w, map[string]any{"suggestions": fb.suggestions[strings.ToLower(q)]})
	})

	mux.HandleFunc("/api/es_suggestions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		var items []map[string]any
		for _, c := range fb.completions[strings.ToLower(body.Query)] {
			items = append(items, map[string]any{"text": c, "score": 1.5})
		}
		writeJSON(w, map[string]any{"suggestions": items})
	})

	mux.HandleFunc("/api/clear_history", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.failClear {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fb.history = nil
		writeJSON(w, map[string]any{"success": true})
	})

	mux.HandleFunc("/api/remove_history", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		var kept []string
		for _, h := range fb.history {
			if h != body.Query {
				kept = append(kept, h)
			}
		}
		fb.history = kept
		writeJSON(w, map[string]any{"success": true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (fb *fakeSearchBackend) queryCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.queries)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
