package reflection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI serves /v1/chat/completions with the given handler.
func fakeOpenAI(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  DefaultModel,
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func TestRequestReturnsModelText(t *testing.T) {
	var gotPrompt string
	srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("  Well done, keep reading.  "))
	})

	r := New(Config{APIKey: "k", BaseURL: srv.URL + "/v1", Model: "test-model"}, nil)
	got := r.Request(context.Background(), 33, 66, "Malachi")

	assert.Equal(t, "Well done, keep reading.", got)
	assert.Contains(t, gotPrompt, "33 out of 66 books completed (50.0%)")
	assert.Contains(t, gotPrompt, "The last book they finished was Malachi.")
	assert.False(t, r.Busy())
}

func TestRequestFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{oops"))
		}},
		{"no choices", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": []any{}})
		}},
		{"empty text", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completion("   "))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeOpenAI(t, tt.handler)
			r := New(Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, nil)
			assert.Equal(t, Fallback, r.Request(context.Background(), 1, 66, ""))
		})
	}
}

func TestRequestWithoutKeyFallsBack(t *testing.T) {
	r := New(Config{}, nil)
	assert.Equal(t, Fallback, r.Request(context.Background(), 0, 66, ""))
}

func TestRequestUnreachableFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := New(Config{APIKey: "k", BaseURL: url + "/v1", Timeout: time.Second}, nil)
	assert.Equal(t, Fallback, r.Request(context.Background(), 0, 66, ""))
}

func TestRequestTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	r := New(Config{APIKey: "k", BaseURL: srv.URL + "/v1", Timeout: 50 * time.Millisecond}, nil)
	assert.Equal(t, Fallback, r.Request(context.Background(), 0, 66, ""))
}

func TestBusyWhileInFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := fakeOpenAI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("ok"))
	})

	r := New(Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, nil)
	done := make(chan string)
	go func() { done <- r.Request(context.Background(), 1, 2, "") }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, r.Busy())
	close(release)
	assert.Equal(t, "ok", <-done)
	assert.False(t, r.Busy())
}

func TestPrompt(t *testing.T) {
	p := Prompt(0, 66, "")
	assert.Contains(t, p, "0 out of 66 books completed (0.0%)")
	assert.NotContains(t, p, "last book")

	p = Prompt(5, 0, "Ruth")
	assert.Contains(t, p, "(0.0%)")
	assert.True(t, strings.Contains(p, "Ruth"))
}
