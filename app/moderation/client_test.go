package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func verdictBody(token string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + token + `"}]}}]}`
}

// newTestClient points a client at the given server and records sleeps
// instead of performing them.
func newTestClient(serverURL string, sleeps *[]time.Duration) *Client {
	return NewClient(Config{
		APIKey:   "test-key",
		Endpoint: serverURL,
		Sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	})
}

func TestClassifySafe(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		} else if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request shape: %+v", req)
		} else {
			assert.Equal(t, "a perfectly fine comment", req.Contents[0].Parts[0].Text)
			assert.NotEmpty(t, req.SystemInstruction.Parts)
		}

		w.Write([]byte(verdictBody("safe")))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "a perfectly fine comment")
	assert.Equal(t, OutcomeSafe, result.Outcome)
	assert.False(t, result.Flagged())
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Empty(t, sleeps)
}

func TestClassifyFlagged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(verdictBody("needs_review")))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "obvious spam")
	assert.Equal(t, OutcomeFlagged, result.Outcome)
	assert.True(t, result.Flagged())
}

func TestClassifyNormalizesVerdictToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(verdictBody(`  NEEDS_REVIEW\n`)))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "borderline")
	assert.True(t, result.Flagged())
}

func TestClassifyMalformedResponseIsSafe(t *testing.T) {
	bodies := map[string]string{
		"invalid json":     `{"candidates":`,
		"empty candidates": `{"candidates":[]}`,
		"empty parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"unknown token":    verdictBody("maybe?"),
		"empty token":      verdictBody(""),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var requests int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requests, 1)
				w.Write([]byte(body))
			}))
			defer server.Close()

			var sleeps []time.Duration
			client := newTestClient(server.URL, &sleeps)

			result := client.Classify(context.Background(), "text")
			assert.Equal(t, OutcomeSafe, result.Outcome)
			assert.False(t, result.Flagged())
			// Malformed success bodies are not transient failures.
			assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
			assert.Empty(t, sleeps)
		})
	}
}

func TestClassifyRetriesThenSucceeds(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(verdictBody("needs_review")))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "text")
	assert.True(t, result.Flagged())
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps)
}

func TestClassifyExhaustsRetries(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "text")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.False(t, result.Flagged())
	assert.Contains(t, result.Reason, "503")
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	// Backoff doubles on each attempt boundary, no sleep after the last.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps)
}

func TestClassifyConnectionErrorIsSafe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)

	result := client.Classify(context.Background(), "text")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.False(t, result.Flagged())
	assert.NotEmpty(t, result.Reason)
	assert.Len(t, sleeps, 2)
}

func TestClassifyWithoutAPIKeySkipsNetwork(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL})

	result := client.Classify(context.Background(), "text")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.False(t, result.Flagged())
	assert.Equal(t, "api key not configured", result.Reason)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}

func TestBackoffDoubles(t *testing.T) {
	assert.Equal(t, time.Second, backoff(time.Second, 0))
	assert.Equal(t, 2*time.Second, backoff(time.Second, 1))
	assert.Equal(t, 4*time.Second, backoff(time.Second, 2))
}
