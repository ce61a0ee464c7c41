// Package moderation classifies comment text via a remote
// text-classification API before it is persisted. Every failure path —
// missing configuration, transport errors, malformed responses — resolves to
// a safe verdict; classification can delay a comment but never reject one.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultEndpoint is the Gemini generateContent endpoint used when no
	// override is configured.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

	// flaggedToken is the one verdict token that marks a comment for review.
	// Anything else the model says, including nothing, means safe.
	flaggedToken = "needs_review"

	systemPrompt = "You are a content moderator for a blog's comment section. " +
		"Classify the comment you are given. Respond with exactly one lowercase word: " +
		"\"needs_review\" if the comment contains spam, harassment, hate speech or " +
		"otherwise needs human review, or \"safe\" if it does not."

	maxAttempts    = 3
	initialBackoff = time.Second
	requestTimeout = 10 * time.Second
)

// Config carries the explicit dependencies of a Client. Only APIKey is
// required for live classification; an empty key turns the client into a
// deliberate bypass that returns safe without touching the network.
type Config struct {
	APIKey   string
	Endpoint string
	// HTTPClient overrides the default 10s-timeout client.
	HTTPClient *http.Client
	// Sleep overrides time.Sleep between retries.
	Sleep func(time.Duration)
	// Logger overrides the standard logger.
	Logger logrus.FieldLogger
}

// Client calls the remote classification endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	sleep      func(time.Duration)
	log        logrus.FieldLogger
}

// NewClient creates a classification client from the given config, filling
// in defaults for anything unset.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		sleep:      cfg.Sleep,
		log:        cfg.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: requestTimeout}
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// Request and response shapes for the generateContent wire format.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction content   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Classify asks the remote endpoint whether text needs review. It blocks for
// the duration of the call including retries; the worst case is bounded by
// the per-attempt timeout and the backoff schedule.
func (c *Client) Classify(ctx context.Context, text string) Result {
	if c.apiKey == "" {
		c.log.Debug("classification skipped: api key not configured")
		return Result{Outcome: OutcomeSkipped, Reason: "api key not configured"}
	}

	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: text}}}},
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
	})
	if err != nil {
		c.log.WithError(err).Warn("classification request could not be encoded")
		return Result{Outcome: OutcomeSkipped, Reason: err.Error()}
	}

	var raw []byte
	err = retry(maxAttempts, initialBackoff, c.sleep, func() error {
		var attemptErr error
		raw, attemptErr = c.post(ctx, body)
		return attemptErr
	})
	if err != nil {
		c.log.WithError(err).Warn("classification failed, defaulting to safe")
		return Result{Outcome: OutcomeSkipped, Reason: err.Error()}
	}

	if extractVerdict(raw) == flaggedToken {
		return Result{Outcome: OutcomeFlagged}
	}
	return Result{Outcome: OutcomeSafe}
}

// post performs one attempt against the endpoint. It fails only on transport
// errors and non-2xx statuses; those are the retryable cases.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?key="+url.QueryEscape(c.apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classification endpoint returned %d: %s",
			resp.StatusCode, bytes.TrimSpace(raw))
	}
	return raw, nil
}

// extractVerdict pulls the verdict token out of a successful response body.
// Any malformed or unexpected structure yields an empty token, which reads
// as safe.
func extractVerdict(raw []byte) string {
	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text))
}
