// Package moderation wraps the external text-toxicity classifier behind
// a small success/failure/verdict contract.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Verdict is the outcome of one classification call.
type Verdict struct {
	IsToxic bool    `json:"is_toxic"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
}

// Scorer scores a text against a toxicity threshold. A non-nil error
// means the classifier was unreachable or failed, which callers treat
// as a distinct, non-retryable failure class.
type Scorer interface {
	Score(ctx context.Context, text string, threshold float64) (*Verdict, error)
}

// HTTPGateway calls a remote classifier over HTTP. Each call is
// stateless: no session, no batching, no caching.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGateway creates a gateway for the classifier at endpoint.
func NewHTTPGateway(endpoint string) *HTTPGateway {
	return &HTTPGateway{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Score submits text to the classifier and applies threshold to its
// answer. The verdict is toxic iff the classifier labeled the text
// toxic with confidence at or above threshold.
func (g *HTTPGateway) Score(ctx context.Context, text string, threshold float64) (*Verdict, error) {
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classifier response malformed: %v", err)
	}

	return &Verdict{
		IsToxic: strings.EqualFold(out.Label, "toxic") && out.Score >= threshold,
		Label:   out.Label,
		Score:   out.Score,
	}, nil
}
