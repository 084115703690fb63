// Package ai contains the HTTP client adapter for the external review
// gateway. The engine only ever sees the secondary.ReviewGateway port
// and a classified secondary.GatewayError; transport details stay here.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/example/specmentor/internal/ports/secondary"
)

// DefaultTimeout bounds a review call when no timeout is configured.
// The phase gate must never hang on a slow provider.
const DefaultTimeout = 30 * time.Second

// Gateway implements secondary.ReviewGateway over HTTP.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a review gateway client. timeout <= 0 uses DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type reviewRequest struct {
	Content   string `json:"content"`
	Phase     string `json:"phase"`
	ProjectID string `json:"projectId"`
}

// Review scores a document's content for the given phase.
func (g *Gateway) Review(ctx context.Context, content, phase, projectID string) (*secondary.AIReviewResult, error) {
	body, err := json.Marshal(reviewRequest{Content: content, Phase: phase, ProjectID: projectID})
	if err != nil {
		return nil, &secondary.GatewayError{Code: secondary.GatewayErrUnavailable, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/review", bytes.NewReader(body))
	if err != nil {
		return nil, &secondary.GatewayError{Code: secondary.GatewayErrUnavailable, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		code := secondary.GatewayErrUnavailable
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			code = secondary.GatewayErrTimeout
		}
		return nil, &secondary.GatewayError{Code: code, Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	var result secondary.AIReviewResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &secondary.GatewayError{
			Code:    secondary.GatewayErrUnavailable,
			Message: fmt.Sprintf("malformed review response: %v", err),
		}
	}
	return &result, nil
}

func classifyStatus(status int) *secondary.GatewayError {
	switch {
	case status == http.StatusTooManyRequests:
		return &secondary.GatewayError{Code: secondary.GatewayErrRateLimited, Message: "rate limit exceeded", Retryable: true}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &secondary.GatewayError{Code: secondary.GatewayErrInvalidAuth, Message: "invalid credentials"}
	case status == http.StatusUnprocessableEntity:
		return &secondary.GatewayError{Code: secondary.GatewayErrContentFiltered, Message: "content rejected by provider"}
	default:
		return &secondary.GatewayError{
			Code:      secondary.GatewayErrUnavailable,
			Message:   fmt.Sprintf("unexpected status %d", status),
			Retryable: status >= 500,
		}
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Ensure Gateway implements the interface
var _ secondary.ReviewGateway = (*Gateway)(nil)
