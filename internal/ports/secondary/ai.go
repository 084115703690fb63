package secondary

import (
	"context"
	"fmt"
)

// ReviewGateway defines the secondary port for the external AI review
// capability. The gateway is optional: a nil gateway means AI review is
// not configured, and callers must degrade gracefully on any error.
type ReviewGateway interface {
	// Review scores a document's content for the given phase.
	// phase uses the gateway's own vocabulary (see validation.AIPhase).
	Review(ctx context.Context, content, phase, projectID string) (*AIReviewResult, error)
}

// AIReviewResult is the structured response from the review gateway.
type AIReviewResult struct {
	OverallScore      int                `json:"overallScore"`
	Suggestions       []AISuggestion     `json:"suggestions"`
	CompletenessCheck CompletenessCheck  `json:"completenessCheck"`
	QualityMetrics    QualityMetrics     `json:"qualityMetrics"`
	ComplianceIssues  []ComplianceIssue  `json:"complianceIssues"`
}

// AISuggestion is one improvement suggestion from the gateway.
type AISuggestion struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CompletenessCheck reports how complete the gateway judged the document.
type CompletenessCheck struct {
	Score           int      `json:"score"`
	MissingElements []string `json:"missingElements"`
}

// QualityMetrics are the gateway's per-dimension quality scores.
type QualityMetrics struct {
	Clarity      int `json:"clarity"`
	Completeness int `json:"completeness"`
	Consistency  int `json:"consistency"`
}

// ComplianceIssue is one methodology compliance problem found by the gateway.
type ComplianceIssue struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
}

// Suggestion severity values considered blocking when folded into validation.
const (
	AISeverityCritical = "critical"
	AISeverityHigh     = "high"
)

// Gateway error codes. All classifications degrade identically inside
// the engine; the codes exist for logging and for the gateway's own
// retry policy.
const (
	GatewayErrRateLimited     = "rate_limited"
	GatewayErrUnavailable     = "unavailable"
	GatewayErrInvalidAuth     = "invalid_auth"
	GatewayErrContentFiltered = "content_filtered"
	GatewayErrTimeout         = "timeout"
)

// GatewayError is a classified failure from the review gateway.
type GatewayError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("ai gateway %s: %s", e.Code, e.Message)
}
