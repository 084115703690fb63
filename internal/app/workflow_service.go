// Package app implements the primary port services.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/example/specmentor/internal/core/phase"
	"github.com/example/specmentor/internal/core/validation"
	"github.com/example/specmentor/internal/ctxutil"
	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/primary"
	"github.com/example/specmentor/internal/ports/secondary"
)

const (
	// workflowStateTTL bounds how stale a cached projection may be.
	workflowStateTTL = 5 * time.Minute

	// aiPassScore is the minimum gateway score counted as a passing AI check.
	aiPassScore = 70

	aiUnavailableWarning = "AI validation temporarily unavailable"
)

// WorkflowServiceImpl implements the WorkflowService interface.
type WorkflowServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	docRepo      secondary.DocumentRepository
	transitions  secondary.TransitionStore
	approvalRepo secondary.ApprovalRepository
	reviewRepo   secondary.ReviewRepository
	auditor      secondary.AuditLogger
	cache        secondary.WorkflowCache
	gateway      secondary.ReviewGateway

	// now is injectable for approval-expiry tests.
	now func() time.Time
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
// gateway may be nil, in which case AI review is skipped everywhere.
func NewWorkflowService(
	projectRepo secondary.ProjectRepository,
	docRepo secondary.DocumentRepository,
	transitions secondary.TransitionStore,
	approvalRepo secondary.ApprovalRepository,
	reviewRepo secondary.ReviewRepository,
	auditor secondary.AuditLogger,
	cache secondary.WorkflowCache,
	gateway secondary.ReviewGateway,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		projectRepo:  projectRepo,
		docRepo:      docRepo,
		transitions:  transitions,
		approvalRepo: approvalRepo,
		reviewRepo:   reviewRepo,
		auditor:      auditor,
		cache:        cache,
		gateway:      gateway,
		now:          time.Now,
	}
}

// ValidatePhase runs the phase's completion validation against the
// current document. Read-only: nothing is persisted, so it is safe to
// call repeatedly for live progress display.
func (s *WorkflowServiceImpl) ValidatePhase(ctx context.Context, projectID string, ph models.Phase) (*primary.ValidationResult, error) {
	doc, err := s.getDocument(ctx, projectID, ph)
	if err != nil {
		return nil, err
	}

	res := validation.ValidateDocument(ph, doc.Content)
	out := &primary.ValidationResult{
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}
	passed, total := res.ChecksPassed, res.ChecksTotal

	if s.gateway != nil {
		total++
		review, err := s.gateway.Review(ctx, doc.Content, validation.AIPhase(ph), projectID)
		if err != nil {
			// Gateway failures of any classification degrade to a single
			// warning; they never flip the validation outcome.
			out.Warnings = append(out.Warnings, aiUnavailableWarning)
		} else {
			s.foldReview(out, review)
			score := review.OverallScore
			out.AIValidationScore = &score
			out.AIReview = reviewResultToPort("", doc.ID, review, "")
			if score >= aiPassScore {
				passed++
			}
		}
	}

	if total > 0 {
		out.CompletionPercentage = int(math.Round(float64(passed) / float64(total) * 100))
	}
	out.IsValid = len(out.Errors) == 0
	return out, nil
}

// foldReview routes gateway suggestions and compliance issues into the
// error or warning list by severity.
func (s *WorkflowServiceImpl) foldReview(out *primary.ValidationResult, review *secondary.AIReviewResult) {
	for _, sug := range review.Suggestions {
		msg := fmt.Sprintf("AI: %s - %s", sug.Title, sug.Description)
		if sug.Severity == secondary.AISeverityCritical || sug.Severity == secondary.AISeverityHigh {
			out.Errors = append(out.Errors, msg)
		} else {
			out.Warnings = append(out.Warnings, msg)
		}
	}
	for _, issue := range review.ComplianceIssues {
		msg := fmt.Sprintf("AI compliance: %s", issue.Description)
		if issue.Severity == secondary.AISeverityCritical || issue.Severity == secondary.AISeverityHigh {
			out.Errors = append(out.Errors, msg)
		} else {
			out.Warnings = append(out.Warnings, msg)
		}
	}
}

// CanTransition reports transition eligibility without mutating anything.
func (s *WorkflowServiceImpl) CanTransition(ctx context.Context, projectID string, target models.Phase, userID string) (*primary.TransitionCheck, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	dec, err := s.evaluateTransition(ctx, project, target, userID)
	if err != nil {
		return nil, err
	}
	return &primary.TransitionCheck{CanTransition: dec.Allowed, Reason: dec.Reason}, nil
}

// evaluateTransition runs the full eligibility check for moving the
// project to target as userID. Validation and approval counting are
// skipped when a cheaper condition already decides the outcome.
func (s *WorkflowServiceImpl) evaluateTransition(ctx context.Context, project *secondary.ProjectRecord, target models.Phase, userID string) (phase.TransitionDecision, error) {
	perm := phase.CanInitiateTransition(phase.PermissionContext{
		UserID:  userID,
		OwnerID: project.OwnerID,
		Members: project.Members,
	})

	tctx := phase.TransitionContext{
		CurrentPhase:  project.CurrentPhase,
		TargetPhase:   target,
		HasPermission: perm.Allowed,
	}

	sequential := target.Valid() && target.Index() == project.CurrentPhase.Index()+1
	if !sequential || !perm.Allowed {
		return phase.EvaluateTransition(tctx), nil
	}

	vr, err := s.ValidatePhase(ctx, project.ID, project.CurrentPhase)
	if err != nil {
		return phase.TransitionDecision{}, err
	}
	tctx.ValidationPassed = vr.IsValid
	tctx.ValidationErrors = vr.Errors

	cutoff := s.now().Add(-models.ApprovalLifetime)
	live, err := s.approvalRepo.ListLive(ctx, project.ID, project.CurrentPhase, cutoff)
	if err != nil {
		return phase.TransitionDecision{}, fmt.Errorf("failed to count approvals: %w", err)
	}
	tctx.LiveApprovals = len(live)

	return phase.EvaluateTransition(tctx), nil
}

// TransitionPhase executes a phase transition as one atomic unit, then
// triggers a best-effort AI review of the newly entered phase.
func (s *WorkflowServiceImpl) TransitionPhase(ctx context.Context, req primary.TransitionRequest) (*primary.WorkflowState, error) {
	project, err := s.getProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	dec, err := s.evaluateTransition(ctx, project, req.TargetPhase, req.UserID)
	if err != nil {
		return nil, err
	}
	if !dec.Allowed {
		if dec.Cause == phase.CausePermission {
			return nil, NewPermissionDenied(project.CurrentPhase, dec.Reason)
		}
		return nil, NewTransitionNotAllowed(project.CurrentPhase, dec.Reason)
	}
	if dec.NoOp {
		return s.GetWorkflowState(ctx, req.ProjectID)
	}

	details, _ := json.Marshal(map[string]any{
		"fromPhase": project.CurrentPhase,
		"toPhase":   req.TargetPhase,
		"comment":   req.ApprovalComment,
	})
	unit := &secondary.TransitionUnit{
		ID:              uuid.NewString(),
		ProjectID:       req.ProjectID,
		FromPhase:       project.CurrentPhase,
		ToPhase:         req.TargetPhase,
		UserID:          req.UserID,
		ApprovalComment: req.ApprovalComment,
		Audit: secondary.AuditEntry{
			ID:         uuid.NewString(),
			ActorID:    req.UserID,
			Action:     "workflow.transition",
			Resource:   "project",
			ResourceID: req.ProjectID,
			Details:    string(details),
			Success:    true,
			CreatedAt:  s.now(),
		},
	}
	if err := s.transitions.Apply(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to execute transition: %w", err)
	}

	// Post-commit side effect: the transition has already succeeded, so
	// a failing review must never surface to the caller.
	_, _ = s.TriggerAIReview(ctx, req.ProjectID, req.TargetPhase, req.UserID)

	s.invalidateCache(ctx, req.ProjectID)
	return s.GetWorkflowState(ctx, req.ProjectID)
}

// GetDocument returns the current document for a phase.
func (s *WorkflowServiceImpl) GetDocument(ctx context.Context, projectID string, ph models.Phase) (*primary.Document, error) {
	doc, err := s.getDocument(ctx, projectID, ph)
	if err != nil {
		return nil, err
	}
	return recordToDocument(doc), nil
}

// UpdateDocument applies a content update: version snapshot first, then
// the overwrite, so every replaced state is recoverable.
func (s *WorkflowServiceImpl) UpdateDocument(ctx context.Context, req primary.UpdateDocumentRequest) (*primary.Document, error) {
	project, err := s.getProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	perm := phase.CanUpdateDocument(phase.PermissionContext{
		UserID:  req.UserID,
		OwnerID: project.OwnerID,
		Members: project.Members,
	})
	if !perm.Allowed {
		return nil, NewPermissionDenied(req.Phase, perm.Reason)
	}

	doc, err := s.getDocument(ctx, req.ProjectID, req.Phase)
	if err != nil {
		return nil, err
	}

	if req.Version != doc.Version {
		return nil, NewVersionConflict(req.Phase, req.Version, doc.Version)
	}

	snapshot := &secondary.DocumentVersionRecord{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Version:    doc.Version,
		Content:    doc.Content,
		CreatedBy:  req.UserID,
		CreatedAt:  s.now(),
	}
	if err := s.docRepo.SaveVersion(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to snapshot document version: %w", err)
	}

	doc.Content = req.Content
	doc.Version++
	// Edits invalidate any prior approval status for display purposes.
	doc.Status = models.DocumentStatusDraft
	doc.UpdatedAt = s.now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.writeAudit(ctx, req.UserID, "document.update", "document", doc.ID,
		map[string]any{"phase": req.Phase, "version": doc.Version}, true)
	s.invalidateCache(ctx, req.ProjectID)

	return recordToDocument(doc), nil
}

// ApprovePhase records the single live approval for (project, phase, user).
// Quorum is not checked here; it is counted at transition time.
func (s *WorkflowServiceImpl) ApprovePhase(ctx context.Context, req primary.ApprovePhaseRequest) error {
	if !req.Phase.Valid() {
		return fmt.Errorf("unknown phase %q", string(req.Phase))
	}
	if _, err := s.getProject(ctx, req.ProjectID); err != nil {
		return err
	}

	approval := &models.Approval{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		Phase:     req.Phase,
		UserID:    req.UserID,
		Comment:   req.Comment,
		Approved:  true,
		CreatedAt: s.now(),
	}
	if err := s.approvalRepo.Upsert(ctx, approval); err != nil {
		return fmt.Errorf("failed to record approval: %w", err)
	}

	s.writeAudit(ctx, req.UserID, "workflow.approve", "project", req.ProjectID,
		map[string]any{"phase": req.Phase, "comment": req.Comment}, true)
	s.invalidateCache(ctx, req.ProjectID)
	return nil
}

// GetWorkflowState returns the cached projection when fresh, rebuilding
// from source on any miss, expiry, or corrupt payload.
func (s *WorkflowServiceImpl) GetWorkflowState(ctx context.Context, projectID string) (*primary.WorkflowState, error) {
	key := stateCacheKey(projectID)
	if data, err := s.cache.Get(ctx, key); err == nil && len(data) > 0 {
		var state primary.WorkflowState
		if json.Unmarshal(data, &state) == nil && state.ProjectID == projectID {
			return &state, nil
		}
		// Corrupt or mismatched payloads degrade to a rebuild.
	}

	state, err := s.buildWorkflowState(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(state); err == nil {
		_ = s.cache.Set(ctx, key, data, workflowStateTTL)
	}
	return state, nil
}

// buildWorkflowState assembles the projection from the source of truth.
func (s *WorkflowServiceImpl) buildWorkflowState(ctx context.Context, projectID string) (*primary.WorkflowState, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	statuses := make(map[models.Phase]string)
	for _, ph := range models.AllPhases() {
		doc, err := s.docRepo.GetByProjectPhase(ctx, projectID, ph)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s document: %w", ph, err)
		}
		statuses[ph] = doc.Status
	}

	records, err := s.transitions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load phase history: %w", err)
	}
	history := make([]primary.PhaseTransition, len(records))
	for i, t := range records {
		history[i] = primary.PhaseTransition{
			FromPhase: t.FromPhase,
			ToPhase:   t.ToPhase,
			UserID:    t.UserID,
			Comment:   t.ApprovalComment,
			Timestamp: t.CreatedAt.Format(time.RFC3339),
		}
	}

	cutoff := s.now().Add(-models.ApprovalLifetime)
	live, err := s.approvalRepo.ListLiveByProject(ctx, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load approvals: %w", err)
	}
	approvals := make(map[models.Phase][]primary.Approval)
	for _, a := range live {
		approvals[a.Phase] = append(approvals[a.Phase], primary.Approval{
			UserID:    a.UserID,
			Comment:   a.Comment,
			Approved:  a.Approved,
			Timestamp: a.CreatedAt.Format(time.RFC3339),
		})
	}

	state := &primary.WorkflowState{
		ProjectID:        projectID,
		CurrentPhase:     project.CurrentPhase,
		PhaseHistory:     history,
		DocumentStatuses: statuses,
		Approvals:        approvals,
	}

	// Forward-looking eligibility, evaluated as if the owner asked.
	if next, ok := project.CurrentPhase.Next(); ok {
		state.NextPhase = next
		if dec, err := s.evaluateTransition(ctx, project, next, project.OwnerID); err == nil {
			state.CanProgress = dec.Allowed && !dec.NoOp
		}
	}

	return state, nil
}

// TriggerAIReview reviews the phase's document and persists the result.
// A missing document or any gateway failure yields (nil, nil); gateway
// failures additionally leave a failure audit entry.
func (s *WorkflowServiceImpl) TriggerAIReview(ctx context.Context, projectID string, ph models.Phase, userID string) (*primary.AIReview, error) {
	doc, err := s.docRepo.GetByProjectPhase(ctx, projectID, ph)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if s.gateway == nil {
		return nil, nil
	}

	review, err := s.gateway.Review(ctx, doc.Content, validation.AIPhase(ph), projectID)
	if err != nil {
		s.writeAudit(ctx, userID, "ai_review.trigger", "document", doc.ID,
			map[string]any{"trigger": "phase_transition", "error": err.Error()}, false)
		return nil, nil
	}

	payload, _ := json.Marshal(review)
	rec := &secondary.ReviewRecord{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		OverallScore: review.OverallScore,
		Payload:      string(payload),
		CreatedAt:    s.now(),
	}
	if err := s.reviewRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store ai review: %w", err)
	}

	s.writeAudit(ctx, userID, "ai_review.trigger", "document", doc.ID,
		map[string]any{
			"trigger":     "phase_transition",
			"score":       review.OverallScore,
			"suggestions": len(review.Suggestions),
		}, true)

	return reviewResultToPort(rec.ID, doc.ID, review, rec.CreatedAt.Format(time.RFC3339)), nil
}

// GetPhaseAIValidation reports the AI-only view of a phase's validity.
// AI is strictly additive: with no gateway configured, or a gateway
// that could not answer, the phase is reported valid.
func (s *WorkflowServiceImpl) GetPhaseAIValidation(ctx context.Context, projectID string, ph models.Phase) (*primary.AIValidation, error) {
	if s.gateway == nil {
		return &primary.AIValidation{IsValid: true, Score: 100, Issues: []string{}}, nil
	}

	vr, err := s.ValidatePhase(ctx, projectID, ph)
	if err != nil {
		return nil, err
	}
	if vr.AIValidationScore == nil {
		return &primary.AIValidation{IsValid: true, Issues: []string{}}, nil
	}

	issues := []string{}
	if vr.AIReview != nil {
		for _, sug := range vr.AIReview.Suggestions {
			if sug.Severity == secondary.AISeverityCritical || sug.Severity == secondary.AISeverityHigh {
				issues = append(issues, sug.Title)
			}
		}
		for _, issue := range vr.AIReview.Compliance {
			if issue.Severity == secondary.AISeverityHigh {
				issues = append(issues, issue.Description)
			}
		}
	}

	score := *vr.AIValidationScore
	return &primary.AIValidation{
		IsValid: score >= aiPassScore && len(issues) == 0,
		Score:   score,
		Issues:  issues,
	}, nil
}

// ListDocumentVersions retrieves a document's snapshots, newest first.
func (s *WorkflowServiceImpl) ListDocumentVersions(ctx context.Context, projectID string, ph models.Phase) ([]*primary.DocumentVersion, error) {
	doc, err := s.getDocument(ctx, projectID, ph)
	if err != nil {
		return nil, err
	}
	records, err := s.docRepo.ListVersions(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	versions := make([]*primary.DocumentVersion, len(records))
	for i, v := range records {
		versions[i] = &primary.DocumentVersion{
			Version:   v.Version,
			Content:   v.Content,
			CreatedBy: v.CreatedBy,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		}
	}
	return versions, nil
}

// ListAIReviews retrieves stored reviews for a phase document, newest first.
func (s *WorkflowServiceImpl) ListAIReviews(ctx context.Context, projectID string, ph models.Phase) ([]*primary.AIReview, error) {
	doc, err := s.getDocument(ctx, projectID, ph)
	if err != nil {
		return nil, err
	}
	records, err := s.reviewRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ai reviews: %w", err)
	}
	reviews := make([]*primary.AIReview, 0, len(records))
	for _, rec := range records {
		var result secondary.AIReviewResult
		if err := json.Unmarshal([]byte(rec.Payload), &result); err != nil {
			// A corrupt payload still surfaces its stored score.
			result = secondary.AIReviewResult{OverallScore: rec.OverallScore}
		}
		reviews = append(reviews, reviewResultToPort(rec.ID, rec.DocumentID, &result, rec.CreatedAt.Format(time.RFC3339)))
	}
	return reviews, nil
}

// getProject loads a project, mapping absence to a typed NOT_FOUND error.
func (s *WorkflowServiceImpl) getProject(ctx context.Context, projectID string) (*secondary.ProjectRecord, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, NewNotFound("project", projectID)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

// getDocument loads a phase document, mapping absence to a typed NOT_FOUND error.
func (s *WorkflowServiceImpl) getDocument(ctx context.Context, projectID string, ph models.Phase) (*secondary.DocumentRecord, error) {
	doc, err := s.docRepo.GetByProjectPhase(ctx, projectID, ph)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			nf := NewNotFound("document", fmt.Sprintf("%s/%s", projectID, ph))
			nf.Phase = ph
			return nil, nf
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// writeAudit appends an audit entry. Best-effort: failures are dropped.
func (s *WorkflowServiceImpl) writeAudit(ctx context.Context, actorID, action, resource, resourceID string, details map[string]any, success bool) {
	if s.auditor == nil {
		return
	}
	if actorID == "" {
		actorID = ctxutil.ActorFromContext(ctx)
	}
	data, _ := json.Marshal(details)
	_ = s.auditor.Log(ctx, secondary.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    string(data),
		Success:    success,
		CreatedAt:  s.now(),
	})
}

// invalidateCache drops every cached projection for the project.
func (s *WorkflowServiceImpl) invalidateCache(ctx context.Context, projectID string) {
	_ = s.cache.DeletePattern(ctx, "workflow:*:"+projectID)
}

func stateCacheKey(projectID string) string {
	return "workflow:state:" + projectID
}

func recordToDocument(doc *secondary.DocumentRecord) *primary.Document {
	return &primary.Document{
		ID:        doc.ID,
		ProjectID: doc.ProjectID,
		Phase:     doc.Phase,
		Content:   doc.Content,
		Version:   doc.Version,
		Status:    doc.Status,
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
	}
}

func reviewResultToPort(id, documentID string, review *secondary.AIReviewResult, createdAt string) *primary.AIReview {
	out := &primary.AIReview{
		ID:           id,
		DocumentID:   documentID,
		OverallScore: review.OverallScore,
		Completeness: primary.CompletenessCheck{
			Score:           review.CompletenessCheck.Score,
			MissingElements: review.CompletenessCheck.MissingElements,
		},
		Quality: primary.QualityMetrics{
			Clarity:      review.QualityMetrics.Clarity,
			Completeness: review.QualityMetrics.Completeness,
			Consistency:  review.QualityMetrics.Consistency,
		},
		CreatedAt: createdAt,
	}
	for _, sug := range review.Suggestions {
		out.Suggestions = append(out.Suggestions, primary.AISuggestion{
			ID:          sug.ID,
			Type:        sug.Type,
			Severity:    sug.Severity,
			Title:       sug.Title,
			Description: sug.Description,
		})
	}
	for _, issue := range review.ComplianceIssues {
		out.Compliance = append(out.Compliance, primary.ComplianceIssue{
			Severity:    issue.Severity,
			Description: issue.Description,
			Requirement: issue.Requirement,
		})
	}
	return out
}

// Ensure WorkflowServiceImpl implements the interface
var _ primary.WorkflowService = (*WorkflowServiceImpl)(nil)
