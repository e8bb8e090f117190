package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// ReviewService manages multi-reviewer review rounds. A round completes
// only when every listed reviewer has submitted (ALL quorum). At most one
// round per RFC is active at a time.
type ReviewService struct {
	store storage.Store
	audit domain.AuditLogger
	locks *lockTable
}

func NewReviewService(store storage.Store, audit domain.AuditLogger) *ReviewService {
	return &ReviewService{store: store, audit: audit, locks: newLockTable()}
}

// rfcKey scopes round creation and reviewer-list changes per RFC;
// reviewKey scopes submissions per round.
func rfcKey(rfcID string) string    { return "rfc:" + rfcID }
func reviewKey(reviewID string) string { return "review:" + reviewID }

// RequestReview opens a review round pinned to the RFC's current version.
// Duplicate reviewer ids collapse; order of first occurrence is kept.
func (s *ReviewService) RequestReview(params RequestReviewParams) (*review.Request, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	now := time.Now()
	if params.Deadline != nil && !params.Deadline.After(now) {
		return nil, &domain.ValidationError{Field: "deadline", Reason: "must be in the future"}
	}

	unlock := s.locks.Lock(rfcKey(params.RFCID))
	defer unlock()

	doc, err := s.store.Documents().GetByID(params.RFCID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", params.RFCID, err)
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: params.RFCID}
	}

	active, err := s.store.Reviews().GetActiveByRFC(params.RFCID)
	if err != nil {
		return nil, fmt.Errorf("checking active reviews for RFC %s: %w", params.RFCID, err)
	}
	if active != nil {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("RFC %s already has an active review %s", params.RFCID, active.ID)}
	}

	reviewers := make([]string, 0, len(params.ReviewerIDs))
	statuses := make(map[string]review.Status, len(params.ReviewerIDs))
	for _, id := range params.ReviewerIDs {
		if _, ok := statuses[id]; ok {
			continue
		}
		if _, err := requireAgent(s.store, id, true); err != nil {
			return nil, err
		}
		reviewers = append(reviewers, id)
		statuses[id] = review.StatusPending
	}

	r := &review.Request{
		ID:          uuid.NewString(),
		RFCID:       params.RFCID,
		RFCVersion:  doc.Version,
		RequestedBy: params.RequestedBy,
		ReviewerIDs: reviewers,
		Statuses:    statuses,
		Deadline:    params.Deadline,
		CreatedAt:   now,
	}
	if _, err := s.store.Reviews().Create(r); err != nil {
		return nil, fmt.Errorf("creating review request: %w", err)
	}

	_ = s.audit.Log("review.request", params.RequestedBy, map[string]interface{}{
		"rfc_id":      params.RFCID,
		"review_id":   r.ID,
		"rfc_version": r.RFCVersion,
		"reviewers":   len(reviewers),
	})
	return r, nil
}

// SubmitReview records one reviewer's submission and any comments carried
// with it. Submission comments are written through the trusted bulk path:
// only the rfc id match is checked, anchors are not verified. When the last
// pending reviewer submits, the round completes and CompletedAt is stamped
// exactly once.
func (s *ReviewService) SubmitReview(params SubmitReviewParams) (*review.Request, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(reviewKey(params.ReviewRequestID))
	defer unlock()

	r, err := s.store.Reviews().GetByID(params.ReviewRequestID)
	if err != nil {
		return nil, fmt.Errorf("loading review %s: %w", params.ReviewRequestID, err)
	}
	if r == nil {
		return nil, &domain.NotFoundError{Kind: "review request", ID: params.ReviewRequestID}
	}
	if r.CompletedAt != nil {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("review %s is already completed", r.ID)}
	}
	if !r.HasReviewer(params.AgentID) {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("agent %s is not a reviewer on review %s", params.AgentID, r.ID)}
	}
	if r.Statuses[params.AgentID] == review.StatusCompleted {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("agent %s already submitted on review %s", params.AgentID, r.ID)}
	}
	if r.DeadlinePassed(time.Now()) {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("review %s deadline has passed", r.ID)}
	}

	for i, rc := range params.Comments {
		if rc.RFCID != r.RFCID {
			return nil, &domain.ValidationError{
				Field:  "comments",
				Reason: fmt.Sprintf("comment %d targets RFC %s, review is for RFC %s", i, rc.RFCID, r.RFCID),
			}
		}
	}

	role, _ := reviewerRole(s.store, params.AgentID)
	now := time.Now()
	for _, rc := range params.Comments {
		c := &comment.Comment{
			ID:         uuid.NewString(),
			RFCID:      r.RFCID,
			RFCVersion: r.RFCVersion,
			AgentID:    params.AgentID,
			AgentRole:  role,
			Type:       comment.TypeDocumentLevel,
			Content:    rc.Content,
			Status:     comment.StatusOpen,
			CreatedAt:  now,
		}
		if rc.QuotedText != "" {
			c.Type = comment.TypeInline
			c.TextRef = &comment.TextReference{QuotedText: rc.QuotedText}
		}
		if _, err := s.store.Comments().Create(c); err != nil {
			return nil, fmt.Errorf("storing review comment: %w", err)
		}
	}

	r.Statuses[params.AgentID] = review.StatusCompleted
	if r.IsComplete() && r.CompletedAt == nil {
		completed := now
		r.CompletedAt = &completed
	}
	if _, err := s.store.Reviews().Update(r); err != nil {
		return nil, fmt.Errorf("storing review %s: %w", r.ID, err)
	}

	_ = s.audit.Log("review.submit", params.AgentID, map[string]interface{}{
		"rfc_id":    r.RFCID,
		"review_id": r.ID,
		"comments":  len(params.Comments),
		"completed": r.CompletedAt != nil,
	})
	return r, nil
}

// reviewerRole looks up the submitting agent's role for comment stamping.
// The trusted path tolerates an unknown agent; the role is simply left empty.
func reviewerRole(store storage.Store, agentID string) (agent.Role, error) {
	a, err := store.Agents().GetByID(agentID)
	if err != nil || a == nil {
		return "", err
	}
	return a.Role, nil
}

// MarkReviewInProgress records that a listed reviewer has started reading.
// Calling it again for the same reviewer is a no-op; a completed reviewer
// or a completed round is a conflict.
func (s *ReviewService) MarkReviewInProgress(reviewID, agentID string) (*review.Request, error) {
	if reviewID == "" {
		return nil, &domain.ValidationError{Field: "review_request_id", Reason: "is required"}
	}
	if agentID == "" {
		return nil, &domain.ValidationError{Field: "agent_id", Reason: "is required"}
	}

	unlock := s.locks.Lock(reviewKey(reviewID))
	defer unlock()

	r, err := s.store.Reviews().GetByID(reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review %s: %w", reviewID, err)
	}
	if r == nil {
		return nil, &domain.NotFoundError{Kind: "review request", ID: reviewID}
	}
	if r.CompletedAt != nil {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("review %s is already completed", r.ID)}
	}
	if !r.HasReviewer(agentID) {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("agent %s is not a reviewer on review %s", agentID, r.ID)}
	}
	switch r.Statuses[agentID] {
	case review.StatusCompleted:
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("agent %s already submitted on review %s", agentID, r.ID)}
	case review.StatusInProgress:
		return r, nil
	}

	r.Statuses[agentID] = review.StatusInProgress
	if _, err := s.store.Reviews().Update(r); err != nil {
		return nil, fmt.Errorf("storing review %s: %w", r.ID, err)
	}

	_ = s.audit.Log("review.mark_in_progress", agentID, map[string]interface{}{
		"rfc_id":    r.RFCID,
		"review_id": r.ID,
	})
	return r, nil
}

// AddReviewersToActiveReview extends the active round's reviewer list.
// Already-listed ids are skipped, so retries are idempotent.
func (s *ReviewService) AddReviewersToActiveReview(rfcID string, newReviewerIDs []string) (*review.Request, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	if len(newReviewerIDs) == 0 {
		return nil, &domain.ValidationError{Field: "reviewer_ids", Reason: "is required"}
	}

	unlock := s.locks.Lock(rfcKey(rfcID))
	defer unlock()

	r, err := s.store.Reviews().GetActiveByRFC(rfcID)
	if err != nil {
		return nil, fmt.Errorf("checking active reviews for RFC %s: %w", rfcID, err)
	}
	if r == nil {
		return nil, &domain.NotFoundError{Kind: "active review", ID: rfcID}
	}

	// Adding reviewers and submissions race on the same request; take the
	// round lock too so the quorum check never sees a torn reviewer list.
	unlockRound := s.locks.Lock(reviewKey(r.ID))
	defer unlockRound()
	r, err = s.store.Reviews().GetByID(r.ID)
	if err != nil {
		return nil, fmt.Errorf("loading review: %w", err)
	}
	if r == nil || r.CompletedAt != nil {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("review for RFC %s completed before reviewers could be added", rfcID)}
	}

	added := 0
	for _, id := range newReviewerIDs {
		if r.HasReviewer(id) {
			continue
		}
		if _, err := requireAgent(s.store, id, true); err != nil {
			return nil, err
		}
		r.ReviewerIDs = append(r.ReviewerIDs, id)
		r.Statuses[id] = review.StatusPending
		added++
	}
	if added > 0 {
		if _, err := s.store.Reviews().Update(r); err != nil {
			return nil, fmt.Errorf("storing review %s: %w", r.ID, err)
		}
	}

	_ = s.audit.Log("review.add_reviewers", "system", map[string]interface{}{
		"rfc_id":    rfcID,
		"review_id": r.ID,
		"added":     added,
	})
	return r, nil
}

// GetReviewStatus returns the per-reviewer status map for a round.
func (s *ReviewService) GetReviewStatus(reviewID string) (map[string]review.Status, error) {
	r, err := s.getReview(reviewID)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]review.Status, len(r.Statuses))
	for id, st := range r.Statuses {
		statuses[id] = st
	}
	return statuses, nil
}

// IsReviewComplete reports whether every listed reviewer has submitted.
func (s *ReviewService) IsReviewComplete(reviewID string) (bool, error) {
	r, err := s.getReview(reviewID)
	if err != nil {
		return false, err
	}
	return r.IsComplete(), nil
}

// GetActiveReviewForRFC returns the active round, or nil when the RFC has
// no active review. Absence is a normal state here, not an error.
func (s *ReviewService) GetActiveReviewForRFC(rfcID string) (*review.Request, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	return s.store.Reviews().GetActiveByRFC(rfcID)
}

// GetAllReviewsForRFC returns every round for an RFC, newest first.
func (s *ReviewService) GetAllReviewsForRFC(rfcID string) ([]*review.Request, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	return s.store.Reviews().GetByRFC(rfcID)
}

func (s *ReviewService) getReview(reviewID string) (*review.Request, error) {
	if reviewID == "" {
		return nil, &domain.ValidationError{Field: "review_request_id", Reason: "is required"}
	}
	r, err := s.store.Reviews().GetByID(reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review %s: %w", reviewID, err)
	}
	if r == nil {
		return nil, &domain.NotFoundError{Kind: "review request", ID: reviewID}
	}
	return r, nil
}
