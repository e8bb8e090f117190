package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// CommentService manages comments and threads. Inline comments are anchored
// by literal quoted text verified against the document's current content at
// creation time; anchors are never revalidated after later edits.
type CommentService struct {
	store storage.Store
	audit domain.AuditLogger
	locks *lockTable
}

func NewCommentService(store storage.Store, audit domain.AuditLogger) *CommentService {
	return &CommentService{store: store, audit: audit, locks: newLockTable()}
}

// AddComment creates a comment on the RFC's current version. The acting
// agent must exist and hold the comment capability.
func (s *CommentService) AddComment(params AddCommentParams) (*comment.Comment, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if !params.CommentType.IsValid() {
		return nil, &domain.ValidationError{Field: "comment_type", Reason: fmt.Sprintf("unknown type %q", string(params.CommentType))}
	}

	doc, err := s.store.Documents().GetByID(params.RFCID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", params.RFCID, err)
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: params.RFCID}
	}

	actor, err := requireAgent(s.store, params.AgentID, true)
	if err != nil {
		return nil, err
	}
	role := params.AgentRole
	if role == "" {
		role = actor.Role
	} else if !role.IsValid() {
		return nil, &domain.ValidationError{Field: "agent_role", Reason: fmt.Sprintf("unknown role %q", string(role))}
	}

	var ref *comment.TextReference
	if params.CommentType == comment.TypeInline {
		if params.QuotedText == "" {
			return nil, &domain.ValidationError{Field: "quoted_text", Reason: "is required for inline comments"}
		}
		if !doc.ContainsText(params.QuotedText) {
			return nil, &domain.TextNotFoundError{RFCID: params.RFCID, Text: params.QuotedText}
		}
		ref = &comment.TextReference{
			QuotedText: params.QuotedText,
			LineNumber: params.LineNumber,
			Span:       params.Span,
		}
	}

	c := &comment.Comment{
		ID:         uuid.NewString(),
		RFCID:      params.RFCID,
		RFCVersion: doc.Version,
		AgentID:    params.AgentID,
		AgentRole:  role,
		Type:       params.CommentType,
		Content:    params.Content,
		Status:     comment.StatusOpen,
		TextRef:    ref,
		CreatedAt:  time.Now(),
	}
	if _, err := s.store.Comments().Create(c); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	_ = s.audit.Log("comment.add", params.AgentID, map[string]interface{}{
		"rfc_id":     params.RFCID,
		"comment_id": c.ID,
		"type":       string(c.Type),
	})
	return c, nil
}

// ReplyToComment threads a reply under an existing comment. Replies are
// always document-level and inherit the parent's RFC version even when the
// document has since moved on.
func (s *CommentService) ReplyToComment(params ReplyToCommentParams) (*comment.Comment, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	parent, err := s.store.Comments().GetByID(params.ParentCommentID)
	if err != nil {
		return nil, fmt.Errorf("loading comment %s: %w", params.ParentCommentID, err)
	}
	if parent == nil {
		return nil, &domain.NotFoundError{Kind: "comment", ID: params.ParentCommentID}
	}

	actor, err := requireAgent(s.store, params.AgentID, true)
	if err != nil {
		return nil, err
	}

	c := &comment.Comment{
		ID:         uuid.NewString(),
		RFCID:      parent.RFCID,
		RFCVersion: parent.RFCVersion,
		AgentID:    params.AgentID,
		AgentRole:  actor.Role,
		Type:       comment.TypeDocumentLevel,
		Content:    params.Content,
		Status:     comment.StatusOpen,
		ParentID:   parent.ID,
		CreatedAt:  time.Now(),
	}
	if _, err := s.store.Comments().Create(c); err != nil {
		return nil, fmt.Errorf("creating reply: %w", err)
	}

	_ = s.audit.Log("comment.reply", params.AgentID, map[string]interface{}{
		"rfc_id":     c.RFCID,
		"comment_id": c.ID,
		"parent_id":  parent.ID,
	})
	return c, nil
}

// ResolveComment marks an open comment resolved. Only open comments may be
// resolved; resolution is terminal.
func (s *CommentService) ResolveComment(commentID, resolverID string) (*comment.Comment, error) {
	return s.close(commentID, resolverID, comment.StatusResolved, "comment.resolve")
}

// DismissComment marks an open comment dismissed.
func (s *CommentService) DismissComment(commentID, dismisserID string) (*comment.Comment, error) {
	return s.close(commentID, dismisserID, comment.StatusDismissed, "comment.dismiss")
}

func (s *CommentService) close(commentID, actorID string, target comment.Status, action string) (*comment.Comment, error) {
	if commentID == "" {
		return nil, &domain.ValidationError{Field: "comment_id", Reason: "is required"}
	}
	if actorID == "" {
		return nil, &domain.ValidationError{Field: "agent_id", Reason: "is required"}
	}

	if _, err := requireAgent(s.store, actorID, false); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(commentID)
	defer unlock()

	c, err := s.store.Comments().GetByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("loading comment %s: %w", commentID, err)
	}
	if c == nil {
		return nil, &domain.NotFoundError{Kind: "comment", ID: commentID}
	}
	if !c.IsOpen() {
		return nil, &domain.ConflictError{Reason: fmt.Sprintf("comment %s is already %s", commentID, c.Status)}
	}

	now := time.Now()
	c.Status = target
	switch target {
	case comment.StatusResolved:
		c.ResolvedAt = &now
		c.ResolvedBy = actorID
	case comment.StatusDismissed:
		c.DismissedAt = &now
		c.DismissedBy = actorID
	}
	if _, err := s.store.Comments().Update(c); err != nil {
		return nil, fmt.Errorf("storing comment %s: %w", commentID, err)
	}

	_ = s.audit.Log(action, actorID, map[string]interface{}{
		"rfc_id":     c.RFCID,
		"comment_id": c.ID,
	})
	return c, nil
}

// GetCommentsForRFC returns comments on an RFC in creation order, optionally
// filtered by status.
func (s *CommentService) GetCommentsForRFC(rfcID string, status *comment.Status) ([]*comment.Comment, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	if status != nil && !status.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", string(*status))}
	}
	return s.store.Comments().GetByRFC(rfcID, status)
}

// GetCommentThread returns the full thread containing commentID, root first,
// then descendants level by level in creation order.
func (s *CommentService) GetCommentThread(commentID string) ([]*comment.Comment, error) {
	if commentID == "" {
		return nil, &domain.ValidationError{Field: "comment_id", Reason: "is required"}
	}
	thread, err := s.store.Comments().GetThread(commentID)
	if err != nil {
		return nil, fmt.Errorf("loading thread for comment %s: %w", commentID, err)
	}
	if len(thread) == 0 {
		return nil, &domain.NotFoundError{Kind: "comment", ID: commentID}
	}
	return thread, nil
}
