// Package application implements the rfc-master services and the facade
// composing them. Services own the domain invariants; storage stays dumb.
package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
)

// validate is shared across services; parameter structs declare their
// required fields via tags and failures surface as domain.ValidationError.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkParams runs struct validation and maps the first failure into the
// ValidationError kind so callers never see validator internals.
func checkParams(params interface{}) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "is required"
		if fe.Tag() != "required" {
			reason = fmt.Sprintf("failed '%s' constraint", fe.Tag())
		}
		return &domain.ValidationError{Field: fe.Field(), Reason: reason}
	}
	return &domain.ValidationError{Field: "params", Reason: err.Error()}
}

// CreateRFCParams creates a new RFC document. All four fields are required.
type CreateRFCParams struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	Author         string `json:"author" validate:"required"`
	RequestingUser string `json:"requesting_user" validate:"required"`
}

// ReplaceStringParams replaces oldText within the RFC's current content.
// NewText may be empty, which deletes the matched text.
type ReplaceStringParams struct {
	RFCID      string `json:"rfc_id" validate:"required"`
	OldText    string `json:"old_text" validate:"required"`
	NewText    string `json:"new_text"`
	ReplaceAll bool   `json:"replace_all"`
}

// AddCommentParams creates a comment on an RFC. For inline comments
// QuotedText must be a literal substring of the document's current content.
type AddCommentParams struct {
	RFCID       string            `json:"rfc_id" validate:"required"`
	AgentID     string            `json:"agent_id" validate:"required"`
	AgentRole   agent.Role        `json:"agent_role,omitempty"`
	CommentType comment.Type      `json:"comment_type" validate:"required"`
	Content     string            `json:"content" validate:"required"`
	QuotedText  string            `json:"quoted_text,omitempty"`
	LineNumber  *int              `json:"line_number,omitempty"`
	Span        *comment.CharSpan `json:"span,omitempty"`
}

// ReplyToCommentParams threads a reply under an existing comment.
type ReplyToCommentParams struct {
	ParentCommentID string `json:"parent_comment_id" validate:"required"`
	AgentID         string `json:"agent_id" validate:"required"`
	Content         string `json:"content" validate:"required"`
}

// RequestReviewParams opens a review round on an RFC.
type RequestReviewParams struct {
	RFCID       string     `json:"rfc_id" validate:"required"`
	RequestedBy string     `json:"requested_by" validate:"required"`
	ReviewerIDs []string   `json:"reviewer_ids" validate:"required,min=1,dive,required"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// ReviewComment is one comment carried along a review submission. These are
// persisted through the trusted bulk path, bypassing comment validation.
type ReviewComment struct {
	RFCID      string `json:"rfc_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
	QuotedText string `json:"quoted_text,omitempty"`
}

// SubmitReviewParams records one reviewer's submission. Comments may be
// empty: an empty submission still completes that reviewer's slot.
type SubmitReviewParams struct {
	ReviewRequestID string          `json:"review_request_id" validate:"required"`
	AgentID         string          `json:"agent_id" validate:"required"`
	Comments        []ReviewComment `json:"comments" validate:"dive"`
}

// CreateAgentParams registers a new agent. Capabilities defaults by role
// unless explicitly overridden.
type CreateAgentParams struct {
	Role         agent.Role          `json:"role" validate:"required"`
	Name         string              `json:"name" validate:"required"`
	Capabilities *agent.Capabilities `json:"capabilities,omitempty"`
}
