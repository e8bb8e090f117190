// Package comment defines feedback attached to RFC documents, either
// anchored to an exact quoted substring or floating at document level.
package comment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
)

// Type distinguishes anchored from floating comments.
type Type string

const (
	TypeInline        Type = "inline"
	TypeDocumentLevel Type = "document_level"
)

// IsValid returns true if the type is a known comment type.
func (t Type) IsValid() bool {
	return t == TypeInline || t == TypeDocumentLevel
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// ParseType parses a string into a Type.
func ParseType(s string) (Type, error) {
	typ := Type(s)
	if !typ.IsValid() {
		return "", fmt.Errorf("invalid comment type: %s", s)
	}
	return typ, nil
}

// Status is the lifecycle state of a comment. Comments transition out of
// open exactly once and are never deleted.
type Status string

const (
	StatusOpen      Status = "open"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// IsValid returns true if the status is a known comment status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusResolved, StatusDismissed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid comment status: %s", s)
	}
	return status, nil
}

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown statuses.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// CharSpan is an optional character range within the quoted text's line.
type CharSpan struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// TextReference anchors an inline comment to an exact quoted substring of
// the document content, with optional line and character-span hints.
type TextReference struct {
	QuotedText string    `json:"quoted_text" yaml:"quoted_text"`
	LineNumber *int      `json:"line_number,omitempty" yaml:"line_number,omitempty"`
	Span       *CharSpan `json:"span,omitempty" yaml:"span,omitempty"`
}

// Comment is one piece of feedback on an RFC. RFCVersion records the
// document version the comment was made against, which for replies is
// inherited from the parent rather than re-resolved.
type Comment struct {
	ID          string         `json:"id" yaml:"id"`
	RFCID       string         `json:"rfc_id" yaml:"rfc_id"`
	RFCVersion  int            `json:"rfc_version" yaml:"rfc_version"`
	AgentID     string         `json:"agent_id" yaml:"agent_id"`
	AgentRole   agent.Role     `json:"agent_role" yaml:"agent_role"`
	Type        Type           `json:"type" yaml:"type"`
	Content     string         `json:"content" yaml:"content"`
	Status      Status         `json:"status" yaml:"status"`
	TextRef     *TextReference `json:"text_ref,omitempty" yaml:"text_ref,omitempty"`
	ParentID    string         `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
	ResolvedBy  string         `json:"resolved_by,omitempty" yaml:"resolved_by,omitempty"`
	DismissedAt *time.Time     `json:"dismissed_at,omitempty" yaml:"dismissed_at,omitempty"`
	DismissedBy string         `json:"dismissed_by,omitempty" yaml:"dismissed_by,omitempty"`
}

// IsOpen reports whether the comment can still be resolved or dismissed.
func (c *Comment) IsOpen() bool {
	return c.Status == StatusOpen
}
