// Package review defines multi-reviewer review rounds on RFC documents.
package review

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the per-reviewer progress inside a review request.
// in_progress is advisory; pending may jump straight to completed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// validTransitions defines the per-reviewer transitions. There is no
// transition out of completed.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

// IsValid returns true if the status is a known reviewer status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo returns true if a reviewer may move from this status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid review status: %s", s)
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

// Request is one round of multi-reviewer feedback collection on a document.
// Completion is derived, not stored as an independent enum: the round is
// complete exactly when every reviewer's status is completed, materialized
// once into CompletedAt.
type Request struct {
	ID          string            `json:"id" yaml:"id"`
	RFCID       string            `json:"rfc_id" yaml:"rfc_id"`
	RFCVersion  int               `json:"rfc_version" yaml:"rfc_version"`
	RequestedBy string            `json:"requested_by" yaml:"requested_by"`
	ReviewerIDs []string          `json:"reviewer_ids" yaml:"reviewer_ids"`
	Statuses    map[string]Status `json:"statuses" yaml:"statuses"`
	Deadline    *time.Time        `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	CreatedAt   time.Time         `json:"created_at" yaml:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// IsComplete reports whether every listed reviewer has completed.
// Quorum is ALL, not a majority threshold.
func (r *Request) IsComplete() bool {
	if len(r.ReviewerIDs) == 0 {
		return false
	}
	for _, id := range r.ReviewerIDs {
		if r.Statuses[id] != StatusCompleted {
			return false
		}
	}
	return true
}

// IsActive reports whether the round is still collecting reviews.
func (r *Request) IsActive() bool {
	return r.CompletedAt == nil
}

// HasReviewer reports whether id is among the listed reviewers.
func (r *Request) HasReviewer(id string) bool {
	for _, rid := range r.ReviewerIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// DeadlinePassed reports whether a deadline was set and now is past it.
func (r *Request) DeadlinePassed(now time.Time) bool {
	return r.Deadline != nil && now.After(*r.Deadline)
}
