package rfc

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of an RFC document.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInReview   Status = "in_review"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusSuperseded Status = "superseded"
)

// validTransitions defines the allowed status transitions and their events.
// Map: currentStatus -> event -> targetStatus. Superseded is terminal.
var validTransitions = map[Status]map[string]Status{
	StatusDraft: {
		"submit": StatusInReview,
		"reject": StatusRejected,
	},
	StatusInReview: {
		"approve": StatusApproved,
		"reject":  StatusRejected,
		"revise":  StatusDraft,
	},
	StatusApproved: {
		"supersede": StatusSuperseded,
	},
	StatusRejected: {
		"reopen": StatusDraft,
	},
	StatusSuperseded: {},
}

// AllStatuses returns every valid RFC status.
func AllStatuses() []Status {
	return []Status{StatusDraft, StatusInReview, StatusApproved, StatusRejected, StatusSuperseded}
}

// IsValid returns true if the status is a known RFC status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusApproved, StatusRejected, StatusSuperseded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo returns true if a transition from the current status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	transitions, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range transitions {
		if t == target {
			return true
		}
	}
	return false
}

// EventTo returns the event that moves this status to the target, if one exists.
func (s Status) EventTo(target Status) (string, bool) {
	for event, t := range validTransitions[s] {
		if t == target {
			return event, true
		}
	}
	return "", false
}

// ValidTransitions returns all target statuses reachable from this status.
func (s Status) ValidTransitions() []Status {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}
	var targets []Status
	for _, t := range transitions {
		targets = append(targets, t)
	}
	return targets
}

// IsTerminal returns true if no transition leaves this status.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid RFC status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
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
