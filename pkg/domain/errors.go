// Package domain holds the error taxonomy and audit contracts shared by
// every bounded context in rfc-master.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// so callers can branch with errors.Is without parsing messages.
var (
	// ErrValidation indicates a required input was missing or structurally invalid.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced entity or anchor text does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation is disallowed given current entity state.
	ErrConflict = errors.New("conflict")

	// ErrPermission indicates the acting agent lacks a required capability.
	ErrPermission = errors.New("permission denied")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is allows errors.Is to work with ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Kind string // "rfc", "comment", "review request", "agent"
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found: " + e.ID
}

// Is allows errors.Is to work with NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TextNotFoundError reports that an anchor string is absent from a document's
// content. Distinct from NotFoundError so callers can tell a stale entity id
// apart from a stale text anchor; both satisfy errors.Is(err, ErrNotFound).
type TextNotFoundError struct {
	RFCID string
	Text  string
}

func (e *TextNotFoundError) Error() string {
	return fmt.Sprintf("text %q not found in RFC %s", e.Text, e.RFCID)
}

// Is allows errors.Is to work with TextNotFoundError.
func (e *TextNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a state-dependent refusal (duplicate active review,
// double submission, resolving a non-open comment, past deadline).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// Is allows errors.Is to work with ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TransitionError reports an illegal document status transition, naming both states.
type TransitionError struct {
	RFCID string
	From  string
	To    string
}

func (e *TransitionError) Error() string {
	return "invalid status transition for RFC " + e.RFCID + ": " + e.From + " -> " + e.To
}

// Is allows errors.Is to work with TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrConflict
}

// PermissionError reports a missing capability on the acting agent.
type PermissionError struct {
	AgentID    string
	Capability string // "edit", "comment", "approve"
}

func (e *PermissionError) Error() string {
	return "agent " + e.AgentID + " lacks the " + e.Capability + " capability"
}

// Is allows errors.Is to work with PermissionError.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}
