// Package rfc defines the versioned RFC document at the center of the system.
package rfc

import (
	"fmt"
	"strings"
	"time"
)

// Document is one immutable version of an RFC. The document's logical
// identity (ID) spans all of its versions; the "current" view is always the
// highest version recorded for that ID.
type Document struct {
	ID                string    `json:"id" yaml:"id"`
	Version           int       `json:"version" yaml:"version"`
	Status            Status    `json:"status" yaml:"status"`
	Title             string    `json:"title" yaml:"title"`
	Content           string    `json:"content" yaml:"content"`
	AuthorID          string    `json:"author_id" yaml:"author_id"`
	RequestingUserID  string    `json:"requesting_user_id" yaml:"requesting_user_id"`
	PreviousVersionID string    `json:"previous_version_id,omitempty" yaml:"previous_version_id,omitempty"`
	CreatedAt         time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" yaml:"updated_at"`
}

// VersionRef renders the "{id}-v{version}" reference recorded on the
// successor version's PreviousVersionID.
func VersionRef(id string, version int) string {
	return fmt.Sprintf("%s-v%d", id, version)
}

// NextVersion builds the successor snapshot carrying newContent. The status
// and metadata are inherited; version increments by exactly one.
func (d *Document) NextVersion(newContent string, now time.Time) *Document {
	next := *d
	next.Version = d.Version + 1
	next.Content = newContent
	next.UpdatedAt = now
	next.PreviousVersionID = VersionRef(d.ID, d.Version)
	return &next
}

// ContainsText reports whether text is a literal substring of the content.
func (d *Document) ContainsText(text string) bool {
	return strings.Contains(d.Content, text)
}

// ReplaceFirst replaces the leftmost occurrence of oldText by raw character
// index. The caller must have verified oldText is present.
func (d *Document) ReplaceFirst(oldText, newText string) string {
	idx := strings.Index(d.Content, oldText)
	if idx < 0 {
		return d.Content
	}
	return d.Content[:idx] + newText + d.Content[idx+len(oldText):]
}

// ReplaceAll replaces every occurrence of oldText.
func (d *Document) ReplaceAll(oldText, newText string) string {
	return strings.ReplaceAll(d.Content, oldText, newText)
}

// ListFilter narrows ListRFCs results. All fields are optional and AND-combined.
type ListFilter struct {
	Status           *Status    `json:"status,omitempty"`
	AuthorID         string     `json:"author_id,omitempty"`
	RequestingUserID string     `json:"requesting_user_id,omitempty"`
	CreatedAfter     *time.Time `json:"created_after,omitempty"`
	CreatedBefore    *time.Time `json:"created_before,omitempty"`
}

// Matches reports whether the document satisfies every set filter field.
func (f ListFilter) Matches(d *Document) bool {
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.AuthorID != "" && d.AuthorID != f.AuthorID {
		return false
	}
	if f.RequestingUserID != "" && d.RequestingUserID != f.RequestingUserID {
		return false
	}
	if f.CreatedAfter != nil && !d.CreatedAt.After(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && !d.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}
