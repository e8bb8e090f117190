package storage

import (
	"time"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

// Stores hand out copies so callers can never mutate persisted state in
// place; every change has to come back through Update.

func cloneDocument(d *rfc.Document) *rfc.Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneComment(c *comment.Comment) *comment.Comment {
	if c == nil {
		return nil
	}
	out := *c
	if c.TextRef != nil {
		ref := *c.TextRef
		if c.TextRef.LineNumber != nil {
			line := *c.TextRef.LineNumber
			ref.LineNumber = &line
		}
		if c.TextRef.Span != nil {
			span := *c.TextRef.Span
			ref.Span = &span
		}
		out.TextRef = &ref
	}
	out.ResolvedAt = cloneTime(c.ResolvedAt)
	out.DismissedAt = cloneTime(c.DismissedAt)
	return &out
}

func cloneReview(r *review.Request) *review.Request {
	if r == nil {
		return nil
	}
	out := *r
	out.ReviewerIDs = append([]string(nil), r.ReviewerIDs...)
	out.Statuses = make(map[string]review.Status, len(r.Statuses))
	for id, s := range r.Statuses {
		out.Statuses[id] = s
	}
	out.Deadline = cloneTime(r.Deadline)
	out.CompletedAt = cloneTime(r.CompletedAt)
	return &out
}

func cloneAgent(a *agent.Agent) *agent.Agent {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
