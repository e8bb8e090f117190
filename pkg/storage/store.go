// Package storage defines the persistence seam for rfc-master and provides
// the in-memory and filesystem implementations. Stores do raw keyed CRUD
// plus collection indexes; domain invariants live in the services.
package storage

import (
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

// DocumentStore persists every version of every RFC document.
// Lookups return (nil, nil) when the entity is absent; services translate
// absence into their not-found errors.
type DocumentStore interface {
	// Create records the document's first version.
	Create(doc *rfc.Document) (*rfc.Document, error)
	// Update records a snapshot under its (ID, Version) pair. The current
	// view of a document is always its highest stored version.
	Update(doc *rfc.Document) (*rfc.Document, error)
	// GetByID returns the current (highest) version of the document.
	GetByID(id string) (*rfc.Document, error)
	// GetByVersion returns one historical snapshot.
	GetByVersion(id string, version int) (*rfc.Document, error)
	// List returns current versions matching the filter, newest first.
	List(filter rfc.ListFilter) ([]*rfc.Document, error)
}

// CommentStore persists comments and maintains the parent adjacency index
// used for thread reconstruction.
type CommentStore interface {
	Create(c *comment.Comment) (*comment.Comment, error)
	Update(c *comment.Comment) (*comment.Comment, error)
	GetByID(id string) (*comment.Comment, error)
	// GetByRFC returns comments on a document in creation order,
	// optionally narrowed to one status.
	GetByRFC(rfcID string, status *comment.Status) ([]*comment.Comment, error)
	// GetByParent returns direct replies in creation order.
	GetByParent(parentID string) ([]*comment.Comment, error)
	// GetThread returns the full ancestor-then-descendant chain for a
	// comment in creation order: the root is found by walking parent
	// pointers upward, descendants are gathered breadth-first from the
	// parent index, and a visited set tolerates malformed cycles.
	GetThread(commentID string) ([]*comment.Comment, error)
}

// ReviewStore persists review rounds.
type ReviewStore interface {
	Create(r *review.Request) (*review.Request, error)
	Update(r *review.Request) (*review.Request, error)
	GetByID(id string) (*review.Request, error)
	// GetByRFC returns all rounds for a document, newest first.
	GetByRFC(rfcID string) ([]*review.Request, error)
	// GetActiveByRFC returns the first round with no CompletedAt, or nil.
	GetActiveByRFC(rfcID string) (*review.Request, error)
}

// AgentStore persists agent records. Agents are immutable after creation.
type AgentStore interface {
	Create(a *agent.Agent) (*agent.Agent, error)
	GetByID(id string) (*agent.Agent, error)
	List() ([]*agent.Agent, error)
}

// Store bundles the four collections behind the injectable seam the facade
// accepts. Swapping in a persistent backend must not touch service logic.
type Store interface {
	Documents() DocumentStore
	Comments() CommentStore
	Reviews() ReviewStore
	Agents() AgentStore
}
