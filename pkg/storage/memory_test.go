package storage

import (
	"testing"
	"time"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

func doc(id string, version int) *rfc.Document {
	now := time.Now()
	return &rfc.Document{
		ID:        id,
		Version:   version,
		Status:    rfc.StatusDraft,
		Title:     "t",
		Content:   "c",
		AuthorID:  "author-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryDocumentVersions(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Documents().Create(doc("rfc-1", 1)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	v2 := doc("rfc-1", 2)
	v2.Content = "updated"
	if _, err := s.Documents().Update(v2); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	cur, err := s.Documents().GetByID("rfc-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if cur.Version != 2 || cur.Content != "updated" {
		t.Errorf("current = v%d %q, want the newest version", cur.Version, cur.Content)
	}

	old, err := s.Documents().GetByVersion("rfc-1", 1)
	if err != nil {
		t.Fatalf("GetByVersion failed: %v", err)
	}
	if old == nil || old.Content != "c" {
		t.Errorf("historical version lost: %+v", old)
	}

	missing, err := s.Documents().GetByVersion("rfc-1", 9)
	if err != nil || missing != nil {
		t.Errorf("absent version = (%v, %v), want (nil, nil)", missing, err)
	}
	gone, err := s.Documents().GetByID("rfc-2")
	if err != nil || gone != nil {
		t.Errorf("absent document = (%v, %v), want (nil, nil)", gone, err)
	}
}

func TestMemoryDocumentIsolation(t *testing.T) {
	s := NewMemoryStore()
	original := doc("rfc-1", 1)
	if _, err := s.Documents().Create(original); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Mutating what callers hold must not leak into the store.
	original.Content = "mutated after create"
	got, err := s.Documents().GetByID("rfc-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Content != "c" {
		t.Error("store shares memory with the caller's document")
	}
	got.Content = "mutated after read"
	again, _ := s.Documents().GetByID("rfc-1")
	if again.Content != "c" {
		t.Error("store handed out its internal document")
	}
}

func TestMemoryDocumentList(t *testing.T) {
	s := NewMemoryStore()
	a := doc("rfc-a", 1)
	b := doc("rfc-b", 1)
	b.Status = rfc.StatusInReview
	b.AuthorID = "author-2"
	if _, err := s.Documents().Create(a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Documents().Create(b); err != nil {
		t.Fatal(err)
	}

	all, err := s.Documents().List(rfc.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "rfc-b" || all[1].ID != "rfc-a" {
		t.Errorf("List order = %v, want newest first", []string{all[0].ID, all[1].ID})
	}

	inReview := rfc.StatusInReview
	filtered, err := s.Documents().List(rfc.ListFilter{Status: &inReview, AuthorID: "author-2"})
	if err != nil {
		t.Fatalf("List(filter) failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "rfc-b" {
		t.Errorf("filtered = %d docs", len(filtered))
	}
}

func newComment(id, rfcID, parentID string) *comment.Comment {
	return &comment.Comment{
		ID:         id,
		RFCID:      rfcID,
		RFCVersion: 1,
		AgentID:    "agent-1",
		AgentRole:  agent.RoleBackend,
		Type:       comment.TypeDocumentLevel,
		Content:    "c",
		Status:     comment.StatusOpen,
		ParentID:   parentID,
		CreatedAt:  time.Now(),
	}
}

func TestMemoryCommentsByRFC(t *testing.T) {
	s := NewMemoryStore()
	for _, c := range []*comment.Comment{
		newComment("c1", "rfc-1", ""),
		newComment("c2", "rfc-1", ""),
		newComment("c3", "rfc-2", ""),
	} {
		if _, err := s.Comments().Create(c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	resolved := newComment("c2", "rfc-1", "")
	resolved.Status = comment.StatusResolved
	if _, err := s.Comments().Update(resolved); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all, err := s.Comments().GetByRFC("rfc-1", nil)
	if err != nil {
		t.Fatalf("GetByRFC failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "c1" || all[1].ID != "c2" {
		t.Errorf("GetByRFC = %d comments, want creation order c1,c2", len(all))
	}

	open := comment.StatusOpen
	openOnly, err := s.Comments().GetByRFC("rfc-1", &open)
	if err != nil {
		t.Fatalf("GetByRFC(open) failed: %v", err)
	}
	if len(openOnly) != 1 || openOnly[0].ID != "c1" {
		t.Errorf("open filter = %d comments", len(openOnly))
	}
}

func TestMemoryCommentThread(t *testing.T) {
	s := NewMemoryStore()
	// root -> (r1, r2), r1 -> nested
	for _, c := range []*comment.Comment{
		newComment("root", "rfc-1", ""),
		newComment("r1", "rfc-1", "root"),
		newComment("r2", "rfc-1", "root"),
		newComment("nested", "rfc-1", "r1"),
	} {
		if _, err := s.Comments().Create(c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		start string
		want  []string
	}{
		{"from root", "root", []string{"root", "r1", "r2", "nested"}},
		{"from mid", "r1", []string{"root", "r1", "r2", "nested"}},
		{"from leaf", "nested", []string{"root", "r1", "r2", "nested"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread, err := s.Comments().GetThread(tt.start)
			if err != nil {
				t.Fatalf("GetThread failed: %v", err)
			}
			if len(thread) != len(tt.want) {
				t.Fatalf("thread len = %d, want %d", len(thread), len(tt.want))
			}
			for i, c := range thread {
				if c.ID != tt.want[i] {
					t.Errorf("thread[%d] = %s, want %s", i, c.ID, tt.want[i])
				}
			}
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		thread, err := s.Comments().GetThread("ghost")
		if err != nil || len(thread) != 0 {
			t.Errorf("GetThread(ghost) = (%d, %v), want empty", len(thread), err)
		}
	})

	t.Run("dangling parent", func(t *testing.T) {
		orphan := newComment("orphan", "rfc-1", "deleted-elsewhere")
		if _, err := s.Comments().Create(orphan); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		thread, err := s.Comments().GetThread("orphan")
		if err != nil {
			t.Fatalf("GetThread failed: %v", err)
		}
		if len(thread) != 1 || thread[0].ID != "orphan" {
			t.Errorf("orphan thread = %d comments, want just the orphan", len(thread))
		}
	})
}

func newReview(id, rfcID string, completed bool) *review.Request {
	r := &review.Request{
		ID:          id,
		RFCID:       rfcID,
		RFCVersion:  1,
		RequestedBy: "author-1",
		ReviewerIDs: []string{"a"},
		Statuses:    map[string]review.Status{"a": review.StatusPending},
		CreatedAt:   time.Now(),
	}
	if completed {
		now := time.Now()
		r.Statuses["a"] = review.StatusCompleted
		r.CompletedAt = &now
	}
	return r
}

func TestMemoryReviews(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Reviews().Create(newReview("rev-1", "rfc-1", true)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Reviews().Create(newReview("rev-2", "rfc-1", false)); err != nil {
		t.Fatal(err)
	}

	active, err := s.Reviews().GetActiveByRFC("rfc-1")
	if err != nil {
		t.Fatalf("GetActiveByRFC failed: %v", err)
	}
	if active == nil || active.ID != "rev-2" {
		t.Errorf("active = %+v, want rev-2", active)
	}

	all, err := s.Reviews().GetByRFC("rfc-1")
	if err != nil {
		t.Fatalf("GetByRFC failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "rev-2" || all[1].ID != "rev-1" {
		t.Error("expected newest-first review listing")
	}

	// Stored requests are isolated from caller mutations.
	active.Statuses["a"] = review.StatusCompleted
	fresh, _ := s.Reviews().GetByID("rev-2")
	if fresh.Statuses["a"] != review.StatusPending {
		t.Error("store shares the statuses map with callers")
	}

	none, err := s.Reviews().GetActiveByRFC("rfc-9")
	if err != nil || none != nil {
		t.Errorf("no rounds = (%v, %v), want (nil, nil)", none, err)
	}
}

func TestMemoryAgents(t *testing.T) {
	s := NewMemoryStore()
	a := &agent.Agent{ID: "a1", Role: agent.RoleLead, Name: "lead", CreatedAt: time.Now()}
	b := &agent.Agent{ID: "a2", Role: agent.RoleBackend, Name: "be", CreatedAt: time.Now()}
	if _, err := s.Agents().Create(a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Agents().Create(b); err != nil {
		t.Fatal(err)
	}

	got, err := s.Agents().GetByID("a1")
	if err != nil || got == nil || got.Name != "lead" {
		t.Errorf("GetByID = (%+v, %v)", got, err)
	}

	list, err := s.Agents().List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a1" || list[1].ID != "a2" {
		t.Error("expected creation-order agent listing")
	}
}
