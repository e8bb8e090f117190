package application

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

func TestCreateRFC(t *testing.T) {
	f := newTestFacade(t)

	doc := mustRFC(t, f, "Service Mesh Rollout", "# Service Mesh Rollout\n\nProposal body.")

	if doc.ID == "" {
		t.Error("expected a generated id")
	}
	if doc.Version != 1 {
		t.Errorf("Version = %d, want 1", doc.Version)
	}
	if doc.Status != rfc.StatusDraft {
		t.Errorf("Status = %s, want draft", doc.Status)
	}
	if doc.PreviousVersionID != "" {
		t.Errorf("PreviousVersionID = %q, want empty", doc.PreviousVersionID)
	}
	if doc.AuthorID != "author-1" || doc.RequestingUserID != "user-1" {
		t.Errorf("attribution = (%q, %q), want (author-1, user-1)", doc.AuthorID, doc.RequestingUserID)
	}
}

func TestCreateRFCValidation(t *testing.T) {
	f := newTestFacade(t)

	tests := []struct {
		name   string
		params CreateRFCParams
	}{
		{"missing title", CreateRFCParams{Content: "c", Author: "a", RequestingUser: "u"}},
		{"missing content", CreateRFCParams{Title: "t", Author: "a", RequestingUser: "u"}},
		{"missing author", CreateRFCParams{Title: "t", Content: "c", RequestingUser: "u"}},
		{"missing requesting user", CreateRFCParams{Title: "t", Content: "c", Author: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.CreateRFC(tt.params)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateContentVersioning(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Versioned", "v1 content")

	v2, err := f.UpdateContent(doc.ID, "v2 content")
	if err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	if v2.Version != 2 {
		t.Errorf("Version = %d, want 2", v2.Version)
	}
	if want := doc.ID + "-v1"; v2.PreviousVersionID != want {
		t.Errorf("PreviousVersionID = %q, want %q", v2.PreviousVersionID, want)
	}

	// The old version stays retrievable unchanged.
	v1, err := f.GetRFCVersion(doc.ID, 1)
	if err != nil {
		t.Fatalf("GetRFCVersion(1) failed: %v", err)
	}
	if v1.Content != "v1 content" {
		t.Errorf("v1 content = %q, want original", v1.Content)
	}

	// GetRFC returns the newest version.
	cur, err := f.GetRFC(doc.ID)
	if err != nil {
		t.Fatalf("GetRFC failed: %v", err)
	}
	if cur.Version != 2 || cur.Content != "v2 content" {
		t.Errorf("current = v%d %q, want v2 \"v2 content\"", cur.Version, cur.Content)
	}
}

func TestUpdateContentMissingRFC(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.UpdateContent("nope", "content")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetRFCVersionNotFound(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Single", "content")

	_, err := f.GetRFCVersion(doc.ID, 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []rfc.Status
		attempt rfc.Status
		ok      bool
	}{
		{"draft to in_review", nil, rfc.StatusInReview, true},
		{"draft to rejected", nil, rfc.StatusRejected, true},
		{"draft to approved skips review", nil, rfc.StatusApproved, false},
		{"draft to superseded", nil, rfc.StatusSuperseded, false},
		{"in_review to approved", []rfc.Status{rfc.StatusInReview}, rfc.StatusApproved, true},
		{"in_review to rejected", []rfc.Status{rfc.StatusInReview}, rfc.StatusRejected, true},
		{"in_review back to draft", []rfc.Status{rfc.StatusInReview}, rfc.StatusDraft, true},
		{"in_review to superseded", []rfc.Status{rfc.StatusInReview}, rfc.StatusSuperseded, false},
		{"approved to superseded", []rfc.Status{rfc.StatusInReview, rfc.StatusApproved}, rfc.StatusSuperseded, true},
		{"approved back to draft", []rfc.Status{rfc.StatusInReview, rfc.StatusApproved}, rfc.StatusDraft, false},
		{"rejected reopens to draft", []rfc.Status{rfc.StatusRejected}, rfc.StatusDraft, true},
		{"rejected to approved", []rfc.Status{rfc.StatusRejected}, rfc.StatusApproved, false},
		{"superseded is terminal", []rfc.Status{rfc.StatusInReview, rfc.StatusApproved, rfc.StatusSuperseded}, rfc.StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFacade(t)
			doc := mustRFC(t, f, "Lifecycle", "content")
			for _, st := range tt.path {
				if _, err := f.UpdateStatus(doc.ID, st); err != nil {
					t.Fatalf("setup transition to %s failed: %v", st, err)
				}
			}

			updated, err := f.UpdateStatus(doc.ID, tt.attempt)
			if tt.ok {
				if err != nil {
					t.Fatalf("UpdateStatus(%s) failed: %v", tt.attempt, err)
				}
				if updated.Status != tt.attempt {
					t.Errorf("Status = %s, want %s", updated.Status, tt.attempt)
				}
				if updated.Version != 1 {
					t.Errorf("status change bumped version to %d", updated.Version)
				}
				return
			}
			if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("error = %v, want ErrConflict", err)
			}
			var te *domain.TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("error = %T, want *TransitionError", err)
			}
			if te.To != string(tt.attempt) {
				t.Errorf("To = %q, want %q", te.To, tt.attempt)
			}
			want := rfc.StatusDraft
			if len(tt.path) > 0 {
				want = tt.path[len(tt.path)-1]
			}
			if te.From != string(want) {
				t.Errorf("From = %q, want %q", te.From, want)
			}
		})
	}
}

func TestReplaceString(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Replace", "alpha beta alpha gamma")

	updated, err := f.ReplaceString(ReplaceStringParams{
		RFCID:   doc.ID,
		OldText: "alpha",
		NewText: "delta",
	})
	if err != nil {
		t.Fatalf("ReplaceString failed: %v", err)
	}
	if updated.Content != "delta beta alpha gamma" {
		t.Errorf("content = %q, want first occurrence replaced", updated.Content)
	}
	if updated.Version != 2 {
		t.Errorf("Version = %d, want 2", updated.Version)
	}

	all, err := f.ReplaceString(ReplaceStringParams{
		RFCID:      doc.ID,
		OldText:    "a",
		NewText:    "A",
		ReplaceAll: true,
	})
	if err != nil {
		t.Fatalf("ReplaceString(all) failed: %v", err)
	}
	if all.Content != "deltA betA AlphA gAmmA" {
		t.Errorf("content = %q, want all occurrences replaced", all.Content)
	}
}

func TestReplaceStringMissingText(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Replace", "stable content")

	_, err := f.ReplaceString(ReplaceStringParams{RFCID: doc.ID, OldText: "absent", NewText: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	var tnf *domain.TextNotFoundError
	if !errors.As(err, &tnf) {
		t.Fatalf("error = %T, want *TextNotFoundError", err)
	}

	// A failed replace must not create a version.
	cur, err := f.GetRFC(doc.ID)
	if err != nil {
		t.Fatalf("GetRFC failed: %v", err)
	}
	if cur.Version != 1 || cur.Content != "stable content" {
		t.Errorf("document mutated on failed replace: v%d %q", cur.Version, cur.Content)
	}
}

func TestValidateStringExists(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Anchors", "the quick brown fox")

	tests := []struct {
		name  string
		rfcID string
		text  string
		want  bool
	}{
		{"present", doc.ID, "quick brown", true},
		{"absent", doc.ID, "slow fox", false},
		{"case sensitive", doc.ID, "Quick", false},
		{"missing rfc reports false", "nope", "quick", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ValidateStringExists(tt.rfcID, tt.text)
			if err != nil {
				t.Fatalf("ValidateStringExists failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListRFCs(t *testing.T) {
	f := newTestFacade(t)
	first := mustRFC(t, f, "First", "a")
	second := mustRFC(t, f, "Second", "b")
	if _, err := f.UpdateStatus(second.ID, rfc.StatusInReview); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	all, err := f.ListRFCs(rfc.ListFilter{})
	if err != nil {
		t.Fatalf("ListRFCs failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Error("expected newest-first ordering")
	}

	inReview := rfc.StatusInReview
	filtered, err := f.ListRFCs(rfc.ListFilter{Status: &inReview})
	if err != nil {
		t.Fatalf("ListRFCs(status) failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != second.ID {
		t.Errorf("status filter returned %d docs", len(filtered))
	}
}

func TestConcurrentUpdateContent(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Contended", "v1")

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.UpdateContent(doc.ID, fmt.Sprintf("edit %d", i)); err != nil {
				t.Errorf("UpdateContent failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	cur, err := f.GetRFC(doc.ID)
	if err != nil {
		t.Fatalf("GetRFC failed: %v", err)
	}
	if cur.Version != 1+writers {
		t.Errorf("Version = %d, want %d", cur.Version, 1+writers)
	}
}
