package application

import (
	"errors"
	"testing"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
)

func TestAddDocumentLevelComment(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Commented", "body text")
	reviewer := mustAgent(t, f, agent.RoleBackend, "backend-bot")

	c, err := f.AddComment(AddCommentParams{
		RFCID:       doc.ID,
		AgentID:     reviewer.ID,
		CommentType: comment.TypeDocumentLevel,
		Content:     "overall this looks solid",
	})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if c.Status != comment.StatusOpen {
		t.Errorf("Status = %s, want open", c.Status)
	}
	if c.RFCVersion != 1 {
		t.Errorf("RFCVersion = %d, want 1", c.RFCVersion)
	}
	if c.AgentRole != agent.RoleBackend {
		t.Errorf("AgentRole = %s, want backend (defaulted from registry)", c.AgentRole)
	}
	if c.TextRef != nil {
		t.Error("document-level comment carries a text reference")
	}
}

func TestAddInlineComment(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Commented", "we shall use postgres for storage")
	reviewer := mustAgent(t, f, agent.RoleDatabase, "db-bot")

	line := 1
	c, err := f.AddComment(AddCommentParams{
		RFCID:       doc.ID,
		AgentID:     reviewer.ID,
		CommentType: comment.TypeInline,
		Content:     "consider a managed instance",
		QuotedText:  "postgres",
		LineNumber:  &line,
	})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if c.TextRef == nil || c.TextRef.QuotedText != "postgres" {
		t.Fatalf("TextRef = %+v, want quoted text anchor", c.TextRef)
	}
	if c.TextRef.LineNumber == nil || *c.TextRef.LineNumber != 1 {
		t.Error("line number hint not carried")
	}
}

func TestAddInlineCommentAnchorValidation(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Commented", "actual document body")
	reviewer := mustAgent(t, f, agent.RoleSecurity, "sec-bot")

	t.Run("missing quoted text", func(t *testing.T) {
		_, err := f.AddComment(AddCommentParams{
			RFCID:       doc.ID,
			AgentID:     reviewer.ID,
			CommentType: comment.TypeInline,
			Content:     "where is this anchored",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("anchor not in document", func(t *testing.T) {
		_, err := f.AddComment(AddCommentParams{
			RFCID:       doc.ID,
			AgentID:     reviewer.ID,
			CommentType: comment.TypeInline,
			Content:     "stale anchor",
			QuotedText:  "text that is not there",
		})
		var tnf *domain.TextNotFoundError
		if !errors.As(err, &tnf) {
			t.Fatalf("error = %T (%v), want *TextNotFoundError", err, err)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			t.Error("TextNotFoundError should match ErrNotFound")
		}
	})
}

func TestAddCommentPermission(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Guarded", "body")

	muted, err := f.CreateAgent(CreateAgentParams{
		Role:         agent.RoleFrontend,
		Name:         "observer",
		Capabilities: &agent.Capabilities{},
	})
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}

	_, err = f.AddComment(AddCommentParams{
		RFCID:       doc.ID,
		AgentID:     muted.ID,
		CommentType: comment.TypeDocumentLevel,
		Content:     "should be rejected",
	})
	if !errors.Is(err, domain.ErrPermission) {
		t.Errorf("error = %v, want ErrPermission", err)
	}
}

func TestReplyToComment(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Threaded", "anchor text here")
	author := mustAgent(t, f, agent.RoleBackend, "backend-bot")
	replier := mustAgent(t, f, agent.RoleLead, "lead-bot")

	parent, err := f.AddComment(AddCommentParams{
		RFCID:       doc.ID,
		AgentID:     author.ID,
		CommentType: comment.TypeInline,
		Content:     "inline parent",
		QuotedText:  "anchor text",
	})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	// Move the document on so the inherited version is observable.
	if _, err := f.UpdateContent(doc.ID, "rewritten body"); err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}

	reply, err := f.ReplyToComment(ReplyToCommentParams{
		ParentCommentID: parent.ID,
		AgentID:         replier.ID,
		Content:         "agreed",
	})
	if err != nil {
		t.Fatalf("ReplyToComment failed: %v", err)
	}
	if reply.Type != comment.TypeDocumentLevel {
		t.Errorf("reply Type = %s, want document_level regardless of parent type", reply.Type)
	}
	if reply.RFCVersion != parent.RFCVersion {
		t.Errorf("reply RFCVersion = %d, want parent's %d", reply.RFCVersion, parent.RFCVersion)
	}
	if reply.ParentID != parent.ID {
		t.Errorf("ParentID = %q, want %q", reply.ParentID, parent.ID)
	}
	if reply.TextRef != nil {
		t.Error("reply carries a text reference")
	}
}

func TestReplyToMissingComment(t *testing.T) {
	f := newTestFacade(t)
	replier := mustAgent(t, f, agent.RoleLead, "lead-bot")

	_, err := f.ReplyToComment(ReplyToCommentParams{
		ParentCommentID: "nope",
		AgentID:         replier.ID,
		Content:         "into the void",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveAndDismiss(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Resolved", "body")
	author := mustAgent(t, f, agent.RoleBackend, "backend-bot")
	lead := mustAgent(t, f, agent.RoleLead, "lead-bot")

	open := func() *comment.Comment {
		c, err := f.AddComment(AddCommentParams{
			RFCID:       doc.ID,
			AgentID:     author.ID,
			CommentType: comment.TypeDocumentLevel,
			Content:     "needs a decision",
		})
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		return c
	}

	t.Run("resolve", func(t *testing.T) {
		c := open()
		resolved, err := f.ResolveComment(c.ID, lead.ID)
		if err != nil {
			t.Fatalf("ResolveComment failed: %v", err)
		}
		if resolved.Status != comment.StatusResolved {
			t.Errorf("Status = %s, want resolved", resolved.Status)
		}
		if resolved.ResolvedAt == nil || resolved.ResolvedBy != lead.ID {
			t.Error("resolution metadata not recorded")
		}
	})

	t.Run("dismiss", func(t *testing.T) {
		c := open()
		dismissed, err := f.DismissComment(c.ID, lead.ID)
		if err != nil {
			t.Fatalf("DismissComment failed: %v", err)
		}
		if dismissed.Status != comment.StatusDismissed {
			t.Errorf("Status = %s, want dismissed", dismissed.Status)
		}
		if dismissed.DismissedAt == nil || dismissed.DismissedBy != lead.ID {
			t.Error("dismissal metadata not recorded")
		}
	})

	t.Run("closing twice conflicts", func(t *testing.T) {
		c := open()
		if _, err := f.ResolveComment(c.ID, lead.ID); err != nil {
			t.Fatalf("ResolveComment failed: %v", err)
		}
		if _, err := f.ResolveComment(c.ID, lead.ID); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("second resolve: error = %v, want ErrConflict", err)
		}
		if _, err := f.DismissComment(c.ID, lead.ID); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("dismiss after resolve: error = %v, want ErrConflict", err)
		}
	})
}

func TestGetCommentsForRFCStatusFilter(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Filtered", "body")
	author := mustAgent(t, f, agent.RoleBackend, "backend-bot")

	var ids []string
	for i := 0; i < 3; i++ {
		c, err := f.AddComment(AddCommentParams{
			RFCID:       doc.ID,
			AgentID:     author.ID,
			CommentType: comment.TypeDocumentLevel,
			Content:     "note",
		})
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		ids = append(ids, c.ID)
	}
	if _, err := f.ResolveComment(ids[1], author.ID); err != nil {
		t.Fatalf("ResolveComment failed: %v", err)
	}

	all, err := f.GetCommentsForRFC(doc.ID, nil)
	if err != nil {
		t.Fatalf("GetCommentsForRFC failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all comments len = %d, want 3", len(all))
	}

	open := comment.StatusOpen
	openOnly, err := f.GetCommentsForRFC(doc.ID, &open)
	if err != nil {
		t.Fatalf("GetCommentsForRFC(open) failed: %v", err)
	}
	if len(openOnly) != 2 {
		t.Errorf("open comments len = %d, want 2", len(openOnly))
	}
	for _, c := range openOnly {
		if c.ID == ids[1] {
			t.Error("resolved comment leaked through open filter")
		}
	}
}

func TestGetCommentThread(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Threaded", "body")
	a := mustAgent(t, f, agent.RoleBackend, "backend-bot")
	b := mustAgent(t, f, agent.RoleSecurity, "sec-bot")

	root, err := f.AddComment(AddCommentParams{
		RFCID: doc.ID, AgentID: a.ID, CommentType: comment.TypeDocumentLevel, Content: "root",
	})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	r1, err := f.ReplyToComment(ReplyToCommentParams{ParentCommentID: root.ID, AgentID: b.ID, Content: "first reply"})
	if err != nil {
		t.Fatalf("ReplyToComment failed: %v", err)
	}
	r2, err := f.ReplyToComment(ReplyToCommentParams{ParentCommentID: root.ID, AgentID: a.ID, Content: "second reply"})
	if err != nil {
		t.Fatalf("ReplyToComment failed: %v", err)
	}
	nested, err := f.ReplyToComment(ReplyToCommentParams{ParentCommentID: r1.ID, AgentID: a.ID, Content: "nested"})
	if err != nil {
		t.Fatalf("ReplyToComment failed: %v", err)
	}

	// Requesting from a leaf returns the whole thread, root first.
	thread, err := f.GetCommentThread(nested.ID)
	if err != nil {
		t.Fatalf("GetCommentThread failed: %v", err)
	}
	got := make([]string, len(thread))
	for i, c := range thread {
		got[i] = c.ID
	}
	want := []string{root.ID, r1.ID, r2.ID, nested.ID}
	if len(got) != len(want) {
		t.Fatalf("thread len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("thread[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGetCommentThreadSingle(t *testing.T) {
	f := newTestFacade(t)
	doc := mustRFC(t, f, "Lonely", "body")
	a := mustAgent(t, f, agent.RoleBackend, "backend-bot")

	c, err := f.AddComment(AddCommentParams{
		RFCID: doc.ID, AgentID: a.ID, CommentType: comment.TypeDocumentLevel, Content: "alone",
	})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	thread, err := f.GetCommentThread(c.ID)
	if err != nil {
		t.Fatalf("GetCommentThread failed: %v", err)
	}
	if len(thread) != 1 || thread[0].ID != c.ID {
		t.Errorf("thread = %d comments, want just the one", len(thread))
	}

	if _, err := f.GetCommentThread("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing comment: error = %v, want ErrNotFound", err)
	}
}
