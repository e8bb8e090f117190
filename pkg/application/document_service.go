package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// DocumentService owns the RFC document lifecycle: creation, versioned
// content edits, and status transitions. Mutations on one RFC serialize
// through a per-id lock so concurrent edits never skip or reuse a version.
type DocumentService struct {
	store storage.Store
	audit domain.AuditLogger
	locks *lockTable
}

func NewDocumentService(store storage.Store, audit domain.AuditLogger) *DocumentService {
	return &DocumentService{store: store, audit: audit, locks: newLockTable()}
}

// CreateRFC creates a new document at version 1 in DRAFT.
func (s *DocumentService) CreateRFC(params CreateRFCParams) (*rfc.Document, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &rfc.Document{
		ID:               uuid.NewString(),
		Version:          1,
		Status:           rfc.StatusDraft,
		Title:            params.Title,
		Content:          params.Content,
		AuthorID:         params.Author,
		RequestingUserID: params.RequestingUser,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := s.store.Documents().Create(doc); err != nil {
		return nil, fmt.Errorf("creating RFC: %w", err)
	}

	_ = s.audit.Log("rfc.create", params.Author, map[string]interface{}{
		"rfc_id": doc.ID,
		"title":  doc.Title,
	})
	return doc, nil
}

// UpdateContent replaces the document content, producing a new version.
// Empty content is allowed; edits may legitimately empty a document.
func (s *DocumentService) UpdateContent(rfcID, newContent string) (*rfc.Document, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}

	unlock := s.locks.Lock(rfcID)
	defer unlock()
	return s.updateContentLocked(rfcID, newContent)
}

// updateContentLocked performs the versioned write. Callers hold the
// per-document lock.
func (s *DocumentService) updateContentLocked(rfcID, newContent string) (*rfc.Document, error) {
	cur, err := s.store.Documents().GetByID(rfcID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", rfcID, err)
	}
	if cur == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: rfcID}
	}

	next := cur.NextVersion(newContent, time.Now())
	if _, err := s.store.Documents().Update(next); err != nil {
		return nil, fmt.Errorf("storing RFC %s version %d: %w", rfcID, next.Version, err)
	}

	_ = s.audit.Log("rfc.update_content", "system", map[string]interface{}{
		"rfc_id":  rfcID,
		"version": next.Version,
	})
	return next, nil
}

// UpdateStatus transitions the document to newStatus. The version does not
// change; only content edits version.
func (s *DocumentService) UpdateStatus(rfcID string, newStatus rfc.Status) (*rfc.Document, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	if !newStatus.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", string(newStatus))}
	}

	unlock := s.locks.Lock(rfcID)
	defer unlock()

	cur, err := s.store.Documents().GetByID(rfcID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", rfcID, err)
	}
	if cur == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: rfcID}
	}

	event, ok := cur.Status.EventTo(newStatus)
	if !ok {
		return nil, &domain.TransitionError{RFCID: rfcID, From: string(cur.Status), To: string(newStatus)}
	}
	machine, err := rfc.NewStatusMachine(string(cur.Status), cur.ID)
	if err != nil {
		return nil, fmt.Errorf("building status machine for RFC %s: %w", rfcID, err)
	}
	if err := machine.Transition(event); err != nil {
		return nil, &domain.TransitionError{RFCID: rfcID, From: string(cur.Status), To: string(newStatus)}
	}

	from := cur.Status
	cur.Status = machine.CurrentStatus()
	cur.UpdatedAt = time.Now()
	if _, err := s.store.Documents().Update(cur); err != nil {
		return nil, fmt.Errorf("storing RFC %s: %w", rfcID, err)
	}

	_ = s.audit.Log("rfc.update_status", "system", map[string]interface{}{
		"rfc_id": rfcID,
		"from":   string(from),
		"to":     string(cur.Status),
	})
	return cur, nil
}

// ReplaceString edits the current content by literal substring replacement
// and writes the result as a new version. The match check and the write
// happen under the same lock, so the anchored text cannot move in between.
func (s *DocumentService) ReplaceString(params ReplaceStringParams) (*rfc.Document, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(params.RFCID)
	defer unlock()

	cur, err := s.store.Documents().GetByID(params.RFCID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", params.RFCID, err)
	}
	if cur == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: params.RFCID}
	}
	if !cur.ContainsText(params.OldText) {
		return nil, &domain.TextNotFoundError{RFCID: params.RFCID, Text: params.OldText}
	}

	var newContent string
	if params.ReplaceAll {
		newContent = cur.ReplaceAll(params.OldText, params.NewText)
	} else {
		newContent = cur.ReplaceFirst(params.OldText, params.NewText)
	}

	doc, err := s.updateContentLocked(params.RFCID, newContent)
	if err != nil {
		return nil, err
	}
	_ = s.audit.Log("rfc.replace_string", "system", map[string]interface{}{
		"rfc_id":      params.RFCID,
		"version":     doc.Version,
		"replace_all": params.ReplaceAll,
	})
	return doc, nil
}

// ValidateStringExists reports whether text occurs in the current content.
// A missing RFC reports false rather than an error.
func (s *DocumentService) ValidateStringExists(rfcID, text string) (bool, error) {
	if rfcID == "" {
		return false, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	doc, err := s.store.Documents().GetByID(rfcID)
	if err != nil {
		return false, fmt.Errorf("loading RFC %s: %w", rfcID, err)
	}
	if doc == nil {
		return false, nil
	}
	return doc.ContainsText(text), nil
}

// GetRFC returns the current (highest) version of the document.
func (s *DocumentService) GetRFC(rfcID string) (*rfc.Document, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	doc, err := s.store.Documents().GetByID(rfcID)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s: %w", rfcID, err)
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Kind: "rfc", ID: rfcID}
	}
	return doc, nil
}

// GetRFCVersion returns a specific historical version of the document.
func (s *DocumentService) GetRFCVersion(rfcID string, version int) (*rfc.Document, error) {
	if rfcID == "" {
		return nil, &domain.ValidationError{Field: "rfc_id", Reason: "is required"}
	}
	if version < 1 {
		return nil, &domain.ValidationError{Field: "version", Reason: "must be at least 1"}
	}
	doc, err := s.store.Documents().GetByVersion(rfcID, version)
	if err != nil {
		return nil, fmt.Errorf("loading RFC %s version %d: %w", rfcID, version, err)
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Kind: "rfc version", ID: rfc.VersionRef(rfcID, version)}
	}
	return doc, nil
}

// ListRFCs returns current versions of all documents matching the filter,
// newest first.
func (s *DocumentService) ListRFCs(filter rfc.ListFilter) ([]*rfc.Document, error) {
	return s.store.Documents().List(filter)
}
