package application

import (
	"strings"
	"time"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// TemplateData is the document metadata handed to a TemplateFunc.
type TemplateData struct {
	Title       string
	Description string
	Author      string
	Status      string
	Created     time.Time
}

// TemplateFunc renders initial RFC content from metadata and section names.
// Rendering is injected; the core never hardcodes a document format.
type TemplateFunc func(data TemplateData, sections []string) string

// CreateRFCFromTemplateParams creates an RFC with rendered initial content.
type CreateRFCFromTemplateParams struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Author         string   `json:"author" validate:"required"`
	RequestingUser string   `json:"requesting_user" validate:"required"`
	Sections       []string `json:"sections"`
}

// Facade is the single entry point over the four services. Transports
// (MCP, CLI) talk to the Facade only; services never import each other.
type Facade struct {
	store    storage.Store
	audit    domain.AuditLogger
	template TemplateFunc

	agents    *AgentService
	documents *DocumentService
	comments  *CommentService
	reviews   *ReviewService
}

// Option configures a Facade.
type Option func(*Facade)

// WithStore injects the persistence backend. Defaults to in-memory.
func WithStore(store storage.Store) Option {
	return func(f *Facade) { f.store = store }
}

// WithAuditLogger injects the audit sink. Defaults to a no-op.
func WithAuditLogger(audit domain.AuditLogger) Option {
	return func(f *Facade) { f.audit = audit }
}

// WithTemplate injects the content renderer used by CreateRFCFromTemplate.
func WithTemplate(fn TemplateFunc) Option {
	return func(f *Facade) { f.template = fn }
}

// New builds a Facade with the given options.
func New(opts ...Option) *Facade {
	f := &Facade{
		store:    storage.NewMemoryStore(),
		audit:    domain.NopAuditLogger{},
		template: DefaultTemplate,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.agents = NewAgentService(f.store, f.audit)
	f.documents = NewDocumentService(f.store, f.audit)
	f.comments = NewCommentService(f.store, f.audit)
	f.reviews = NewReviewService(f.store, f.audit)
	return f
}

// DefaultTemplate renders a minimal markdown skeleton: a title header, the
// description, then one empty section per name.
func DefaultTemplate(data TemplateData, sections []string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(data.Title)
	b.WriteString("\n")
	if data.Description != "" {
		b.WriteString("\n")
		b.WriteString(data.Description)
		b.WriteString("\n")
	}
	for _, section := range sections {
		b.WriteString("\n## ")
		b.WriteString(section)
		b.WriteString("\n\nTBD\n")
	}
	return b.String()
}

// CreateRFCFromTemplate renders initial content via the configured template
// and creates the document through the normal creation path.
func (f *Facade) CreateRFCFromTemplate(params CreateRFCFromTemplateParams) (*rfc.Document, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	content := f.template(TemplateData{
		Title:       params.Title,
		Description: params.Description,
		Author:      params.Author,
		Status:      string(rfc.StatusDraft),
		Created:     time.Now(),
	}, params.Sections)
	return f.documents.CreateRFC(CreateRFCParams{
		Title:          params.Title,
		Content:        content,
		Author:         params.Author,
		RequestingUser: params.RequestingUser,
	})
}

// Documents.

func (f *Facade) CreateRFC(params CreateRFCParams) (*rfc.Document, error) {
	return f.documents.CreateRFC(params)
}

func (f *Facade) GetRFC(rfcID string) (*rfc.Document, error) {
	return f.documents.GetRFC(rfcID)
}

func (f *Facade) GetRFCVersion(rfcID string, version int) (*rfc.Document, error) {
	return f.documents.GetRFCVersion(rfcID, version)
}

func (f *Facade) ListRFCs(filter rfc.ListFilter) ([]*rfc.Document, error) {
	return f.documents.ListRFCs(filter)
}

func (f *Facade) UpdateContent(rfcID, newContent string) (*rfc.Document, error) {
	return f.documents.UpdateContent(rfcID, newContent)
}

func (f *Facade) UpdateStatus(rfcID string, newStatus rfc.Status) (*rfc.Document, error) {
	return f.documents.UpdateStatus(rfcID, newStatus)
}

func (f *Facade) ReplaceString(params ReplaceStringParams) (*rfc.Document, error) {
	return f.documents.ReplaceString(params)
}

func (f *Facade) ValidateStringExists(rfcID, text string) (bool, error) {
	return f.documents.ValidateStringExists(rfcID, text)
}

// Comments.

func (f *Facade) AddComment(params AddCommentParams) (*comment.Comment, error) {
	return f.comments.AddComment(params)
}

func (f *Facade) ReplyToComment(params ReplyToCommentParams) (*comment.Comment, error) {
	return f.comments.ReplyToComment(params)
}

func (f *Facade) ResolveComment(commentID, resolverID string) (*comment.Comment, error) {
	return f.comments.ResolveComment(commentID, resolverID)
}

func (f *Facade) DismissComment(commentID, dismisserID string) (*comment.Comment, error) {
	return f.comments.DismissComment(commentID, dismisserID)
}

func (f *Facade) GetCommentsForRFC(rfcID string, status *comment.Status) ([]*comment.Comment, error) {
	return f.comments.GetCommentsForRFC(rfcID, status)
}

func (f *Facade) GetCommentThread(commentID string) ([]*comment.Comment, error) {
	return f.comments.GetCommentThread(commentID)
}

// Reviews.

func (f *Facade) RequestReview(params RequestReviewParams) (*review.Request, error) {
	return f.reviews.RequestReview(params)
}

func (f *Facade) SubmitReview(params SubmitReviewParams) (*review.Request, error) {
	return f.reviews.SubmitReview(params)
}

func (f *Facade) GetReviewStatus(reviewID string) (map[string]review.Status, error) {
	return f.reviews.GetReviewStatus(reviewID)
}

func (f *Facade) IsReviewComplete(reviewID string) (bool, error) {
	return f.reviews.IsReviewComplete(reviewID)
}

func (f *Facade) MarkReviewInProgress(reviewID, agentID string) (*review.Request, error) {
	return f.reviews.MarkReviewInProgress(reviewID, agentID)
}

func (f *Facade) GetActiveReviewForRFC(rfcID string) (*review.Request, error) {
	return f.reviews.GetActiveReviewForRFC(rfcID)
}

func (f *Facade) GetAllReviewsForRFC(rfcID string) ([]*review.Request, error) {
	return f.reviews.GetAllReviewsForRFC(rfcID)
}

func (f *Facade) AddReviewersToActiveReview(rfcID string, newReviewerIDs []string) (*review.Request, error) {
	return f.reviews.AddReviewersToActiveReview(rfcID, newReviewerIDs)
}

// Agents.

func (f *Facade) CreateAgent(params CreateAgentParams) (*agent.Agent, error) {
	return f.agents.CreateAgent(params)
}

func (f *Facade) GetAgent(id string) (*agent.Agent, error) {
	return f.agents.GetAgent(id)
}

func (f *Facade) ListAgents() ([]*agent.Agent, error) {
	return f.agents.ListAgents()
}
