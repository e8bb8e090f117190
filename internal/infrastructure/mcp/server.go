// Package mcp exposes the rfc-master facade as MCP tools so AI reviewer
// agents can drive the document lifecycle over stdio or HTTP. Every tool
// that acts on behalf of an agent takes the acting agent id as an explicit
// argument; there is no ambient identity.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/xeipuuv/gojsonschema"

	"github.com/anton-pt/rfc-master/pkg/application"
	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

type Server struct {
	mcpServer *mcp.Server
	facade    *application.Facade
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// friendlyErr surfaces domain error messages, which are written for end
// users, and hides everything else behind the fallback.
func friendlyErr(err error, fallback string) error {
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrPermission) {
		return fmt.Errorf("%s", err.Error())
	}
	return fmt.Errorf("%s", fallback)
}

func NewServer(facade *application.Facade) *Server {
	info := mcp.ServerInfo{
		Name:    "rfc-master",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("RFC Master MCP Server"),
			mcp.WithDescription("rfc-master manages versioned RFC documents, anchored comments, and multi-reviewer review rounds."),
			mcp.WithWebsiteURL("https://github.com/anton-pt/rfc-master"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Register agents first, then create RFCs, attach comments, and run review rounds. Pass your agent id explicitly on every acting tool."),
		),
		facade: facade,
	}

	s.registerTools()
	return s
}

type CreateRFCArgs struct {
	Title          string `json:"title" jsonschema:"description=Title of the RFC"`
	Content        string `json:"content" jsonschema:"description=Full initial markdown content"`
	Author         string `json:"author" jsonschema:"description=Author identity recorded on the document"`
	RequestingUser string `json:"requesting_user" jsonschema:"description=Human user the RFC is created for"`
}

type CreateRFCFromTemplateArgs struct {
	Title          string   `json:"title" jsonschema:"description=Title of the RFC"`
	Description    string   `json:"description,omitempty" jsonschema:"description=Short summary rendered under the title"`
	Author         string   `json:"author" jsonschema:"description=Author identity recorded on the document"`
	RequestingUser string   `json:"requesting_user" jsonschema:"description=Human user the RFC is created for"`
	Sections       []string `json:"sections,omitempty" jsonschema:"description=Section headings to scaffold"`
}

type GetRFCArgs struct {
	RFCID string `json:"rfc_id" jsonschema:"description=The RFC id"`
}

type GetRFCVersionArgs struct {
	RFCID   string `json:"rfc_id" jsonschema:"description=The RFC id"`
	Version int    `json:"version" jsonschema:"description=Historical version number (starts at 1)"`
}

type ListRFCsArgs struct {
	Status         string `json:"status,omitempty" jsonschema:"description=Filter by status: draft in_review approved rejected superseded"`
	Author         string `json:"author,omitempty" jsonschema:"description=Filter by author"`
	RequestingUser string `json:"requesting_user,omitempty" jsonschema:"description=Filter by requesting user"`
}

type UpdateContentArgs struct {
	RFCID      string `json:"rfc_id" jsonschema:"description=The RFC id"`
	NewContent string `json:"new_content" jsonschema:"description=Replacement content for the next version"`
}

type UpdateStatusArgs struct {
	RFCID     string `json:"rfc_id" jsonschema:"description=The RFC id"`
	NewStatus string `json:"new_status" jsonschema:"description=Target status: draft in_review approved rejected superseded"`
}

type ReplaceStringArgs struct {
	RFCID      string `json:"rfc_id" jsonschema:"description=The RFC id"`
	OldText    string `json:"old_text" jsonschema:"description=Exact text to replace"`
	NewText    string `json:"new_text" jsonschema:"description=Replacement text (empty deletes the match)"`
	ReplaceAll bool   `json:"replace_all,omitempty" jsonschema:"description=Replace every occurrence instead of the first"`
}

type ValidateStringArgs struct {
	RFCID string `json:"rfc_id" jsonschema:"description=The RFC id"`
	Text  string `json:"text" jsonschema:"description=Text to look for in the current content"`
}

type AddCommentArgs struct {
	RFCID       string `json:"rfc_id" jsonschema:"description=The RFC id"`
	AgentID     string `json:"agent_id" jsonschema:"description=Acting agent id"`
	CommentType string `json:"comment_type" jsonschema:"description=inline or document_level"`
	Content     string `json:"content" jsonschema:"description=Comment body"`
	QuotedText  string `json:"quoted_text,omitempty" jsonschema:"description=Exact substring of the document the comment anchors to (inline only)"`
	LineNumber  *int   `json:"line_number,omitempty" jsonschema:"description=Optional line hint for the anchor"`
}

type ReplyArgs struct {
	ParentCommentID string `json:"parent_comment_id" jsonschema:"description=Comment being replied to"`
	AgentID         string `json:"agent_id" jsonschema:"description=Acting agent id"`
	Content         string `json:"content" jsonschema:"description=Reply body"`
}

type CloseCommentArgs struct {
	CommentID string `json:"comment_id" jsonschema:"description=The comment id"`
	AgentID   string `json:"agent_id" jsonschema:"description=Acting agent id"`
}

type ListCommentsArgs struct {
	RFCID  string `json:"rfc_id" jsonschema:"description=The RFC id"`
	Status string `json:"status,omitempty" jsonschema:"description=Filter by status: open resolved dismissed"`
}

type ThreadArgs struct {
	CommentID string `json:"comment_id" jsonschema:"description=Any comment in the thread"`
}

type RequestReviewArgs struct {
	RFCID       string   `json:"rfc_id" jsonschema:"description=The RFC id"`
	RequestedBy string   `json:"requested_by" jsonschema:"description=Identity opening the round"`
	ReviewerIDs []string `json:"reviewer_ids" jsonschema:"description=Agent ids that must all submit before the round completes"`
	Deadline    string   `json:"deadline,omitempty" jsonschema:"description=Optional RFC 3339 deadline, must be in the future"`
}

type SubmitReviewArgs struct {
	ReviewRequestID string          `json:"review_request_id" jsonschema:"description=The review round id"`
	AgentID         string          `json:"agent_id" jsonschema:"description=Submitting reviewer's agent id"`
	Comments        json.RawMessage `json:"comments,omitempty" jsonschema:"description=JSON array of comments: each needs rfc_id and content and may carry quoted_text"`
}

type ReviewIDArgs struct {
	ReviewRequestID string `json:"review_request_id" jsonschema:"description=The review round id"`
}

type MarkInProgressArgs struct {
	ReviewRequestID string `json:"review_request_id" jsonschema:"description=The review round id"`
	AgentID         string `json:"agent_id" jsonschema:"description=Reviewer starting the read"`
}

type RFCIDArgs struct {
	RFCID string `json:"rfc_id" jsonschema:"description=The RFC id"`
}

type AddReviewersArgs struct {
	RFCID       string   `json:"rfc_id" jsonschema:"description=The RFC id with the active round"`
	ReviewerIDs []string `json:"reviewer_ids" jsonschema:"description=Agent ids to add to the active round"`
}

type CreateAgentArgs struct {
	Role       string `json:"role" jsonschema:"description=Agent role: lead frontend backend security database devops"`
	Name       string `json:"name" jsonschema:"description=Display name"`
	CanEdit    *bool  `json:"can_edit,omitempty" jsonschema:"description=Override the role default for editing"`
	CanComment *bool  `json:"can_comment,omitempty" jsonschema:"description=Override the role default for commenting"`
	CanApprove *bool  `json:"can_approve,omitempty" jsonschema:"description=Override the role default for approving"`
}

type AgentIDArgs struct {
	AgentID string `json:"agent_id" jsonschema:"description=The agent id"`
}

func (s *Server) registerTools() {
	// Documents.
	s.mcpServer.Tool("rfc_create").
		Description("Create a new RFC document at version 1 in draft").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleCreateRFC)

	s.mcpServer.Tool("rfc_create_from_template").
		Description("Create a new RFC with content scaffolded from title, description, and section names").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleCreateRFCFromTemplate)

	s.mcpServer.Tool("rfc_get").
		Description("Get the current version of an RFC").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleGetRFC)

	s.mcpServer.Tool("rfc_get_version").
		Description("Get a specific historical version of an RFC").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleGetRFCVersion)

	s.mcpServer.Tool("rfc_list").
		Description("List RFCs newest first, optionally filtered by status, author, or requesting user").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleListRFCs)

	s.mcpServer.Tool("rfc_update_content").
		Description("Replace an RFC's content, producing a new version").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleUpdateContent)

	s.mcpServer.Tool("rfc_update_status").
		Description("Move an RFC along its lifecycle (draft, in_review, approved, rejected, superseded)").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleUpdateStatus)

	s.mcpServer.Tool("rfc_replace_string").
		Description("Replace exact text in the RFC content, producing a new version. Fails if the text is absent").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleReplaceString)

	s.mcpServer.Tool("rfc_validate_string").
		Description("Check whether exact text occurs in the RFC's current content, for pre-validating anchors and edits").
		UIResource("ui://rfc-master/rfc").
		Handler(s.handleValidateString)

	// Comments.
	s.mcpServer.Tool("comment_add").
		Description("Add an inline or document-level comment to an RFC. Inline comments must quote text present in the current content").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleAddComment)

	s.mcpServer.Tool("comment_reply").
		Description("Reply to an existing comment, threading under it").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleReply)

	s.mcpServer.Tool("comment_resolve").
		Description("Mark an open comment resolved").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleResolveComment)

	s.mcpServer.Tool("comment_dismiss").
		Description("Mark an open comment dismissed").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleDismissComment)

	s.mcpServer.Tool("comment_list").
		Description("List comments on an RFC in creation order, optionally filtered by status").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleListComments)

	s.mcpServer.Tool("comment_thread").
		Description("Get the full thread containing a comment, root first").
		UIResource("ui://rfc-master/comments").
		Handler(s.handleThread)

	// Reviews.
	s.mcpServer.Tool("review_request").
		Description("Open a review round on an RFC. All listed reviewers must submit before it completes").
		UIResource("ui://rfc-master/review").
		Handler(s.handleRequestReview)

	s.mcpServer.Tool("review_submit").
		Description("Submit a reviewer's feedback, optionally carrying comments, and complete that reviewer's slot").
		UIResource("ui://rfc-master/review").
		Handler(s.handleSubmitReview)

	s.mcpServer.Tool("review_status").
		Description("Get per-reviewer statuses and overall completion for a round").
		UIResource("ui://rfc-master/review").
		Handler(s.handleReviewStatus)

	s.mcpServer.Tool("review_mark_in_progress").
		Description("Record that a reviewer has started reading").
		UIResource("ui://rfc-master/review").
		Handler(s.handleMarkInProgress)

	s.mcpServer.Tool("review_active").
		Description("Get the active review round for an RFC, if any").
		UIResource("ui://rfc-master/review").
		Handler(s.handleActiveReview)

	s.mcpServer.Tool("review_list").
		Description("List all review rounds for an RFC, newest first").
		UIResource("ui://rfc-master/review").
		Handler(s.handleListReviews)

	s.mcpServer.Tool("review_add_reviewers").
		Description("Add reviewers to the active round. Already-listed reviewers are skipped").
		UIResource("ui://rfc-master/review").
		Handler(s.handleAddReviewers)

	// Agents.
	s.mcpServer.Tool("agent_create").
		Description("Register an agent with a role and capability flags").
		UIResource("ui://rfc-master/agents").
		Handler(s.handleCreateAgent)

	s.mcpServer.Tool("agent_get").
		Description("Get a registered agent").
		UIResource("ui://rfc-master/agents").
		Handler(s.handleGetAgent)

	s.mcpServer.Tool("agent_list").
		Description("List all registered agents").
		UIResource("ui://rfc-master/agents").
		Handler(s.handleListAgents)
}

func (s *Server) handleCreateRFC(ctx context.Context, args CreateRFCArgs) (any, error) {
	doc, err := s.facade.CreateRFC(application.CreateRFCParams{
		Title:          args.Title,
		Content:        args.Content,
		Author:         args.Author,
		RequestingUser: args.RequestingUser,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to create the RFC.")
	}
	return doc, nil
}

func (s *Server) handleCreateRFCFromTemplate(ctx context.Context, args CreateRFCFromTemplateArgs) (any, error) {
	doc, err := s.facade.CreateRFCFromTemplate(application.CreateRFCFromTemplateParams{
		Title:          args.Title,
		Description:    args.Description,
		Author:         args.Author,
		RequestingUser: args.RequestingUser,
		Sections:       args.Sections,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to create the RFC from the template.")
	}
	return doc, nil
}

func (s *Server) handleGetRFC(ctx context.Context, args GetRFCArgs) (any, error) {
	doc, err := s.facade.GetRFC(args.RFCID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the RFC.")
	}
	return doc, nil
}

func (s *Server) handleGetRFCVersion(ctx context.Context, args GetRFCVersionArgs) (any, error) {
	doc, err := s.facade.GetRFCVersion(args.RFCID, args.Version)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the RFC version.")
	}
	return doc, nil
}

func (s *Server) handleListRFCs(ctx context.Context, args ListRFCsArgs) (any, error) {
	filter := rfc.ListFilter{
		AuthorID:         args.Author,
		RequestingUserID: args.RequestingUser,
	}
	if args.Status != "" {
		status, err := rfc.ParseStatus(args.Status)
		if err != nil {
			return nil, friendlyErr(err, "Unknown RFC status.")
		}
		filter.Status = &status
	}
	docs, err := s.facade.ListRFCs(filter)
	if err != nil {
		return nil, friendlyErr(err, "Failed to list RFCs.")
	}
	return docs, nil
}

func (s *Server) handleUpdateContent(ctx context.Context, args UpdateContentArgs) (any, error) {
	doc, err := s.facade.UpdateContent(args.RFCID, args.NewContent)
	if err != nil {
		return nil, friendlyErr(err, "Failed to update the RFC content.")
	}
	return doc, nil
}

func (s *Server) handleUpdateStatus(ctx context.Context, args UpdateStatusArgs) (any, error) {
	status, err := rfc.ParseStatus(args.NewStatus)
	if err != nil {
		return nil, friendlyErr(err, "Unknown RFC status.")
	}
	doc, err := s.facade.UpdateStatus(args.RFCID, status)
	if err != nil {
		return nil, friendlyErr(err, "Failed to change the RFC status.")
	}
	return doc, nil
}

func (s *Server) handleReplaceString(ctx context.Context, args ReplaceStringArgs) (any, error) {
	doc, err := s.facade.ReplaceString(application.ReplaceStringParams{
		RFCID:      args.RFCID,
		OldText:    args.OldText,
		NewText:    args.NewText,
		ReplaceAll: args.ReplaceAll,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to replace text in the RFC.")
	}
	return doc, nil
}

func (s *Server) handleValidateString(ctx context.Context, args ValidateStringArgs) (any, error) {
	exists, err := s.facade.ValidateStringExists(args.RFCID, args.Text)
	if err != nil {
		return nil, friendlyErr(err, "Failed to check the RFC content.")
	}
	return map[string]bool{"exists": exists}, nil
}

func (s *Server) handleAddComment(ctx context.Context, args AddCommentArgs) (any, error) {
	commentType, err := comment.ParseType(args.CommentType)
	if err != nil {
		return nil, friendlyErr(err, "Unknown comment type.")
	}
	c, err := s.facade.AddComment(application.AddCommentParams{
		RFCID:       args.RFCID,
		AgentID:     args.AgentID,
		CommentType: commentType,
		Content:     args.Content,
		QuotedText:  args.QuotedText,
		LineNumber:  args.LineNumber,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to add the comment.")
	}
	return c, nil
}

func (s *Server) handleReply(ctx context.Context, args ReplyArgs) (any, error) {
	c, err := s.facade.ReplyToComment(application.ReplyToCommentParams{
		ParentCommentID: args.ParentCommentID,
		AgentID:         args.AgentID,
		Content:         args.Content,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to add the reply.")
	}
	return c, nil
}

func (s *Server) handleResolveComment(ctx context.Context, args CloseCommentArgs) (any, error) {
	c, err := s.facade.ResolveComment(args.CommentID, args.AgentID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to resolve the comment.")
	}
	return c, nil
}

func (s *Server) handleDismissComment(ctx context.Context, args CloseCommentArgs) (any, error) {
	c, err := s.facade.DismissComment(args.CommentID, args.AgentID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to dismiss the comment.")
	}
	return c, nil
}

func (s *Server) handleListComments(ctx context.Context, args ListCommentsArgs) (any, error) {
	var status *comment.Status
	if args.Status != "" {
		parsed, err := comment.ParseStatus(args.Status)
		if err != nil {
			return nil, friendlyErr(err, "Unknown comment status.")
		}
		status = &parsed
	}
	comments, err := s.facade.GetCommentsForRFC(args.RFCID, status)
	if err != nil {
		return nil, friendlyErr(err, "Failed to list comments.")
	}
	return comments, nil
}

func (s *Server) handleThread(ctx context.Context, args ThreadArgs) (any, error) {
	thread, err := s.facade.GetCommentThread(args.CommentID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the comment thread.")
	}
	return thread, nil
}

func (s *Server) handleRequestReview(ctx context.Context, args RequestReviewArgs) (any, error) {
	params := application.RequestReviewParams{
		RFCID:       args.RFCID,
		RequestedBy: args.RequestedBy,
		ReviewerIDs: args.ReviewerIDs,
	}
	if args.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, args.Deadline)
		if err != nil {
			return nil, friendlyErr(err, "Deadline must be an RFC 3339 timestamp.")
		}
		params.Deadline = &deadline
	}
	r, err := s.facade.RequestReview(params)
	if err != nil {
		return nil, friendlyErr(err, "Failed to open the review round.")
	}
	return r, nil
}

// submissionSchema screens review_submit's raw comments payload before it
// touches the trusted bulk write path.
const submissionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["rfc_id", "content"],
    "properties": {
      "rfc_id": { "type": "string", "minLength": 1 },
      "content": { "type": "string", "minLength": 1 },
      "quoted_text": { "type": "string" }
    }
  }
}`

var submissionSchemaLoader = gojsonschema.NewStringLoader(submissionSchemaJSON)

func (s *Server) handleSubmitReview(ctx context.Context, args SubmitReviewArgs) (any, error) {
	var comments []application.ReviewComment
	if len(args.Comments) > 0 {
		documentLoader := gojsonschema.NewStringLoader(string(args.Comments))
		result, err := gojsonschema.Validate(submissionSchemaLoader, documentLoader)
		if err != nil {
			return nil, friendlyErr(err, "Comments must be a JSON array of objects.")
		}
		if !result.Valid() {
			return nil, mcpValidationSummary(result)
		}
		if err := json.Unmarshal(args.Comments, &comments); err != nil {
			return nil, friendlyErr(err, "Comments must be a JSON array of objects.")
		}
	}

	r, err := s.facade.SubmitReview(application.SubmitReviewParams{
		ReviewRequestID: args.ReviewRequestID,
		AgentID:         args.AgentID,
		Comments:        comments,
	})
	if err != nil {
		return nil, friendlyErr(err, "Failed to submit the review.")
	}
	return r, nil
}

func mcpValidationSummary(result *gojsonschema.Result) error {
	if len(result.Errors()) > 0 {
		return fmt.Errorf("comments payload is invalid: %s", result.Errors()[0].String())
	}
	return fmt.Errorf("comments payload is invalid")
}

func (s *Server) handleReviewStatus(ctx context.Context, args ReviewIDArgs) (any, error) {
	statuses, err := s.facade.GetReviewStatus(args.ReviewRequestID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the review status.")
	}
	complete, err := s.facade.IsReviewComplete(args.ReviewRequestID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the review status.")
	}
	return map[string]any{
		"statuses": statuses,
		"complete": complete,
	}, nil
}

func (s *Server) handleMarkInProgress(ctx context.Context, args MarkInProgressArgs) (any, error) {
	r, err := s.facade.MarkReviewInProgress(args.ReviewRequestID, args.AgentID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to mark the review in progress.")
	}
	return r, nil
}

func (s *Server) handleActiveReview(ctx context.Context, args RFCIDArgs) (any, error) {
	r, err := s.facade.GetActiveReviewForRFC(args.RFCID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the active review.")
	}
	if r == nil {
		return map[string]any{"active": false}, nil
	}
	return r, nil
}

func (s *Server) handleListReviews(ctx context.Context, args RFCIDArgs) (any, error) {
	rounds, err := s.facade.GetAllReviewsForRFC(args.RFCID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to list review rounds.")
	}
	return rounds, nil
}

func (s *Server) handleAddReviewers(ctx context.Context, args AddReviewersArgs) (any, error) {
	r, err := s.facade.AddReviewersToActiveReview(args.RFCID, args.ReviewerIDs)
	if err != nil {
		return nil, friendlyErr(err, "Failed to add reviewers to the active round.")
	}
	return r, nil
}

func (s *Server) handleCreateAgent(ctx context.Context, args CreateAgentArgs) (any, error) {
	role, err := agent.ParseRole(args.Role)
	if err != nil {
		return nil, friendlyErr(err, "Unknown agent role.")
	}
	params := application.CreateAgentParams{Role: role, Name: args.Name}
	if args.CanEdit != nil || args.CanComment != nil || args.CanApprove != nil {
		caps := agent.DefaultCapabilities(role)
		if args.CanEdit != nil {
			caps.CanEdit = *args.CanEdit
		}
		if args.CanComment != nil {
			caps.CanComment = *args.CanComment
		}
		if args.CanApprove != nil {
			caps.CanApprove = *args.CanApprove
		}
		params.Capabilities = &caps
	}
	a, err := s.facade.CreateAgent(params)
	if err != nil {
		return nil, friendlyErr(err, "Failed to register the agent.")
	}
	return a, nil
}

func (s *Server) handleGetAgent(ctx context.Context, args AgentIDArgs) (any, error) {
	a, err := s.facade.GetAgent(args.AgentID)
	if err != nil {
		return nil, friendlyErr(err, "Failed to load the agent.")
	}
	return a, nil
}

func (s *Server) handleListAgents(ctx context.Context, args struct{}) (any, error) {
	agents, err := s.facade.ListAgents()
	if err != nil {
		return nil, friendlyErr(err, "Failed to list agents.")
	}
	return agents, nil
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
