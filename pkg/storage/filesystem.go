package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

const RFCDir = ".rfc"
const DocumentsFile = "documents.yaml"
const AgentsFile = "agents.yaml"
const CommentsFile = "comments.json"
const ReviewsFile = "reviews.json"
const EventsFile = "events.jsonl"

// FilesystemStore persists each collection as a flat file under root/.rfc.
// It satisfies the same Store contract as MemoryStore, which is what lets
// the facade swap backends without touching service logic. Durability is
// best effort: each write rewrites the collection file.
type FilesystemStore struct {
	mu          sync.RWMutex
	root        string
	retryConfig retry.Config

	documents *fsDocuments
	comments  *fsComments
	reviews   *fsReviews
	agents    *fsAgents
}

// NewFilesystemStore creates a store rooted at root. Call Initialize before use.
func NewFilesystemStore(root string) *FilesystemStore {
	s := &FilesystemStore{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
	s.documents = &fsDocuments{store: s}
	s.comments = &fsComments{store: s}
	s.reviews = &fsReviews{store: s}
	s.agents = &fsAgents{store: s}
	return s
}

func (s *FilesystemStore) Documents() DocumentStore { return s.documents }
func (s *FilesystemStore) Comments() CommentStore   { return s.comments }
func (s *FilesystemStore) Reviews() ReviewStore     { return s.reviews }
func (s *FilesystemStore) Agents() AgentStore       { return s.agents }

// Initialize creates the .rfc directory.
func (s *FilesystemStore) Initialize() error {
	path := filepath.Join(s.root, RFCDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", RFCDir, err)
	}
	return nil
}

// IsInitialized reports whether the .rfc directory exists.
func (s *FilesystemStore) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(s.root, RFCDir))
	return err == nil
}

// ResolvePath ensures the path is within the .rfc directory and prevents traversal.
func (s *FilesystemStore) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	baseDir := filepath.Join(s.root, RFCDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

// readFile loads a collection file with retry, treating a missing file as empty.
func (s *FilesystemStore) readFile(filename string) ([]byte, error) {
	retryer := retry.New[[]byte](s.retryConfig)
	return retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		path, err := s.ResolvePath(filename)
		if err != nil {
			return nil, err
		}
		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		return data, nil
	})
}

func (s *FilesystemStore) writeFile(filename string, data []byte) error {
	path, err := s.ResolvePath(filename)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (s *FilesystemStore) loadDocuments() ([]*rfc.Document, error) {
	data, err := s.readFile(DocumentsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var docs []*rfc.Document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
	}
	return docs, nil
}

func (s *FilesystemStore) saveDocuments(docs []*rfc.Document) error {
	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	return s.writeFile(DocumentsFile, data)
}

func (s *FilesystemStore) loadComments() ([]*comment.Comment, error) {
	data, err := s.readFile(CommentsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var comments []*comment.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}
	return comments, nil
}

func (s *FilesystemStore) saveComments(comments []*comment.Comment) error {
	data, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}
	return s.writeFile(CommentsFile, data)
}

func (s *FilesystemStore) loadReviews() ([]*review.Request, error) {
	data, err := s.readFile(ReviewsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var reviews []*review.Request
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
	}
	return reviews, nil
}

func (s *FilesystemStore) saveReviews(reviews []*review.Request) error {
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reviews: %w", err)
	}
	return s.writeFile(ReviewsFile, data)
}

func (s *FilesystemStore) loadAgents() ([]*agent.Agent, error) {
	data, err := s.readFile(AgentsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var agents []*agent.Agent
	if err := yaml.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}
	return agents, nil
}

func (s *FilesystemStore) saveAgents(agents []*agent.Agent) error {
	data, err := yaml.Marshal(agents)
	if err != nil {
		return fmt.Errorf("failed to marshal agents: %w", err)
	}
	return s.writeFile(AgentsFile, data)
}

// --- documents ---

type fsDocuments struct {
	store *FilesystemStore
}

func (f *fsDocuments) Create(doc *rfc.Document) (*rfc.Document, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	docs, err := f.store.loadDocuments()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == doc.ID {
			return nil, fmt.Errorf("document already exists: %s", doc.ID)
		}
	}
	docs = append(docs, cloneDocument(doc))
	if err := f.store.saveDocuments(docs); err != nil {
		return nil, err
	}
	return cloneDocument(doc), nil
}

func (f *fsDocuments) Update(doc *rfc.Document) (*rfc.Document, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	docs, err := f.store.loadDocuments()
	if err != nil {
		return nil, err
	}
	exists := false
	replaced := false
	for i, d := range docs {
		if d.ID != doc.ID {
			continue
		}
		exists = true
		if d.Version == doc.Version {
			docs[i] = cloneDocument(doc)
			replaced = true
			break
		}
	}
	if !exists {
		return nil, fmt.Errorf("document does not exist: %s", doc.ID)
	}
	if !replaced {
		docs = append(docs, cloneDocument(doc))
	}
	if err := f.store.saveDocuments(docs); err != nil {
		return nil, err
	}
	return cloneDocument(doc), nil
}

func (f *fsDocuments) GetByID(id string) (*rfc.Document, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	docs, err := f.store.loadDocuments()
	if err != nil {
		return nil, err
	}
	return cloneDocument(currentVersion(docs, id)), nil
}

func (f *fsDocuments) GetByVersion(id string, version int) (*rfc.Document, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	docs, err := f.store.loadDocuments()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id && d.Version == version {
			return cloneDocument(d), nil
		}
	}
	return nil, nil
}

func (f *fsDocuments) List(filter rfc.ListFilter) ([]*rfc.Document, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	docs, err := f.store.loadDocuments()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []*rfc.Document
	for i := len(docs) - 1; i >= 0; i-- {
		d := docs[i]
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		if cur := currentVersion(docs, d.ID); cur != nil && filter.Matches(cur) {
			out = append(out, cloneDocument(cur))
		}
	}
	return out, nil
}

func currentVersion(docs []*rfc.Document, id string) *rfc.Document {
	var cur *rfc.Document
	for _, d := range docs {
		if d.ID != id {
			continue
		}
		if cur == nil || d.Version > cur.Version {
			cur = d
		}
	}
	return cur
}

// --- comments ---

type fsComments struct {
	store *FilesystemStore
}

func (f *fsComments) Create(c *comment.Comment) (*comment.Comment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	for _, existing := range comments {
		if existing.ID == c.ID {
			return nil, fmt.Errorf("comment already exists: %s", c.ID)
		}
	}
	comments = append(comments, cloneComment(c))
	if err := f.store.saveComments(comments); err != nil {
		return nil, err
	}
	return cloneComment(c), nil
}

func (f *fsComments) Update(c *comment.Comment) (*comment.Comment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	for i, existing := range comments {
		if existing.ID == c.ID {
			comments[i] = cloneComment(c)
			if err := f.store.saveComments(comments); err != nil {
				return nil, err
			}
			return cloneComment(c), nil
		}
	}
	return nil, fmt.Errorf("comment does not exist: %s", c.ID)
}

func (f *fsComments) GetByID(id string) (*comment.Comment, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		if c.ID == id {
			return cloneComment(c), nil
		}
	}
	return nil, nil
}

func (f *fsComments) GetByRFC(rfcID string, status *comment.Status) ([]*comment.Comment, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	var out []*comment.Comment
	for _, c := range comments {
		if c.RFCID != rfcID {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, cloneComment(c))
	}
	return out, nil
}

func (f *fsComments) GetByParent(parentID string) ([]*comment.Comment, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	var out []*comment.Comment
	for _, c := range comments {
		if c.ParentID == parentID {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

func (f *fsComments) GetThread(commentID string) ([]*comment.Comment, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	comments, err := f.store.loadComments()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*comment.Comment, len(comments))
	byParent := make(map[string][]string)
	for _, c := range comments {
		byID[c.ID] = c
		if c.ParentID != "" {
			byParent[c.ParentID] = append(byParent[c.ParentID], c.ID)
		}
	}
	if _, ok := byID[commentID]; !ok {
		return nil, nil
	}
	ids := threadOrder(commentID, func(id string) string {
		c := byID[id]
		if c == nil {
			return ""
		}
		if _, ok := byID[c.ParentID]; !ok {
			return ""
		}
		return c.ParentID
	}, func(id string) []string {
		return byParent[id]
	})

	out := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		if c := byID[id]; c != nil {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

// --- reviews ---

type fsReviews struct {
	store *FilesystemStore
}

func (f *fsReviews) Create(r *review.Request) (*review.Request, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	reviews, err := f.store.loadReviews()
	if err != nil {
		return nil, err
	}
	for _, existing := range reviews {
		if existing.ID == r.ID {
			return nil, fmt.Errorf("review request already exists: %s", r.ID)
		}
	}
	reviews = append(reviews, cloneReview(r))
	if err := f.store.saveReviews(reviews); err != nil {
		return nil, err
	}
	return cloneReview(r), nil
}

func (f *fsReviews) Update(r *review.Request) (*review.Request, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	reviews, err := f.store.loadReviews()
	if err != nil {
		return nil, err
	}
	for i, existing := range reviews {
		if existing.ID == r.ID {
			reviews[i] = cloneReview(r)
			if err := f.store.saveReviews(reviews); err != nil {
				return nil, err
			}
			return cloneReview(r), nil
		}
	}
	return nil, fmt.Errorf("review request does not exist: %s", r.ID)
}

func (f *fsReviews) GetByID(id string) (*review.Request, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	reviews, err := f.store.loadReviews()
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		if r.ID == id {
			return cloneReview(r), nil
		}
	}
	return nil, nil
}

func (f *fsReviews) GetByRFC(rfcID string) ([]*review.Request, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	reviews, err := f.store.loadReviews()
	if err != nil {
		return nil, err
	}
	var out []*review.Request
	for i := len(reviews) - 1; i >= 0; i-- {
		if reviews[i].RFCID == rfcID {
			out = append(out, cloneReview(reviews[i]))
		}
	}
	return out, nil
}

func (f *fsReviews) GetActiveByRFC(rfcID string) (*review.Request, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	reviews, err := f.store.loadReviews()
	if err != nil {
		return nil, err
	}
	for i := len(reviews) - 1; i >= 0; i-- {
		if reviews[i].RFCID == rfcID && reviews[i].CompletedAt == nil {
			return cloneReview(reviews[i]), nil
		}
	}
	return nil, nil
}

// --- agents ---

type fsAgents struct {
	store *FilesystemStore
}

func (f *fsAgents) Create(a *agent.Agent) (*agent.Agent, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	agents, err := f.store.loadAgents()
	if err != nil {
		return nil, err
	}
	for _, existing := range agents {
		if existing.ID == a.ID {
			return nil, fmt.Errorf("agent already exists: %s", a.ID)
		}
	}
	agents = append(agents, cloneAgent(a))
	if err := f.store.saveAgents(agents); err != nil {
		return nil, err
	}
	return cloneAgent(a), nil
}

func (f *fsAgents) GetByID(id string) (*agent.Agent, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	agents, err := f.store.loadAgents()
	if err != nil {
		return nil, err
	}
	for _, a := range agents {
		if a.ID == id {
			return cloneAgent(a), nil
		}
	}
	return nil, nil
}

func (f *fsAgents) List() ([]*agent.Agent, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	agents, err := f.store.loadAgents()
	if err != nil {
		return nil, err
	}
	out := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		out = append(out, cloneAgent(a))
	}
	return out, nil
}
