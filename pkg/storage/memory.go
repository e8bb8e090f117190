package storage

import (
	"fmt"
	"sync"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/comment"
	"github.com/anton-pt/rfc-master/pkg/domain/review"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

// MemoryStore is the default deterministic in-process Store. Each collection
// is guarded by its own RWMutex so reads are always safe; read-modify-write
// atomicity across calls is the services' responsibility.
type MemoryStore struct {
	documents *memoryDocuments
	comments  *memoryComments
	reviews   *memoryReviews
	agents    *memoryAgents
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: &memoryDocuments{
			versions: make(map[string]map[int]*rfc.Document),
			current:  make(map[string]int),
		},
		comments: &memoryComments{
			byID:     make(map[string]*comment.Comment),
			byRFC:    make(map[string][]string),
			byParent: make(map[string][]string),
		},
		reviews: &memoryReviews{
			byID:  make(map[string]*review.Request),
			byRFC: make(map[string][]string),
		},
		agents: &memoryAgents{
			byID: make(map[string]*agent.Agent),
		},
	}
}

func (s *MemoryStore) Documents() DocumentStore { return s.documents }
func (s *MemoryStore) Comments() CommentStore   { return s.comments }
func (s *MemoryStore) Reviews() ReviewStore     { return s.reviews }
func (s *MemoryStore) Agents() AgentStore       { return s.agents }

// --- documents ---

type memoryDocuments struct {
	mu       sync.RWMutex
	versions map[string]map[int]*rfc.Document
	current  map[string]int
	order    []string // document ids in creation order
}

func (m *memoryDocuments) Create(doc *rfc.Document) (*rfc.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.versions[doc.ID]; exists {
		return nil, fmt.Errorf("document already exists: %s", doc.ID)
	}
	m.versions[doc.ID] = map[int]*rfc.Document{doc.Version: cloneDocument(doc)}
	m.current[doc.ID] = doc.Version
	m.order = append(m.order, doc.ID)
	return cloneDocument(doc), nil
}

func (m *memoryDocuments) Update(doc *rfc.Document) (*rfc.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byVersion, exists := m.versions[doc.ID]
	if !exists {
		return nil, fmt.Errorf("document does not exist: %s", doc.ID)
	}
	byVersion[doc.Version] = cloneDocument(doc)
	if doc.Version > m.current[doc.ID] {
		m.current[doc.ID] = doc.Version
	}
	return cloneDocument(doc), nil
}

func (m *memoryDocuments) GetByID(id string) (*rfc.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	version, ok := m.current[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(m.versions[id][version]), nil
}

func (m *memoryDocuments) GetByVersion(id string, version int) (*rfc.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byVersion, ok := m.versions[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(byVersion[version]), nil
}

func (m *memoryDocuments) List(filter rfc.ListFilter) ([]*rfc.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*rfc.Document, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		id := m.order[i]
		doc := m.versions[id][m.current[id]]
		if filter.Matches(doc) {
			out = append(out, cloneDocument(doc))
		}
	}
	return out, nil
}

// --- comments ---

type memoryComments struct {
	mu       sync.RWMutex
	byID     map[string]*comment.Comment
	byRFC    map[string][]string // creation order
	byParent map[string][]string // adjacency index, built at write time
}

func (m *memoryComments) Create(c *comment.Comment) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[c.ID]; exists {
		return nil, fmt.Errorf("comment already exists: %s", c.ID)
	}
	m.byID[c.ID] = cloneComment(c)
	m.byRFC[c.RFCID] = append(m.byRFC[c.RFCID], c.ID)
	if c.ParentID != "" {
		m.byParent[c.ParentID] = append(m.byParent[c.ParentID], c.ID)
	}
	return cloneComment(c), nil
}

func (m *memoryComments) Update(c *comment.Comment) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[c.ID]; !exists {
		return nil, fmt.Errorf("comment does not exist: %s", c.ID)
	}
	m.byID[c.ID] = cloneComment(c)
	return cloneComment(c), nil
}

func (m *memoryComments) GetByID(id string) (*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneComment(m.byID[id]), nil
}

func (m *memoryComments) GetByRFC(rfcID string, status *comment.Status) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byRFC[rfcID]
	out := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		c := m.byID[id]
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, cloneComment(c))
	}
	return out, nil
}

func (m *memoryComments) GetByParent(parentID string) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byParent[parentID]
	out := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneComment(m.byID[id]))
	}
	return out, nil
}

func (m *memoryComments) GetThread(commentID string) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.byID[commentID]; !ok {
		return nil, nil
	}
	ids := threadOrder(commentID, func(id string) string {
		c := m.byID[id]
		if c == nil {
			return ""
		}
		// Only ascend to parents that actually exist.
		if _, ok := m.byID[c.ParentID]; !ok {
			return ""
		}
		return c.ParentID
	}, func(id string) []string {
		return m.byParent[id]
	})

	out := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		if c := m.byID[id]; c != nil {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

// --- reviews ---

type memoryReviews struct {
	mu    sync.RWMutex
	byID  map[string]*review.Request
	byRFC map[string][]string // creation order
}

func (m *memoryReviews) Create(r *review.Request) (*review.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[r.ID]; exists {
		return nil, fmt.Errorf("review request already exists: %s", r.ID)
	}
	m.byID[r.ID] = cloneReview(r)
	m.byRFC[r.RFCID] = append(m.byRFC[r.RFCID], r.ID)
	return cloneReview(r), nil
}

func (m *memoryReviews) Update(r *review.Request) (*review.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[r.ID]; !exists {
		return nil, fmt.Errorf("review request does not exist: %s", r.ID)
	}
	m.byID[r.ID] = cloneReview(r)
	return cloneReview(r), nil
}

func (m *memoryReviews) GetByID(id string) (*review.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneReview(m.byID[id]), nil
}

func (m *memoryReviews) GetByRFC(rfcID string) ([]*review.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byRFC[rfcID]
	out := make([]*review.Request, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, cloneReview(m.byID[ids[i]]))
	}
	return out, nil
}

func (m *memoryReviews) GetActiveByRFC(rfcID string) (*review.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byRFC[rfcID]
	for i := len(ids) - 1; i >= 0; i-- {
		if r := m.byID[ids[i]]; r.CompletedAt == nil {
			return cloneReview(r), nil
		}
	}
	return nil, nil
}

// --- agents ---

type memoryAgents struct {
	mu    sync.RWMutex
	byID  map[string]*agent.Agent
	order []string
}

func (m *memoryAgents) Create(a *agent.Agent) (*agent.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[a.ID]; exists {
		return nil, fmt.Errorf("agent already exists: %s", a.ID)
	}
	m.byID[a.ID] = cloneAgent(a)
	m.order = append(m.order, a.ID)
	return cloneAgent(a), nil
}

func (m *memoryAgents) GetByID(id string) (*agent.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAgent(m.byID[id]), nil
}

func (m *memoryAgents) List() ([]*agent.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*agent.Agent, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneAgent(m.byID[id]))
	}
	return out, nil
}
