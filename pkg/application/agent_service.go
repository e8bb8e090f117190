package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anton-pt/rfc-master/pkg/domain"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// AgentService manages the agent registry. Agents are immutable once
// created; there is no update or delete surface.
type AgentService struct {
	store storage.Store
	audit domain.AuditLogger
}

func NewAgentService(store storage.Store, audit domain.AuditLogger) *AgentService {
	return &AgentService{store: store, audit: audit}
}

// CreateAgent registers an agent with role-derived capabilities unless the
// params carry an explicit override.
func (s *AgentService) CreateAgent(params CreateAgentParams) (*agent.Agent, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if !params.Role.IsValid() {
		return nil, &domain.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", string(params.Role))}
	}

	caps := agent.DefaultCapabilities(params.Role)
	if params.Capabilities != nil {
		caps = *params.Capabilities
	}

	a := &agent.Agent{
		ID:           uuid.NewString(),
		Role:         params.Role,
		Name:         params.Name,
		Capabilities: caps,
		CreatedAt:    time.Now(),
	}
	if _, err := s.store.Agents().Create(a); err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	_ = s.audit.Log("agent.create", a.ID, map[string]interface{}{
		"role": string(a.Role),
		"name": a.Name,
	})
	return a, nil
}

// GetAgent returns the agent by id.
func (s *AgentService) GetAgent(id string) (*agent.Agent, error) {
	if id == "" {
		return nil, &domain.ValidationError{Field: "agent_id", Reason: "is required"}
	}
	a, err := s.store.Agents().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("loading agent %s: %w", id, err)
	}
	if a == nil {
		return nil, &domain.NotFoundError{Kind: "agent", ID: id}
	}
	return a, nil
}

// ListAgents returns all registered agents in creation order.
func (s *AgentService) ListAgents() ([]*agent.Agent, error) {
	return s.store.Agents().List()
}

// requireAgent loads an agent and optionally checks one capability flag.
// Shared by the comment and review services for actor checks.
func requireAgent(store storage.Store, id string, needsComment bool) (*agent.Agent, error) {
	a, err := store.Agents().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("loading agent %s: %w", id, err)
	}
	if a == nil {
		return nil, &domain.NotFoundError{Kind: "agent", ID: id}
	}
	if needsComment && !a.Capabilities.CanComment {
		return nil, &domain.PermissionError{AgentID: id, Capability: "comment"}
	}
	return a, nil
}
