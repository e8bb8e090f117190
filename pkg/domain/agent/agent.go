// Package agent defines the actors that author, discuss, and review RFCs.
package agent

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the functional area an agent represents.
type Role string

const (
	RoleLead     Role = "lead"
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
	RoleSecurity Role = "security"
	RoleDatabase Role = "database"
	RoleDevOps   Role = "devops"
)

// AllRoles returns every valid agent role.
func AllRoles() []Role {
	return []Role{RoleLead, RoleFrontend, RoleBackend, RoleSecurity, RoleDatabase, RoleDevOps}
}

// IsValid returns true if the role is a known agent role.
func (r Role) IsValid() bool {
	switch r {
	case RoleLead, RoleFrontend, RoleBackend, RoleSecurity, RoleDatabase, RoleDevOps:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid agent role: %s", s)
	}
	return role, nil
}

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown roles.
func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	role, err := ParseRole(str)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Capabilities are the mutation flags gating what an agent may do.
type Capabilities struct {
	CanEdit    bool `json:"can_edit" yaml:"can_edit"`
	CanComment bool `json:"can_comment" yaml:"can_comment"`
	CanApprove bool `json:"can_approve" yaml:"can_approve"`
}

// DefaultCapabilities returns the role-based capability defaults: a lead
// gets everything, every other role may only comment.
func DefaultCapabilities(role Role) Capabilities {
	if role == RoleLead {
		return Capabilities{CanEdit: true, CanComment: true, CanApprove: true}
	}
	return Capabilities{CanComment: true}
}

// Agent is an actor capable of authoring or reviewing documents.
// Agents are immutable after creation; there is no update operation.
type Agent struct {
	ID           string       `json:"id" yaml:"id"`
	Role         Role         `json:"role" yaml:"role"`
	Name         string       `json:"name" yaml:"name"`
	Capabilities Capabilities `json:"capabilities" yaml:"capabilities"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`
}
