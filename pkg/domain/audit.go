package domain

import "time"

// Event represents a single auditable mutation in the system.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AuditLogger provides a simple interface for logging audit events.
// Services should depend on this interface rather than concrete implementations.
type AuditLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) error
}

// NopAuditLogger discards all events. Wired when no audit sink is configured.
type NopAuditLogger struct{}

func (NopAuditLogger) Log(string, string, map[string]interface{}) error { return nil }
