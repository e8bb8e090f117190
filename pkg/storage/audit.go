package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anton-pt/rfc-master/pkg/domain"
)

// MemoryAuditLog records audit events in memory. Useful in tests and as the
// default recorder for the in-memory store.
type MemoryAuditLog struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewMemoryAuditLog creates an empty recorder.
func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{}
}

// Log implements domain.AuditLogger.
func (l *MemoryAuditLog) Log(action string, actor string, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, domain.Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
	})
	return nil
}

// Events returns a copy of the recorded events in order.
func (l *MemoryAuditLog) Events() []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Event(nil), l.events...)
}

// FileAuditLog appends audit events to events.jsonl under the store root.
type FileAuditLog struct {
	mu    sync.Mutex
	store *FilesystemStore
}

// NewFileAuditLog creates a JSONL audit sink sharing the filesystem store's root.
func NewFileAuditLog(store *FilesystemStore) *FileAuditLog {
	return &FileAuditLog{store: store}
}

// Log implements domain.AuditLogger.
func (l *FileAuditLog) Log(action string, actor string, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event := domain.Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	path, err := l.store.ResolvePath(EventsFile)
	if err != nil {
		return err
	}
	// #nosec G304 -- Path is resolved and validated via ResolvePath
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open events file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}
