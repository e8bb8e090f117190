package application

import (
	"testing"

	"github.com/anton-pt/rfc-master/pkg/domain/agent"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	return New()
}

func mustAgent(t *testing.T, f *Facade, role agent.Role, name string) *agent.Agent {
	t.Helper()
	a, err := f.CreateAgent(CreateAgentParams{Role: role, Name: name})
	if err != nil {
		t.Fatalf("CreateAgent(%s) failed: %v", role, err)
	}
	return a
}

func mustRFC(t *testing.T, f *Facade, title, content string) *rfc.Document {
	t.Helper()
	doc, err := f.CreateRFC(CreateRFCParams{
		Title:          title,
		Content:        content,
		Author:         "author-1",
		RequestingUser: "user-1",
	})
	if err != nil {
		t.Fatalf("CreateRFC(%q) failed: %v", title, err)
	}
	return doc
}
