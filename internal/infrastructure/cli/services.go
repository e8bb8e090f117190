package cli

import (
	"fmt"
	"os"

	"github.com/anton-pt/rfc-master/pkg/application"
	"github.com/anton-pt/rfc-master/pkg/storage"
)

// buildFacade assembles the facade over the filesystem store in the current
// directory. Commands that mutate or read state require an initialized
// workspace; `rfc-master init` creates one.
func buildFacade() (*application.Facade, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	store := storage.NewFilesystemStore(cwd)
	if !store.IsInitialized() {
		return nil, fmt.Errorf("no %s workspace here; run 'rfc-master init' first", storage.RFCDir)
	}
	return application.New(
		application.WithStore(store),
		application.WithAuditLogger(storage.NewFileAuditLog(store)),
	), nil
}
