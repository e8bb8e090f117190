package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anton-pt/rfc-master/pkg/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an rfc-master workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		store := storage.NewFilesystemStore(cwd)
		if store.IsInitialized() {
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace already initialized at %s/%s\n", cwd, storage.RFCDir)
			return nil
		}
		if err := store.Initialize(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized rfc-master workspace at %s/%s\n", cwd, storage.RFCDir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
