package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	inframcp "github.com/anton-pt/rfc-master/internal/infrastructure/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the rfc-master MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("RFC_MASTER_SKIP_MCP_START") == "true" {
			return nil
		}
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		server := inframcp.NewServer(facade)
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			return server.StartStdio()
		case "http":
			return server.StartHTTP(mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for the http transport")
	RootCmd.AddCommand(mcpCmd)
}
