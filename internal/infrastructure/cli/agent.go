package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anton-pt/rfc-master/pkg/application"
	"github.com/anton-pt/rfc-master/pkg/domain/agent"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage the agent registry",
}

var agentCreateCmd = &cobra.Command{
	Use:   "create <role> <name>",
	Short: "Register an agent with role-default capabilities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		role, err := agent.ParseRole(args[0])
		if err != nil {
			return err
		}
		a, err := facade.CreateAgent(application.CreateAgentParams{Role: role, Name: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s agent %s (%s)\n", a.Role, a.Name, a.ID)
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		agents, err := facade.ListAgents()
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No agents registered.")
			return nil
		}
		for _, a := range agents {
			caps := ""
			if a.Capabilities.CanEdit {
				caps += "edit "
			}
			if a.Capabilities.CanComment {
				caps += "comment "
			}
			if a.Capabilities.CanApprove {
				caps += "approve"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s %-20s %s\n", a.ID, a.Role, a.Name, caps)
		}
		return nil
	},
}

func init() {
	agentCmd.AddCommand(agentCreateCmd, agentListCmd)
	RootCmd.AddCommand(agentCmd)
}
