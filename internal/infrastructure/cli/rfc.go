package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anton-pt/rfc-master/pkg/application"
	"github.com/anton-pt/rfc-master/pkg/domain/rfc"
)

var rfcCmd = &cobra.Command{
	Use:   "rfc",
	Short: "Inspect and manage RFC documents",
}

var (
	rfcCreateAuthor string
	rfcCreateUser   string
	rfcListStatus   string
)

var rfcCreateCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Create a new RFC in draft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		doc, err := facade.CreateRFC(application.CreateRFCParams{
			Title:          args[0],
			Content:        args[1],
			Author:         rfcCreateAuthor,
			RequestingUser: rfcCreateUser,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created RFC %s (v%d, %s)\n", doc.ID, doc.Version, doc.Status)
		return nil
	},
}

var rfcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List RFCs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		filter := rfc.ListFilter{}
		if rfcListStatus != "" {
			status, err := rfc.ParseStatus(rfcListStatus)
			if err != nil {
				return err
			}
			filter.Status = &status
		}
		docs, err := facade.ListRFCs(filter)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No RFCs found.")
			return nil
		}
		for _, d := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  v%-3d %-10s %s\n", d.ID, d.Version, d.Status, d.Title)
		}
		return nil
	},
}

var rfcShowCmd = &cobra.Command{
	Use:   "show <rfc-id>",
	Short: "Print the current content of an RFC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		doc, err := facade.GetRFC(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "RFC %s (v%d, %s)\nTitle: %s\nAuthor: %s\n\n%s\n",
			doc.ID, doc.Version, doc.Status, doc.Title, doc.AuthorID, doc.Content)
		return nil
	},
}

var rfcStatusCmd = &cobra.Command{
	Use:   "status <rfc-id> <new-status>",
	Short: "Transition an RFC to a new lifecycle status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, err := buildFacade()
		if err != nil {
			return err
		}
		status, err := rfc.ParseStatus(args[1])
		if err != nil {
			return err
		}
		doc, err := facade.UpdateStatus(args[0], status)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "RFC %s is now %s\n", doc.ID, doc.Status)
		return nil
	},
}

func init() {
	rfcCreateCmd.Flags().StringVar(&rfcCreateAuthor, "author", "", "Author recorded on the document")
	rfcCreateCmd.Flags().StringVar(&rfcCreateUser, "user", "", "Requesting user recorded on the document")
	_ = rfcCreateCmd.MarkFlagRequired("author")
	_ = rfcCreateCmd.MarkFlagRequired("user")
	rfcListCmd.Flags().StringVar(&rfcListStatus, "status", "", "Filter by status")

	rfcCmd.AddCommand(rfcCreateCmd, rfcListCmd, rfcShowCmd, rfcStatusCmd)
	RootCmd.AddCommand(rfcCmd)
}
