package cli

import (
	"github.com/spf13/cobra"
)

func newDelegationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delegation",
		Short: "Delegation lifecycle commands",
	}

	cmd.AddCommand(newDelegationStartCmd())
	cmd.AddCommand(newDelegationCommitCmd())
	cmd.AddCommand(newDelegationStopCmd())

	return cmd
}

func newDelegationStartCmd() *cobra.Command {
	var venue string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Delegate your player record to the auxiliary venue",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			var req any
			if venue != "" {
				req = map[string]string{"venue": venue}
			}

			var result Player
			if err := client.Post("/api/v1/players/"+signer+"/delegation", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&venue, "venue", "", "Venue name (defaults to the server's venue)")

	return cmd
}

func newDelegationCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Checkpoint the venue state back to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post("/api/v1/players/"+signer+"/delegation/commit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDelegationStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Undelegate your player record back to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Delete("/api/v1/players/"+signer+"/delegation", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
