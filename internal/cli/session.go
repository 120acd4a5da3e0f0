package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session key management commands",
	}

	cmd.AddCommand(newSessionRegisterCmd())
	cmd.AddCommand(newSessionRevokeCmd())

	return cmd
}

func newSessionRegisterCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a session key for your player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				return fmt.Errorf("--key is required")
			}

			signer, err := client.Signer()
			if err != nil {
				return err
			}

			req := map[string]string{"session_key": key}
			var result Player

			if err := client.Put("/api/v1/players/"+signer+"/session-key", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Session public key, hex (required)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newSessionRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke your player's session key",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Delete("/api/v1/players/"+signer+"/session-key", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
