package cli

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Signing key management commands",
	}

	cmd.AddCommand(newKeyGenerateCmd())
	cmd.AddCommand(newKeyShowCmd())

	return cmd
}

func newKeyGenerateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(cfg.KeyFile); err == nil {
					return fmt.Errorf("key file %s already exists; use --force to overwrite", cfg.KeyFile)
				}
			}

			_, key, err := ed25519.GenerateKey(rand.Reader)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}

			if err := cfg.SaveKey(key); err != nil {
				return fmt.Errorf("failed to save key: %w", err)
			}

			// Rebuild the client so the new key is usable immediately
			client = NewClient(cfg.ServerURL, key)
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(KeyInfo{PublicKey: signer, KeyFile: cfg.KeyFile})
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key file")

	return cmd
}

func newKeyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the public key of the local signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := client.Signer()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(KeyInfo{PublicKey: signer, KeyFile: cfg.KeyFile})
			return nil
		},
	}
}
