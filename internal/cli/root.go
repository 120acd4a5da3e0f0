package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gridledger",
		Short: "CLI tool for the grid ledger API",
		Long: `gridledger is a CLI tool for interacting with the grid ledger JSON API.

Requests that mutate state are signed with a local ed25519 key; generate
one with 'gridledger key generate'. The key's public half is your identity
on the board.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			key, err := cfg.LoadKey()
			if err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, key)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GRIDLEDGER_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "Signing key file path (env: GRIDLEDGER_KEY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newKeyCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newDelegationCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
