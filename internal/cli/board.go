package cli

import (
	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board management commands",
	}

	cmd.AddCommand(newBoardInitCmd())
	cmd.AddCommand(newBoardShowCmd())

	return cmd
}

func newBoardInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the board with your key as its authority",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Board

			if err := client.Post("/api/v1/board", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBoardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the board record",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Board

			if err := client.Get("/api/v1/board", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
