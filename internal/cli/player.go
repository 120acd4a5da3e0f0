package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerJoinCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerMoveCmd())

	return cmd
}

func newPlayerJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the board as a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Post("/api/v1/players", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [authority]",
		Short: "Show a player record (defaults to your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := targetAuthority(args)
			if err != nil {
				return err
			}

			var result Player
			if err := client.Get("/api/v1/players/"+authority, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerMoveCmd() *cobra.Command {
	var dx, dy int8
	var authority string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a player by the given deltas",
		Long: `Move a player by the given deltas, clamped to the board edges.

By default the move targets your own player. When signing with a session
key, pass --authority to name the player the key was registered for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := authority
			if target == "" {
				signer, err := client.Signer()
				if err != nil {
					return err
				}
				target = signer
			}

			req := map[string]int8{"dx": dx, "dy": dy}
			var result Player

			if err := client.Post("/api/v1/players/"+target+"/move", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int8Var(&dx, "dx", 0, "Horizontal delta (-128 to 127)")
	cmd.Flags().Int8Var(&dy, "dy", 0, "Vertical delta (-128 to 127)")
	cmd.Flags().StringVar(&authority, "authority", "", "Player authority (defaults to your own key)")

	return cmd
}

// targetAuthority resolves an optional positional authority argument,
// falling back to the local key's identity.
func targetAuthority(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	signer, err := client.Signer()
	if err != nil {
		return "", fmt.Errorf("no authority given and %w", err)
	}
	return signer, nil
}
