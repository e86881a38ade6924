package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShootCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameResultsCmd())

	return cmd
}

// parsePosition parses an "x,y,z" coordinate triple
func parsePosition(s string) (map[string]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("position must be x,y,z")
	}

	coords := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		coords[i] = v
	}

	return map[string]float64{"x": coords[0], "y": coords[1], "z": coords[2]}, nil
}

// parsePlayerSpec parses a "name:color:x,y,z" participant spec
func parsePlayerSpec(s string) (map[string]any, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("player spec must be name:color:x,y,z")
	}

	pos, err := parsePosition(parts[2])
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"name":     parts[0],
		"color":    parts[1],
		"position": pos,
	}, nil
}

func newGameStartCmd() *cobra.Command {
	var players []string
	var duration int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		Long: `Start a new game with the given participants.

Each --player flag takes a name:color:x,y,z spec, e.g.:

  inkctl game start --player "Alice:red:-4,0,0" --player "Bob:blue:4,0,0" --duration 180`,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]map[string]any, len(players))
			for i, p := range players {
				spec, err := parsePlayerSpec(p)
				if err != nil {
					return err
				}
				specs[i] = spec
			}

			req := map[string]any{
				"players":          specs,
				"duration_seconds": duration,
			}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&players, "player", nil, "Participant as name:color:x,y,z (repeat per player)")
	cmd.Flags().IntVar(&duration, "duration", 180, "Game duration in seconds")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShootCmd() *cobra.Command {
	var playerID, at string
	var size float64

	cmd := &cobra.Command{
		Use:   "shoot <id>",
		Short: "Shoot ink at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(at)
			if err != nil {
				return err
			}

			req := map[string]any{
				"player_id": playerID,
				"position":  pos,
				"size":      size,
			}
			var result ShootResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/shots", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Shooting player ID (required)")
	cmd.Flags().StringVar(&at, "at", "", "Target position as x,y,z (required)")
	cmd.Flags().Float64Var(&size, "size", 0.5, "Spot size")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newGameMoveCmd() *cobra.Command {
	var playerID, to string

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a player to a new position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(to)
			if err != nil {
				return err
			}

			req := map[string]any{
				"player_id": playerID,
				"position":  pos,
			}
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/position", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Moving player ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target position as x,y,z (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End a running game and compute final scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/end", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a game without results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game cancelled")
			return nil
		},
	}
}

func newGameResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <id>",
		Short: "Show final results of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResultList

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/results", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
