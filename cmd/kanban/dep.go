package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kanban/internal/core"
	"kanban/internal/domain"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage card dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add SOURCE_ID TARGET_ID",
	Short: "Add a dependency edge (source blocks or relates to target)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddDependency")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			sourceID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			targetID, err := parseID(args[1])
			if err != nil {
				return nil, err
			}
			edgeType := domain.EdgeBlocks
			if raw := stringPtr(cmd, "type"); raw != nil {
				edgeType, err = parseEdgeType(*raw)
				if err != nil {
					return nil, err
				}
			}
			if err := a.Service().AddDependency(sourceID, targetID, edgeType); err != nil {
				return nil, err
			}
			return map[string]string{
				"source":    sourceID.String(),
				"target":    targetID.String(),
				"edge_type": string(edgeType),
			}, nil
		})
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove SOURCE_ID TARGET_ID",
	Short: "Permanently remove the edges between two cards",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveDependency")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			sourceID, targetID, err := parseIDPair(args)
			if err != nil {
				return nil, err
			}
			if err := a.Service().RemoveDependency(sourceID, targetID); err != nil {
				return nil, err
			}
			return map[string]string{"source": sourceID.String(), "target": targetID.String()}, nil
		})
	},
}

var depArchiveCmd = &cobra.Command{
	Use:   "archive SOURCE_ID TARGET_ID",
	Short: "Archive the edges between two cards",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ArchiveDependency")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			sourceID, targetID, err := parseIDPair(args)
			if err != nil {
				return nil, err
			}
			if err := a.Service().ArchiveDependency(sourceID, targetID); err != nil {
				return nil, err
			}
			return map[string]string{"source": sourceID.String(), "target": targetID.String()}, nil
		})
	},
}

var depUnarchiveCmd = &cobra.Command{
	Use:   "unarchive SOURCE_ID TARGET_ID",
	Short: "Restore archived edges between two cards",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UnarchiveDependency")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			sourceID, targetID, err := parseIDPair(args)
			if err != nil {
				return nil, err
			}
			if err := a.Service().UnarchiveDependency(sourceID, targetID); err != nil {
				return nil, err
			}
			return map[string]string{"source": sourceID.String(), "target": targetID.String()}, nil
		})
	},
}

var depShowCmd = &cobra.Command{
	Use:   "show CARD_ID",
	Short: "Show a card's blockers, blocked cards, and relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ShowDependencies")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			blockers, err := a.Service().Blockers(id)
			if err != nil {
				return nil, err
			}
			blocking, err := a.Service().BlockedBy(id)
			if err != nil {
				return nil, err
			}
			related, err := a.Service().Related(id)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"card":     id.String(),
				"blockers": blockers,
				"blocking": blocking,
				"related":  related,
			}, nil
		})
	},
}

func parseIDPair(args []string) (uuid.UUID, uuid.UUID, error) {
	sourceID, err := parseID(args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	targetID, err := parseID(args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return sourceID, targetID, nil
}

func parseEdgeType(s string) (domain.EdgeType, error) {
	switch domain.EdgeType(s) {
	case domain.EdgeBlocks, domain.EdgeRelatesTo:
		return domain.EdgeType(s), nil
	}
	return "", core.Validationf("invalid edge type %q", s)
}

func init() {
	depAddCmd.Flags().String("type", string(domain.EdgeBlocks), "Blocks|RelatesTo")

	depCmd.AddCommand(depAddCmd, depRemoveCmd, depArchiveCmd, depUnarchiveCmd, depShowCmd)
	rootCmd.AddCommand(depCmd)
}
