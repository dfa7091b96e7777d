package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kanban/internal/core"
	"kanban/internal/domain"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardCreateCmd = &cobra.Command{
	Use:   "create BOARD_ID COLUMN_ID TITLE",
	Short: "Add a card to a column",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			boardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			columnID, err := parseID(args[1])
			if err != nil {
				return nil, err
			}
			id, err := a.Service().CreateCard(boardID, columnID, args[2])
			if err != nil {
				return nil, err
			}
			return a.Service().GetCard(id)
		})
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards matching the filter flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCards")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			filter, err := cardFilterFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			cards, err := a.Service().ListCards(filter)
			if err != nil {
				return nil, err
			}
			return newListResponse(cards), nil
		})
	},
}

var cardListArchivedCmd = &cobra.Command{
	Use:   "list-archived",
	Short: "List archived cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListArchivedCards")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			var boardID *uuid.UUID
			if raw := stringPtr(cmd, "board"); raw != nil {
				id, err := parseID(*raw)
				if err != nil {
					return nil, err
				}
				boardID = &id
			}
			return newListResponse(a.Service().ListArchivedCards(boardID)), nil
		})
	},
}

var cardGetCmd = &cobra.Command{
	Use:   "get CARD_ID",
	Short: "Show one card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.Service().GetCard(id)
		})
	},
}

var cardUpdateCmd = &cobra.Command{
	Use:   "update CARD_ID",
	Short: "Update a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			updates := domain.CardUpdate{
				Title:       stringPtr(cmd, "title"),
				Description: stringUpdate(cmd, "description", "clear-description"),
				Points:      intUpdate(cmd, "points", "clear-points"),
			}
			if raw := stringPtr(cmd, "priority"); raw != nil {
				p, err := parsePriority(*raw)
				if err != nil {
					return nil, err
				}
				updates.Priority = &p
			}
			if raw := stringPtr(cmd, "status"); raw != nil {
				st, err := parseStatus(*raw)
				if err != nil {
					return nil, err
				}
				updates.Status = &st
			}
			updates.DueDate, err = timeUpdate(cmd, "due", "clear-due")
			if err != nil {
				return nil, err
			}
			if err := a.Service().UpdateCard(id, updates); err != nil {
				return nil, err
			}
			return a.Service().GetCard(id)
		})
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move CARD_ID COLUMN_ID",
	Short: "Move a card to a column on the same board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MoveCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			cardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			columnID, err := parseID(args[1])
			if err != nil {
				return nil, err
			}
			if err := a.Service().MoveCard(cardID, columnID, intPtr(cmd, "position")); err != nil {
				return nil, err
			}
			return a.Service().GetCard(cardID)
		})
	},
}

var cardArchiveCmd = &cobra.Command{
	Use:   "archive CARD_ID...",
	Short: "Archive one or more cards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ArchiveCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			ids, err := parseIDs(args)
			if err != nil {
				return nil, err
			}
			if len(ids) == 1 {
				err = a.Service().ArchiveCard(ids[0])
			} else {
				err = a.Service().BulkArchiveCards(ids)
			}
			if err != nil {
				return nil, err
			}
			return map[string]int{"archived": len(ids)}, nil
		})
	},
}

var cardRestoreCmd = &cobra.Command{
	Use:   "restore CARD_ID",
	Short: "Restore an archived card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RestoreCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			cardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			var columnID *uuid.UUID
			if raw := stringPtr(cmd, "column"); raw != nil {
				id, err := parseID(*raw)
				if err != nil {
					return nil, err
				}
				columnID = &id
			}
			if err := a.Service().RestoreCard(cardID, columnID); err != nil {
				return nil, err
			}
			return a.Service().GetCard(cardID)
		})
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete CARD_ID",
	Short: "Permanently delete a live or archived card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteCard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().DeleteCard(id); err != nil {
				return nil, err
			}
			return map[string]string{"deleted": id.String()}, nil
		})
	},
}

var cardAssignCmd = &cobra.Command{
	Use:   "assign SPRINT_ID CARD_ID...",
	Short: "Assign one or more cards to a sprint",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AssignCardToSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			sprintID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			ids, err := parseIDs(args[1:])
			if err != nil {
				return nil, err
			}
			if len(ids) == 1 {
				err = a.Service().AssignCardToSprint(ids[0], sprintID)
			} else {
				err = a.Service().BulkAssignSprint(ids, sprintID)
			}
			if err != nil {
				return nil, err
			}
			return map[string]int{"assigned": len(ids)}, nil
		})
	},
}

var cardUnassignCmd = &cobra.Command{
	Use:   "unassign CARD_ID",
	Short: "Remove a card's sprint association",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UnassignCardFromSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().UnassignCardFromSprint(id); err != nil {
				return nil, err
			}
			return a.Service().GetCard(id)
		})
	},
}

var cardBulkMoveCmd = &cobra.Command{
	Use:   "bulk-move COLUMN_ID CARD_ID...",
	Short: "Move several cards to one column as a single undoable step",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("BulkMoveCards")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			columnID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			ids, err := parseIDs(args[1:])
			if err != nil {
				return nil, err
			}
			if err := a.Service().BulkMoveCards(ids, columnID); err != nil {
				return nil, err
			}
			return map[string]int{"moved": len(ids)}, nil
		})
	},
}

func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func cardFilterFromFlags(cmd *cobra.Command) (domain.CardFilter, error) {
	var filter domain.CardFilter
	for flag, dst := range map[string]**uuid.UUID{
		"board":  &filter.BoardID,
		"column": &filter.ColumnID,
		"sprint": &filter.SprintID,
	} {
		if raw := stringPtr(cmd, flag); raw != nil {
			id, err := parseID(*raw)
			if err != nil {
				return filter, err
			}
			*dst = &id
		}
	}
	if raw := stringPtr(cmd, "status"); raw != nil {
		st, err := parseStatus(*raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &st
	}
	return filter, nil
}

func parsePriority(s string) (domain.CardPriority, error) {
	switch domain.CardPriority(s) {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical:
		return domain.CardPriority(s), nil
	}
	return "", core.Validationf("invalid priority %q", s)
}

func parseStatus(s string) (domain.CardStatus, error) {
	switch domain.CardStatus(s) {
	case domain.StatusTodo, domain.StatusInProgress, domain.StatusBlocked, domain.StatusDone:
		return domain.CardStatus(s), nil
	}
	return "", core.Validationf("invalid status %q", s)
}

func init() {
	cardListCmd.Flags().String("board", "", "filter by board id")
	cardListCmd.Flags().String("column", "", "filter by column id")
	cardListCmd.Flags().String("sprint", "", "filter by sprint id")
	cardListCmd.Flags().String("status", "", "filter by status")

	cardListArchivedCmd.Flags().String("board", "", "filter by board id")

	cardUpdateCmd.Flags().String("title", "", "new title")
	cardUpdateCmd.Flags().String("description", "", "new description")
	cardUpdateCmd.Flags().Bool("clear-description", false, "clear the description")
	cardUpdateCmd.Flags().String("priority", "", "Low|Medium|High|Critical")
	cardUpdateCmd.Flags().String("status", "", "Todo|InProgress|Blocked|Done")
	cardUpdateCmd.Flags().Int("points", 0, "story points")
	cardUpdateCmd.Flags().Bool("clear-points", false, "clear the points")
	cardUpdateCmd.Flags().String("due", "", "due date (RFC 3339 or YYYY-MM-DD)")
	cardUpdateCmd.Flags().Bool("clear-due", false, "clear the due date")

	cardMoveCmd.Flags().Int("position", 0, "position in the target column, defaults to the end")
	cardRestoreCmd.Flags().String("column", "", "target column, defaults to the original")

	cardCmd.AddCommand(cardCreateCmd, cardListCmd, cardListArchivedCmd, cardGetCmd,
		cardUpdateCmd, cardMoveCmd, cardArchiveCmd, cardRestoreCmd, cardDeleteCmd,
		cardAssignCmd, cardUnassignCmd, cardBulkMoveCmd)
	rootCmd.AddCommand(cardCmd)
}
