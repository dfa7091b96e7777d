package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"kanban/internal/core"
	"kanban/internal/domain"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := a.Service().CreateBoard(args[0], stringPtr(cmd, "description"), stringPtr(cmd, "card-prefix"))
			if err != nil {
				return nil, err
			}
			return a.Service().GetBoard(id)
		})
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListBoards")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			return newListResponse(a.Service().ListBoards()), nil
		})
	},
}

var boardGetCmd = &cobra.Command{
	Use:   "get BOARD_ID",
	Short: "Show one board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.Service().GetBoard(id)
		})
	},
}

var boardUpdateCmd = &cobra.Command{
	Use:   "update BOARD_ID",
	Short: "Update a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			updates := domain.BoardUpdate{
				Name:               stringPtr(cmd, "name"),
				Description:        stringUpdate(cmd, "description", "clear-description"),
				SprintPrefix:       stringUpdate(cmd, "sprint-prefix", "clear-sprint-prefix"),
				CardPrefix:         stringUpdate(cmd, "card-prefix", "clear-card-prefix"),
				SprintDurationDays: intUpdate(cmd, "sprint-duration", "clear-sprint-duration"),
			}
			if err := a.Service().UpdateBoard(id, updates); err != nil {
				return nil, err
			}
			return a.Service().GetBoard(id)
		})
	},
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete BOARD_ID",
	Short: "Delete a board and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().DeleteBoard(id); err != nil {
				return nil, err
			}
			return map[string]string{"deleted": id.String()}, nil
		})
	},
}

var boardSortCmd = &cobra.Command{
	Use:   "sort BOARD_ID FIELD ORDER",
	Short: "Set a board's task sort (field: Points|Priority|CreatedAt|UpdatedAt|Status|Position|Default, order: Ascending|Descending)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetBoardTaskSort")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			field, err := parseSortField(args[1])
			if err != nil {
				return nil, err
			}
			order, err := parseSortOrder(args[2])
			if err != nil {
				return nil, err
			}
			if err := a.Service().SetBoardTaskSort(id, field, order); err != nil {
				return nil, err
			}
			return a.Service().GetBoard(id)
		})
	},
}

var boardViewCmd = &cobra.Command{
	Use:   "view BOARD_ID VIEW",
	Short: "Set a board's task list view (Flat|GroupedByColumn|ColumnView)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetBoardTaskListView")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			view, err := parseTaskListView(args[1])
			if err != nil {
				return nil, err
			}
			if err := a.Service().SetBoardTaskListView(id, view); err != nil {
				return nil, err
			}
			return a.Service().GetBoard(id)
		})
	},
}

var boardExportCmd = &cobra.Command{
	Use:   "export [BOARD_ID]",
	Short: "Export one board, or all boards when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			if len(args) == 0 {
				return a.Service().ExportAll()
			}
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return a.Service().ExportBoard(id)
		})
	},
}

var boardImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a board export document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ImportBoard")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return nil, core.IOErr("reading import file", err)
			}
			var exp domain.BoardExport
			if err := json.Unmarshal(raw, &exp); err != nil {
				return nil, core.SerializationErr("parsing import file", err)
			}
			if err := a.Service().ImportBoard(&exp); err != nil {
				return nil, err
			}
			return a.Service().GetBoard(exp.Board.ID)
		})
	},
}

func parseSortField(s string) (domain.SortField, error) {
	switch domain.SortField(s) {
	case domain.SortFieldPoints, domain.SortFieldPriority, domain.SortFieldCreatedAt,
		domain.SortFieldUpdatedAt, domain.SortFieldStatus, domain.SortFieldPosition,
		domain.SortFieldDefault:
		return domain.SortField(s), nil
	}
	return "", core.Validationf("invalid sort field %q", s)
}

func parseSortOrder(s string) (domain.SortOrder, error) {
	switch domain.SortOrder(s) {
	case domain.SortAscending, domain.SortDescending:
		return domain.SortOrder(s), nil
	}
	return "", core.Validationf("invalid sort order %q", s)
}

func parseTaskListView(s string) (domain.TaskListView, error) {
	switch domain.TaskListView(s) {
	case domain.ViewFlat, domain.ViewGroupedByColumn, domain.ViewColumn:
		return domain.TaskListView(s), nil
	}
	return "", core.Validationf("invalid task list view %q", s)
}

func init() {
	boardCreateCmd.Flags().String("description", "", "board description")
	boardCreateCmd.Flags().String("card-prefix", "", "card number prefix")

	boardUpdateCmd.Flags().String("name", "", "new name")
	boardUpdateCmd.Flags().String("description", "", "new description")
	boardUpdateCmd.Flags().Bool("clear-description", false, "clear the description")
	boardUpdateCmd.Flags().String("sprint-prefix", "", "sprint name prefix")
	boardUpdateCmd.Flags().Bool("clear-sprint-prefix", false, "clear the sprint prefix")
	boardUpdateCmd.Flags().String("card-prefix", "", "card number prefix")
	boardUpdateCmd.Flags().Bool("clear-card-prefix", false, "clear the card prefix")
	boardUpdateCmd.Flags().Int("sprint-duration", 0, "sprint duration in days")
	boardUpdateCmd.Flags().Bool("clear-sprint-duration", false, "clear the sprint duration")

	boardCmd.AddCommand(boardCreateCmd, boardListCmd, boardGetCmd, boardUpdateCmd,
		boardDeleteCmd, boardSortCmd, boardViewCmd, boardExportCmd, boardImportCmd)
	rootCmd.AddCommand(boardCmd)
}
