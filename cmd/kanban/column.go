package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"kanban/internal/core"
	"kanban/internal/domain"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage columns",
}

var columnCreateCmd = &cobra.Command{
	Use:   "create BOARD_ID NAME",
	Short: "Add a column to a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateColumn")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			boardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			id, err := a.Service().CreateColumn(boardID, args[1], intPtr(cmd, "position"))
			if err != nil {
				return nil, err
			}
			return a.Service().GetColumn(id)
		})
	},
}

var columnListCmd = &cobra.Command{
	Use:   "list BOARD_ID",
	Short: "List a board's columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListColumns")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			boardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			cols, err := a.Service().ListColumns(boardID)
			if err != nil {
				return nil, err
			}
			return newListResponse(cols), nil
		})
	},
}

var columnUpdateCmd = &cobra.Command{
	Use:   "update COLUMN_ID",
	Short: "Update a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateColumn")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			updates := domain.ColumnUpdate{
				Name:     stringPtr(cmd, "name"),
				Position: intPtr(cmd, "position"),
				WIPLimit: intUpdate(cmd, "wip-limit", "clear-wip-limit"),
			}
			if err := a.Service().UpdateColumn(id, updates); err != nil {
				return nil, err
			}
			return a.Service().GetColumn(id)
		})
	},
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete COLUMN_ID",
	Short: "Delete an empty column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteColumn")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().DeleteColumn(id); err != nil {
				return nil, err
			}
			return map[string]string{"deleted": id.String()}, nil
		})
	},
}

var columnReorderCmd = &cobra.Command{
	Use:   "reorder COLUMN_ID POSITION",
	Short: "Move a column to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReorderColumn")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return nil, core.Validationf("invalid position %q", args[1])
			}
			if err := a.Service().ReorderColumn(id, pos); err != nil {
				return nil, err
			}
			return a.Service().GetColumn(id)
		})
	},
}

func init() {
	columnCreateCmd.Flags().Int("position", 0, "position slot, defaults to the end")
	columnUpdateCmd.Flags().String("name", "", "new name")
	columnUpdateCmd.Flags().Int("position", 0, "new position")
	columnUpdateCmd.Flags().Int("wip-limit", 0, "work-in-progress limit")
	columnUpdateCmd.Flags().Bool("clear-wip-limit", false, "clear the WIP limit")

	columnCmd.AddCommand(columnCreateCmd, columnListCmd, columnUpdateCmd,
		columnDeleteCmd, columnReorderCmd)
	rootCmd.AddCommand(columnCmd)
}
