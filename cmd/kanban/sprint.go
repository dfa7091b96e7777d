package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kanban/internal/app"
	"kanban/internal/domain"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
}

// sprintView decorates a sprint with its rendered name for output.
type sprintView struct {
	domain.Sprint
	Name string `json:"name"`
}

func sprintViewOf(a *app.App, id uuid.UUID) (sprintView, error) {
	sp, err := a.Service().GetSprint(id)
	if err != nil {
		return sprintView{}, err
	}
	name, err := a.Service().SprintName(id)
	if err != nil {
		return sprintView{}, err
	}
	return sprintView{Sprint: sp, Name: name}, nil
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create BOARD_ID",
	Short: "Create a sprint in planning",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			boardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			id, err := a.Service().CreateSprint(boardID, stringPtr(cmd, "name"), stringPtr(cmd, "prefix"))
			if err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintListCmd = &cobra.Command{
	Use:   "list BOARD_ID",
	Short: "List a board's sprints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListSprints")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			boardID, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			sprints, err := a.Service().ListSprints(boardID)
			if err != nil {
				return nil, err
			}
			views := make([]sprintView, 0, len(sprints))
			for _, sp := range sprints {
				name, err := a.Service().SprintName(sp.ID)
				if err != nil {
					return nil, err
				}
				views = append(views, sprintView{Sprint: sp, Name: name})
			}
			return newListResponse(views), nil
		})
	},
}

var sprintGetCmd = &cobra.Command{
	Use:   "get SPRINT_ID",
	Short: "Show one sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintUpdateCmd = &cobra.Command{
	Use:   "update SPRINT_ID",
	Short: "Update a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			updates := domain.SprintUpdate{
				Prefix:     stringUpdate(cmd, "prefix", "clear-prefix"),
				CardPrefix: stringUpdate(cmd, "card-prefix", "clear-card-prefix"),
			}
			updates.StartDate, err = timeUpdate(cmd, "start", "clear-start")
			if err != nil {
				return nil, err
			}
			updates.EndDate, err = timeUpdate(cmd, "end", "clear-end")
			if err != nil {
				return nil, err
			}
			if err := a.Service().UpdateSprint(id, stringPtr(cmd, "name"), updates); err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintActivateCmd = &cobra.Command{
	Use:   "activate SPRINT_ID",
	Short: "Start a planning sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ActivateSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().ActivateSprint(id, intPtr(cmd, "duration")); err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintCompleteCmd = &cobra.Command{
	Use:   "complete SPRINT_ID",
	Short: "Complete an active sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CompleteSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().CompleteSprint(id); err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintCancelCmd = &cobra.Command{
	Use:   "cancel SPRINT_ID",
	Short: "Cancel a planning or active sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CancelSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().CancelSprint(id); err != nil {
				return nil, err
			}
			return sprintViewOf(a, id)
		})
	},
}

var sprintDeleteCmd = &cobra.Command{
	Use:   "delete SPRINT_ID",
	Short: "Delete a sprint and unassign its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteSprint")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := a.Service().DeleteSprint(id); err != nil {
				return nil, err
			}
			return map[string]string{"deleted": id.String()}, nil
		})
	},
}

func init() {
	sprintCreateCmd.Flags().String("name", "", "sprint name, defaults to the board's name pool")
	sprintCreateCmd.Flags().String("prefix", "", "sprint prefix override")

	sprintUpdateCmd.Flags().String("name", "", "new sprint name")
	sprintUpdateCmd.Flags().String("prefix", "", "sprint prefix override")
	sprintUpdateCmd.Flags().Bool("clear-prefix", false, "clear the prefix override")
	sprintUpdateCmd.Flags().String("card-prefix", "", "card prefix override")
	sprintUpdateCmd.Flags().Bool("clear-card-prefix", false, "clear the card prefix override")
	sprintUpdateCmd.Flags().String("start", "", "start date (RFC 3339 or YYYY-MM-DD)")
	sprintUpdateCmd.Flags().Bool("clear-start", false, "clear the start date")
	sprintUpdateCmd.Flags().String("end", "", "end date (RFC 3339 or YYYY-MM-DD)")
	sprintUpdateCmd.Flags().Bool("clear-end", false, "clear the end date")

	sprintActivateCmd.Flags().Int("duration", 0, "sprint length in days, defaults to board then config")

	sprintCmd.AddCommand(sprintCreateCmd, sprintListCmd, sprintGetCmd, sprintUpdateCmd,
		sprintActivateCmd, sprintCompleteCmd, sprintCancelCmd, sprintDeleteCmd)
	rootCmd.AddCommand(sprintCmd)
}
