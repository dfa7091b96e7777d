package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// parseID parses a uuid argument into a validation error on bad input.
func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, core.Validationf("invalid id %q", s)
	}
	return id, nil
}

// stringPtr returns the flag value when it was set, else nil.
func stringPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// intPtr returns the flag value when it was set, else nil.
func intPtr(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// stringUpdate maps a value flag and its clear counterpart onto a
// three-state field update.
func stringUpdate(cmd *cobra.Command, name, clearName string) domain.FieldUpdate[string] {
	if c, _ := cmd.Flags().GetBool(clearName); c {
		return domain.Clear[string]()
	}
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return domain.Set(v)
	}
	return domain.NoChange[string]()
}

// intUpdate is stringUpdate for int fields.
func intUpdate(cmd *cobra.Command, name, clearName string) domain.FieldUpdate[int] {
	if c, _ := cmd.Flags().GetBool(clearName); c {
		return domain.Clear[int]()
	}
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return domain.Set(v)
	}
	return domain.NoChange[int]()
}

// timeUpdate parses a date flag (RFC 3339 or YYYY-MM-DD) into a
// three-state field update.
func timeUpdate(cmd *cobra.Command, name, clearName string) (domain.FieldUpdate[time.Time], error) {
	if c, _ := cmd.Flags().GetBool(clearName); c {
		return domain.Clear[time.Time](), nil
	}
	if !cmd.Flags().Changed(name) {
		return domain.NoChange[time.Time](), nil
	}
	raw, _ := cmd.Flags().GetString(name)
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return domain.NoChange[time.Time](), core.Validationf("invalid date %q, want RFC 3339 or YYYY-MM-DD", raw)
	}
	return domain.Set(t.UTC()), nil
}
