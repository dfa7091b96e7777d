package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SprintStatus is the sprint state machine:
// Planning -> Active -> (Completed | Cancelled), Planning -> Cancelled.
// Completed and Cancelled are terminal.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "Planning"
	SprintActive    SprintStatus = "Active"
	SprintCompleted SprintStatus = "Completed"
	SprintCancelled SprintStatus = "Cancelled"
)

// Sprint is a timeboxed iteration on a board. SprintNumber comes from the
// board's monotonic counter; NameIndex points into the board's sprint name
// pool (-1 when unnamed).
type Sprint struct {
	ID           uuid.UUID    `json:"id"`
	BoardID      uuid.UUID    `json:"board_id"`
	SprintNumber int          `json:"sprint_number"`
	NameIndex    *int         `json:"name_index,omitempty"`
	Prefix       *string      `json:"prefix,omitempty"`
	CardPrefix   *string      `json:"card_prefix,omitempty"`
	Status       SprintStatus `json:"status"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewSprint creates a sprint in Planning.
func NewSprint(id, boardID uuid.UUID, sprintNumber int, nameIndex *int, prefix *string, now time.Time) Sprint {
	return Sprint{
		ID:           id,
		BoardID:      boardID,
		SprintNumber: sprintNumber,
		NameIndex:    nameIndex,
		Prefix:       prefix,
		Status:       SprintPlanning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Name resolves the sprint's name from the board's name pool, or "".
func (s *Sprint) Name(board *Board) string {
	if s.NameIndex == nil {
		return ""
	}
	if *s.NameIndex < 0 || *s.NameIndex >= len(board.SprintNames) {
		return ""
	}
	return board.SprintNames[*s.NameIndex]
}

// EffectivePrefix resolves sprint override, then board prefix, then default.
func (s *Sprint) EffectivePrefix(board *Board, defaultPrefix string) string {
	if s.Prefix != nil {
		return *s.Prefix
	}
	return board.EffectiveSprintPrefix(defaultPrefix)
}

// FormattedName renders "prefix-N" or "prefix-N/name".
func (s *Sprint) FormattedName(board *Board, defaultPrefix string) string {
	prefix := s.EffectivePrefix(board, defaultPrefix)
	if name := s.Name(board); name != "" {
		return fmt.Sprintf("%s-%d/%s", prefix, s.SprintNumber, name)
	}
	return fmt.Sprintf("%s-%d", prefix, s.SprintNumber)
}

// Activate starts the sprint: start is now, end is now plus the duration.
// Only valid from Planning; the caller checks CanActivate first.
func (s *Sprint) Activate(durationDays int, now time.Time) {
	start := now
	end := now.AddDate(0, 0, durationDays)
	s.Status = SprintActive
	s.StartDate = &start
	s.EndDate = &end
	s.UpdatedAt = now
}

// Complete marks the sprint Completed, preserving its end date.
func (s *Sprint) Complete(now time.Time) {
	s.Status = SprintCompleted
	s.UpdatedAt = now
}

// Cancel marks the sprint Cancelled.
func (s *Sprint) Cancel(now time.Time) {
	s.Status = SprintCancelled
	s.UpdatedAt = now
}

// CanActivate reports whether the activate transition is legal.
func (s *Sprint) CanActivate() bool { return s.Status == SprintPlanning }

// CanComplete reports whether the complete transition is legal.
func (s *Sprint) CanComplete() bool { return s.Status == SprintActive }

// CanCancel reports whether the cancel transition is legal.
// Cancelling straight from Planning is allowed.
func (s *Sprint) CanCancel() bool {
	return s.Status == SprintActive || s.Status == SprintPlanning
}

// IsEnded reports whether an active sprint has run past its end date.
func (s *Sprint) IsEnded(now time.Time) bool {
	if s.Status != SprintActive || s.EndDate == nil {
		return false
	}
	return now.After(*s.EndDate)
}

// SprintUpdate is a partial update applied with Sprint.Apply.
// Status transitions go through Activate/Complete/Cancel, not here.
type SprintUpdate struct {
	NameIndex  FieldUpdate[int]
	Prefix     FieldUpdate[string]
	CardPrefix FieldUpdate[string]
	StartDate  FieldUpdate[time.Time]
	EndDate    FieldUpdate[time.Time]
}

// Apply merges the update into the sprint and refreshes UpdatedAt.
func (s *Sprint) Apply(u SprintUpdate, now time.Time) {
	u.NameIndex.Apply(&s.NameIndex)
	u.Prefix.Apply(&s.Prefix)
	u.CardPrefix.Apply(&s.CardPrefix)
	u.StartDate.Apply(&s.StartDate)
	u.EndDate.Apply(&s.EndDate)
	s.UpdatedAt = now
}
