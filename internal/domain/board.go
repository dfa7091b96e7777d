package domain

import (
	"time"

	"github.com/google/uuid"
)

// SortField selects the attribute used to order a board's task list.
type SortField string

const (
	SortFieldPoints    SortField = "Points"
	SortFieldPriority  SortField = "Priority"
	SortFieldCreatedAt SortField = "CreatedAt"
	SortFieldUpdatedAt SortField = "UpdatedAt"
	SortFieldStatus    SortField = "Status"
	SortFieldPosition  SortField = "Position"
	SortFieldDefault   SortField = "Default"
)

// SortOrder is the direction of a task sort.
type SortOrder string

const (
	SortAscending  SortOrder = "Ascending"
	SortDescending SortOrder = "Descending"
)

// TaskListView selects how a board's task list is presented.
type TaskListView string

const (
	ViewFlat            TaskListView = "Flat"
	ViewGroupedByColumn TaskListView = "GroupedByColumn"
	ViewColumn          TaskListView = "ColumnView"
)

// Board is the top-level aggregate. Destroying a board cascades to its
// columns, cards, archived cards, sprints and graph edges.
//
// The board record holds the per-board monotonic counters for card and
// sprint numbers, and the pool of sprint names consumed by newly created
// sprints.
type Board struct {
	ID                  uuid.UUID    `json:"id"`
	Name                string       `json:"name"`
	Description         *string      `json:"description,omitempty"`
	SprintPrefix        *string      `json:"sprint_prefix,omitempty"`
	CardPrefix          *string      `json:"card_prefix,omitempty"`
	TaskSortField       SortField    `json:"task_sort_field"`
	TaskSortOrder       SortOrder    `json:"task_sort_order"`
	SprintDurationDays  *int         `json:"sprint_duration_days,omitempty"`
	SprintNames         []string     `json:"sprint_names,omitempty"`
	SprintNameUsedCount int          `json:"sprint_name_used_count"`
	NextCardNumber      int          `json:"next_card_number"`
	NextSprintNumber    int          `json:"next_sprint_number"`
	ActiveSprintID      *uuid.UUID   `json:"active_sprint_id,omitempty"`
	TaskListView        TaskListView `json:"task_list_view"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// NewBoard creates a board with default sort settings and counters at 1.
func NewBoard(id uuid.UUID, name string, description *string, now time.Time) Board {
	return Board{
		ID:               id,
		Name:             name,
		Description:      description,
		TaskSortField:    SortFieldDefault,
		TaskSortOrder:    SortAscending,
		NextCardNumber:   1,
		NextSprintNumber: 1,
		TaskListView:     ViewFlat,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// AllocateCardNumber returns the next card number and advances the counter.
func (b *Board) AllocateCardNumber(now time.Time) int {
	n := b.NextCardNumber
	b.NextCardNumber++
	b.UpdatedAt = now
	return n
}

// AllocateSprintNumber returns the next sprint number and advances the counter.
func (b *Board) AllocateSprintNumber(now time.Time) int {
	n := b.NextSprintNumber
	b.NextSprintNumber++
	b.UpdatedAt = now
	return n
}

// ConsumeSprintName hands out the next unused name from the board's
// sprint name pool, or -1 when the pool is exhausted.
func (b *Board) ConsumeSprintName(now time.Time) int {
	if b.SprintNameUsedCount >= len(b.SprintNames) {
		return -1
	}
	idx := b.SprintNameUsedCount
	b.SprintNameUsedCount++
	b.UpdatedAt = now
	return idx
}

// AddSprintName inserts a name at the used-count cursor and consumes it,
// returning its index. Used when a sprint is created with an explicit name.
func (b *Board) AddSprintName(name string, now time.Time) int {
	if b.SprintNameUsedCount > len(b.SprintNames) {
		b.SprintNameUsedCount = len(b.SprintNames)
	}
	idx := b.SprintNameUsedCount
	b.SprintNames = append(b.SprintNames[:idx], append([]string{name}, b.SprintNames[idx:]...)...)
	b.SprintNameUsedCount++
	b.UpdatedAt = now
	return idx
}

// EffectiveCardPrefix resolves the card prefix, falling back to the default.
func (b *Board) EffectiveCardPrefix(defaultPrefix string) string {
	if b.CardPrefix != nil {
		return *b.CardPrefix
	}
	return defaultPrefix
}

// EffectiveSprintPrefix resolves the sprint prefix, falling back to the default.
func (b *Board) EffectiveSprintPrefix(defaultPrefix string) string {
	if b.SprintPrefix != nil {
		return *b.SprintPrefix
	}
	return defaultPrefix
}

// SetTaskSort updates the board's task sort preference.
func (b *Board) SetTaskSort(field SortField, order SortOrder, now time.Time) {
	b.TaskSortField = field
	b.TaskSortOrder = order
	b.UpdatedAt = now
}

// SetTaskListView updates the board's task list presentation.
func (b *Board) SetTaskListView(view TaskListView, now time.Time) {
	b.TaskListView = view
	b.UpdatedAt = now
}

// BoardUpdate is a partial update applied with Board.Apply.
type BoardUpdate struct {
	Name               *string
	Description        FieldUpdate[string]
	SprintPrefix       FieldUpdate[string]
	CardPrefix         FieldUpdate[string]
	TaskSortField      *SortField
	TaskSortOrder      *SortOrder
	SprintDurationDays FieldUpdate[int]
	TaskListView       *TaskListView
	ActiveSprintID     FieldUpdate[uuid.UUID]
}

// Apply merges the update into the board and refreshes UpdatedAt.
func (b *Board) Apply(u BoardUpdate, now time.Time) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	u.Description.Apply(&b.Description)
	u.SprintPrefix.Apply(&b.SprintPrefix)
	u.CardPrefix.Apply(&b.CardPrefix)
	if u.TaskSortField != nil {
		b.TaskSortField = *u.TaskSortField
	}
	if u.TaskSortOrder != nil {
		b.TaskSortOrder = *u.TaskSortOrder
	}
	u.SprintDurationDays.Apply(&b.SprintDurationDays)
	if u.TaskListView != nil {
		b.TaskListView = *u.TaskListView
	}
	u.ActiveSprintID.Apply(&b.ActiveSprintID)
	b.UpdatedAt = now
}
