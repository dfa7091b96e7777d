package kanban

import (
	"github.com/google/uuid"

	"kanban/internal/command"
	"kanban/internal/domain"
)

// CreateBoard creates a board and returns its id.
func (s *Service) CreateBoard(name string, description, cardPrefix *string) (uuid.UUID, error) {
	cmd := &command.CreateBoard{Name: name, Desc: description, CardPrefix: cardPrefix}
	if err := s.apply(cmd); err != nil {
		return uuid.Nil, err
	}
	return cmd.CreatedID, nil
}

// UpdateBoard applies a partial update to a board.
func (s *Service) UpdateBoard(boardID uuid.UUID, updates domain.BoardUpdate) error {
	return s.apply(&command.UpdateBoard{BoardID: boardID, Updates: updates})
}

// DeleteBoard removes a board and everything it owns.
func (s *Service) DeleteBoard(boardID uuid.UUID) error {
	return s.apply(&command.DeleteBoard{BoardID: boardID})
}

// SetBoardTaskSort updates a board's task sort preference.
func (s *Service) SetBoardTaskSort(boardID uuid.UUID, field domain.SortField, order domain.SortOrder) error {
	return s.apply(&command.SetBoardTaskSort{BoardID: boardID, Field: field, Order: order})
}

// SetBoardTaskListView updates a board's task list presentation.
func (s *Service) SetBoardTaskListView(boardID uuid.UUID, view domain.TaskListView) error {
	return s.apply(&command.SetBoardTaskListView{BoardID: boardID, View: view})
}

// CreateColumn adds a column to a board and returns its id.
func (s *Service) CreateColumn(boardID uuid.UUID, name string, position *int) (uuid.UUID, error) {
	cmd := &command.CreateColumn{BoardID: boardID, Name: name, Position: position}
	if err := s.apply(cmd); err != nil {
		return uuid.Nil, err
	}
	return cmd.CreatedID, nil
}

// UpdateColumn applies a partial update to a column.
func (s *Service) UpdateColumn(columnID uuid.UUID, updates domain.ColumnUpdate) error {
	return s.apply(&command.UpdateColumn{ColumnID: columnID, Updates: updates})
}

// DeleteColumn removes an empty column.
func (s *Service) DeleteColumn(columnID uuid.UUID) error {
	return s.apply(&command.DeleteColumn{ColumnID: columnID})
}

// ReorderColumn moves a column to a new position slot.
func (s *Service) ReorderColumn(columnID uuid.UUID, position int) error {
	return s.apply(&command.ReorderColumn{ColumnID: columnID, Position: position})
}

// CreateCard adds a card to a column and returns its id.
func (s *Service) CreateCard(boardID, columnID uuid.UUID, title string) (uuid.UUID, error) {
	cmd := &command.CreateCard{BoardID: boardID, ColumnID: columnID, Title: title}
	if err := s.apply(cmd); err != nil {
		return uuid.Nil, err
	}
	return cmd.CreatedID, nil
}

// UpdateCard applies a partial update to a live card.
func (s *Service) UpdateCard(cardID uuid.UUID, updates domain.CardUpdate) error {
	return s.apply(&command.UpdateCard{CardID: cardID, Updates: updates})
}

// MoveCard relocates a card within its board.
func (s *Service) MoveCard(cardID, columnID uuid.UUID, position *int) error {
	return s.apply(&command.MoveCard{CardID: cardID, ColumnID: columnID, Position: position})
}

// ArchiveCard moves a card to the archive.
func (s *Service) ArchiveCard(cardID uuid.UUID) error {
	return s.apply(&command.ArchiveCard{CardID: cardID})
}

// RestoreCard returns an archived card to a column.
func (s *Service) RestoreCard(cardID uuid.UUID, columnID *uuid.UUID) error {
	return s.apply(&command.RestoreCard{CardID: cardID, ColumnID: columnID})
}

// DeleteCard permanently removes a live or archived card.
func (s *Service) DeleteCard(cardID uuid.UUID) error {
	return s.apply(&command.DeleteCard{CardID: cardID})
}

// AssignCardToSprint associates a card with a sprint.
func (s *Service) AssignCardToSprint(cardID, sprintID uuid.UUID) error {
	return s.apply(&command.AssignCardToSprint{CardID: cardID, SprintID: sprintID})
}

// UnassignCardFromSprint clears a card's sprint association.
func (s *Service) UnassignCardFromSprint(cardID uuid.UUID) error {
	return s.apply(&command.UnassignCardFromSprint{CardID: cardID})
}

// BulkArchiveCards archives several cards as one undoable step.
func (s *Service) BulkArchiveCards(cardIDs []uuid.UUID) error {
	return s.apply(&command.BulkArchiveCards{CardIDs: cardIDs})
}

// BulkMoveCards moves several cards to one column as one undoable step.
func (s *Service) BulkMoveCards(cardIDs []uuid.UUID, columnID uuid.UUID) error {
	return s.apply(&command.BulkMoveCards{CardIDs: cardIDs, ColumnID: columnID})
}

// BulkAssignSprint assigns several cards to one sprint as one undoable
// step.
func (s *Service) BulkAssignSprint(cardIDs []uuid.UUID, sprintID uuid.UUID) error {
	return s.apply(&command.BulkAssignSprint{CardIDs: cardIDs, SprintID: sprintID})
}

// CreateSprint adds a sprint in Planning and returns its id.
func (s *Service) CreateSprint(boardID uuid.UUID, name, prefix *string) (uuid.UUID, error) {
	cmd := &command.CreateSprint{BoardID: boardID, Name: name, Prefix: prefix}
	if err := s.apply(cmd); err != nil {
		return uuid.Nil, err
	}
	return cmd.CreatedID, nil
}

// UpdateSprint applies a partial update to a sprint.
func (s *Service) UpdateSprint(sprintID uuid.UUID, name *string, updates domain.SprintUpdate) error {
	return s.apply(&command.UpdateSprint{SprintID: sprintID, Name: name, Updates: updates})
}

// ActivateSprint starts a sprint, defaulting the duration from the
// board and then the config.
func (s *Service) ActivateSprint(sprintID uuid.UUID, durationDays *int) error {
	return s.apply(&command.ActivateSprint{
		SprintID:            sprintID,
		DurationDays:        durationDays,
		DefaultDurationDays: s.cfg.SprintDurationDays,
	})
}

// CompleteSprint finishes an active sprint.
func (s *Service) CompleteSprint(sprintID uuid.UUID) error {
	return s.apply(&command.CompleteSprint{SprintID: sprintID})
}

// CancelSprint cancels a planning or active sprint.
func (s *Service) CancelSprint(sprintID uuid.UUID) error {
	return s.apply(&command.CancelSprint{SprintID: sprintID})
}

// DeleteSprint removes a sprint and unassigns its cards.
func (s *Service) DeleteSprint(sprintID uuid.UUID) error {
	return s.apply(&command.DeleteSprint{SprintID: sprintID})
}

// AddDependency adds a typed edge between two cards.
func (s *Service) AddDependency(sourceID, targetID uuid.UUID, edgeType domain.EdgeType) error {
	return s.apply(&command.AddDependency{SourceID: sourceID, TargetID: targetID, EdgeType: edgeType})
}

// RemoveDependency permanently removes the edges between two cards.
func (s *Service) RemoveDependency(sourceID, targetID uuid.UUID) error {
	return s.apply(&command.RemoveDependency{SourceID: sourceID, TargetID: targetID})
}

// ArchiveDependency soft-deletes the edges between two cards.
func (s *Service) ArchiveDependency(sourceID, targetID uuid.UUID) error {
	return s.apply(&command.ArchiveDependency{SourceID: sourceID, TargetID: targetID})
}

// UnarchiveDependency restores soft-deleted edges between two cards.
func (s *Service) UnarchiveDependency(sourceID, targetID uuid.UUID) error {
	return s.apply(&command.UnarchiveDependency{SourceID: sourceID, TargetID: targetID})
}
