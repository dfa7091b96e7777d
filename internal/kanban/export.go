package kanban

import (
	"github.com/google/uuid"

	"kanban/internal/command"
	"kanban/internal/core"
	"kanban/internal/domain"
)

// ExportBoard bundles one board with everything it owns.
func (s *Service) ExportBoard(boardID uuid.UUID) (*domain.BoardExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportBoardLocked(boardID)
}

// ExportAll bundles every board in the workspace.
func (s *Service) ExportAll() (*domain.AllBoardsExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &domain.AllBoardsExport{}
	for _, board := range s.snapshot.Boards {
		exp, err := s.exportBoardLocked(board.ID)
		if err != nil {
			return nil, err
		}
		out.Boards = append(out.Boards, *exp)
	}
	return out, nil
}

func (s *Service) exportBoardLocked(boardID uuid.UUID) (*domain.BoardExport, error) {
	board := s.snapshot.BoardByID(boardID)
	if board == nil {
		return nil, core.NotFoundf("board %s", boardID)
	}

	exp := &domain.BoardExport{Board: *board}
	owned := make(map[uuid.UUID]bool)
	for _, col := range s.snapshot.Columns {
		if col.BoardID == boardID {
			exp.Columns = append(exp.Columns, col)
			owned[col.ID] = true
		}
	}
	for _, card := range s.snapshot.Cards {
		if owned[card.ColumnID] {
			exp.Cards = append(exp.Cards, card)
		}
	}
	for _, ac := range s.snapshot.ArchivedCards {
		if owned[ac.Card.ColumnID] || owned[ac.OriginalColumnID] {
			exp.ArchivedCards = append(exp.ArchivedCards, ac)
		}
	}
	for _, sp := range s.snapshot.Sprints {
		if sp.BoardID == boardID {
			exp.Sprints = append(exp.Sprints, sp)
		}
	}
	return exp, nil
}

// ImportBoard inserts an exported board into the workspace as one
// undoable step. Every id in the document must be new.
func (s *Service) ImportBoard(exp *domain.BoardExport) error {
	return s.apply(&command.ImportBoard{Export: exp})
}
