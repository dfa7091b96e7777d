package kanban

import (
	"sort"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

// ListBoards returns all boards sorted by name.
func (s *Service) ListBoards() []domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.Board(nil), s.snapshot.Boards...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetBoard returns one board by id.
func (s *Service) GetBoard(boardID uuid.UUID) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	board := s.snapshot.BoardByID(boardID)
	if board == nil {
		return domain.Board{}, core.NotFoundf("board %s", boardID)
	}
	return *board, nil
}

// ListColumns returns a board's columns ordered by position.
func (s *Service) ListColumns(boardID uuid.UUID) ([]domain.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.BoardByID(boardID) == nil {
		return nil, core.NotFoundf("board %s", boardID)
	}
	var out []domain.Column
	for _, col := range s.snapshot.Columns {
		if col.BoardID == boardID {
			out = append(out, col)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// GetColumn returns one column by id.
func (s *Service) GetColumn(columnID uuid.UUID) (domain.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.snapshot.ColumnByID(columnID)
	if col == nil {
		return domain.Column{}, core.NotFoundf("column %s", columnID)
	}
	return *col, nil
}

// GetCard returns one live card by id.
func (s *Service) GetCard(cardID uuid.UUID) (domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card := s.snapshot.CardByID(cardID)
	if card == nil {
		return domain.Card{}, core.NotFoundf("card %s", cardID)
	}
	return *card, nil
}

// ListCards returns live cards matching the filter. When the filter
// names a board, results follow that board's task sort preference;
// otherwise they are ordered by position.
func (s *Service) ListCards(filter domain.CardFilter) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardOf := s.columnBoardIndex()
	var out []domain.Card
	for _, card := range s.snapshot.Cards {
		if filter.BoardID != nil && boardOf[card.ColumnID] != *filter.BoardID {
			continue
		}
		if filter.ColumnID != nil && card.ColumnID != *filter.ColumnID {
			continue
		}
		if filter.SprintID != nil && (card.SprintID == nil || *card.SprintID != *filter.SprintID) {
			continue
		}
		if filter.Status != nil && card.Status != *filter.Status {
			continue
		}
		out = append(out, card)
	}

	field, order := domain.SortFieldPosition, domain.SortAscending
	if filter.BoardID != nil {
		if board := s.snapshot.BoardByID(*filter.BoardID); board != nil {
			field, order = board.TaskSortField, board.TaskSortOrder
		}
	}
	sortCards(out, field, order)
	return out, nil
}

// ListArchivedCards returns archived cards, optionally filtered to one
// board, most recently archived first.
func (s *Service) ListArchivedCards(boardID *uuid.UUID) []domain.ArchivedCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardOf := s.columnBoardIndex()
	var out []domain.ArchivedCard
	for _, ac := range s.snapshot.ArchivedCards {
		if boardID != nil {
			owner, ok := boardOf[ac.OriginalColumnID]
			if !ok {
				owner = boardOf[ac.Card.ColumnID]
			}
			if owner != *boardID {
				continue
			}
		}
		out = append(out, ac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArchivedAt.After(out[j].ArchivedAt) })
	return out
}

// ListSprints returns a board's sprints ordered by sprint number.
func (s *Service) ListSprints(boardID uuid.UUID) ([]domain.Sprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.BoardByID(boardID) == nil {
		return nil, core.NotFoundf("board %s", boardID)
	}
	var out []domain.Sprint
	for _, sp := range s.snapshot.Sprints {
		if sp.BoardID == boardID {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SprintNumber < out[j].SprintNumber })
	return out, nil
}

// GetSprint returns one sprint by id.
func (s *Service) GetSprint(sprintID uuid.UUID) (domain.Sprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprint := s.snapshot.SprintByID(sprintID)
	if sprint == nil {
		return domain.Sprint{}, core.NotFoundf("sprint %s", sprintID)
	}
	return *sprint, nil
}

// SprintName renders a sprint's formatted name using config defaults.
func (s *Service) SprintName(sprintID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprint := s.snapshot.SprintByID(sprintID)
	if sprint == nil {
		return "", core.NotFoundf("sprint %s", sprintID)
	}
	board := s.snapshot.BoardByID(sprint.BoardID)
	if board == nil {
		return "", core.Internalf("sprint %s references missing board %s", sprintID, sprint.BoardID)
	}
	return sprint.FormattedName(board, s.cfg.SprintPrefix), nil
}

// Blockers returns the cards blocking the given card.
func (s *Service) Blockers(cardID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCardLocked(cardID); err != nil {
		return nil, err
	}
	return s.snapshot.Graph.Cards.Blockers(cardID), nil
}

// BlockedBy returns the cards the given card blocks.
func (s *Service) BlockedBy(cardID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCardLocked(cardID); err != nil {
		return nil, err
	}
	return s.snapshot.Graph.Cards.BlockedBy(cardID), nil
}

// Related returns the cards related to the given card.
func (s *Service) Related(cardID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCardLocked(cardID); err != nil {
		return nil, err
	}
	return s.snapshot.Graph.Cards.Related(cardID), nil
}

func (s *Service) requireCardLocked(cardID uuid.UUID) error {
	if s.snapshot.CardByID(cardID) == nil && s.snapshot.ArchivedCardByID(cardID) == nil {
		return core.NotFoundf("card %s", cardID)
	}
	return nil
}

// columnBoardIndex maps column id to owning board id.
func (s *Service) columnBoardIndex() map[uuid.UUID]uuid.UUID {
	idx := make(map[uuid.UUID]uuid.UUID, len(s.snapshot.Columns))
	for _, col := range s.snapshot.Columns {
		idx[col.ID] = col.BoardID
	}
	return idx
}

var priorityRank = map[domain.CardPriority]int{
	domain.PriorityLow:      0,
	domain.PriorityMedium:   1,
	domain.PriorityHigh:     2,
	domain.PriorityCritical: 3,
}

var statusRank = map[domain.CardStatus]int{
	domain.StatusTodo:       0,
	domain.StatusInProgress: 1,
	domain.StatusBlocked:    2,
	domain.StatusDone:       3,
}

// sortCards orders cards by the board's sort preference. Cards without
// the sorted attribute (nil points) sink to the end regardless of order.
func sortCards(cards []domain.Card, field domain.SortField, order domain.SortOrder) {
	less := func(a, b *domain.Card) bool { return a.Position < b.Position }
	switch field {
	case domain.SortFieldPoints:
		less = func(a, b *domain.Card) bool {
			if a.Points == nil || b.Points == nil {
				return a.Position < b.Position
			}
			return *a.Points < *b.Points
		}
	case domain.SortFieldPriority:
		less = func(a, b *domain.Card) bool {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
	case domain.SortFieldStatus:
		less = func(a, b *domain.Card) bool {
			return statusRank[a.Status] < statusRank[b.Status]
		}
	case domain.SortFieldCreatedAt:
		less = func(a, b *domain.Card) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case domain.SortFieldUpdatedAt:
		less = func(a, b *domain.Card) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := &cards[i], &cards[j]
		if field == domain.SortFieldPoints && (a.Points == nil) != (b.Points == nil) {
			return b.Points == nil
		}
		if order == domain.SortDescending {
			a, b = b, a
		}
		return less(a, b)
	})
}
