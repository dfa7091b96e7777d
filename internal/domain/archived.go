package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedCard wraps a card removed from its column, remembering where it
// came from so a restore without an explicit target goes back there.
type ArchivedCard struct {
	Card             Card      `json:"card"`
	ArchivedAt       time.Time `json:"archived_at"`
	OriginalColumnID uuid.UUID `json:"original_column_id"`
	OriginalPosition int       `json:"original_position"`
}

// NewArchivedCard captures a live card at archive time.
func NewArchivedCard(card Card, now time.Time) ArchivedCard {
	return ArchivedCard{
		Card:             card,
		ArchivedAt:       now,
		OriginalColumnID: card.ColumnID,
		OriginalPosition: card.Position,
	}
}
