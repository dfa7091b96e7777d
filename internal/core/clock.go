package core

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so domain logic is deterministic in tests.
// All times are UTC.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator abstracts entity id generation so tests are deterministic.
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID { return uuid.New() }
