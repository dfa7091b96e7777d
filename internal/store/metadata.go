package store

import (
	"encoding/json"
	"io/fs"
	"time"

	"github.com/google/uuid"
)

// FormatVersion is the current envelope version written to disk.
const FormatVersion = 2

// Metadata describes the envelope: which format it is, which instance
// wrote it, and when. SavedAt drives conflict resolution.
type Metadata struct {
	FormatVersion int       `json:"format_version"`
	InstanceID    uuid.UUID `json:"instance_id"`
	SavedAt       time.Time `json:"saved_at"`
}

// envelope is the on-disk document: a versioned wrapper around the raw
// snapshot JSON.
type envelope struct {
	Version  int             `json:"version"`
	Metadata Metadata        `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

// Fingerprint identifies a file revision by modification time and size.
// It is cheap to take and good enough to tell our own writes from
// external ones.
type Fingerprint struct {
	ModTime time.Time
	Size    int64
}

// FingerprintOf derives a fingerprint from file info.
func FingerprintOf(info fs.FileInfo) Fingerprint {
	return Fingerprint{ModTime: info.ModTime(), Size: info.Size()}
}

// Equal reports whether two fingerprints identify the same revision.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.ModTime.Equal(other.ModTime) && f.Size == other.Size
}

// IsZero reports whether the fingerprint has been taken at all.
func (f Fingerprint) IsZero() bool {
	return f.ModTime.IsZero() && f.Size == 0
}
