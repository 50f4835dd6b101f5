package history

import (
	"time"

	"github.com/google/uuid"
)

// entry wraps an action with metadata.
type entry struct {
	id        uuid.UUID
	action    Action
	timestamp time.Time
}

// EntryInfo describes a history entry for display and logging.
type EntryInfo struct {
	// ID is stable for the lifetime of the entry. A coalesced entry keeps
	// the id of the entry it replaced.
	ID          string
	Description string
	Timestamp   time.Time

	// Applied is false for entries on the redo tail.
	Applied bool
}

func (e *entry) info(applied bool) EntryInfo {
	return EntryInfo{
		ID:          e.id.String(),
		Description: e.action.Description(),
		Timestamp:   e.timestamp,
		Applied:     applied,
	}
}
