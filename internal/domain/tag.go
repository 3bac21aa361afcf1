package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag represents a user-defined label that can be applied to workflows and
// assistants. Tags are global: the registry is shared by both entity kinds.
// Identity for callers is Name (exact, case-sensitive). ID is stable across
// renames and Position orders the registry for presentation.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Cascade reports how many entities of each kind a tag rename or delete
// changed.
type Cascade struct {
	Workflows  int64
	Assistants int64
}

// Total is the number of changed entities across both kinds.
func (c Cascade) Total() int64 { return c.Workflows + c.Assistants }
