package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per workflow or assistant.
// Kind-specific columns are empty for the other kind.
//
// Tags keeps assignment order. Callers that need a joined string (e.g. CSV)
// should join with "|".
type ExportRow struct {
	Kind        Kind
	ID          string
	Name        string
	Version     string
	Status      Status
	Owner       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Workflow columns.
	Trigger string

	// Assistant columns.
	Model string

	Tags []string
}
