package domain

import (
	"encoding/json"
	"slices"
)

// Workflow is an automation definition managed from the console.
// The Definition document is opaque here; only the execution engine reads it.
type Workflow struct {
	Entity
	Trigger    string          `json:"trigger,omitempty"`
	Definition json.RawMessage `json:"definition,omitempty"`
}

// Meta implements Taggable.
func (w *Workflow) Meta() *Entity { return &w.Entity }

// WithTags returns a copy of w carrying tags. The receiver is not modified.
func (w *Workflow) WithTags(tags []string) *Workflow {
	c := *w
	c.Tags = tags
	c.Definition = slices.Clone(w.Definition)
	return &c
}
