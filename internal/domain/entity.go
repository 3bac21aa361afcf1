// Package domain contains the core data types for the FlowDeck console and API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler, tagging, console).
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Status is the publish state of a workflow or assistant.
type Status string

const (
	// StatusDraft entities are editable and not exposed to the execution engine.
	StatusDraft Status = "draft"
	// StatusPublished entities are active.
	StatusPublished Status = "published"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Entity holds the fields shared by every taggable record.
// Workflow and Assistant embed it; code that only needs identity, tags or
// version information works against Entity through the Taggable interface.
type Entity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	Status      Status    `json:"status"`
	Owner       string    `json:"owner,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasTag reports whether tag is in the entity's assignment (exact match).
func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Taggable is the capability shared by Workflow and Assistant.
// The tag cascade, version grouping and filter pipeline only ever see this.
type Taggable interface {
	Meta() *Entity
}

// Kind names an entity collection. It doubles as the URL segment and the
// table name on the server.
type Kind string

const (
	KindWorkflow  Kind = "workflows"
	KindAssistant Kind = "assistants"
)

// EntityPatch carries a partial update. Nil fields are left unchanged.
type EntityPatch struct {
	Name        *string
	Description *string
	Version     *string
	Tags        *[]string

	// Workflow-only fields. Ignored for assistants.
	Trigger    *string
	Definition []byte

	// Assistant-only fields. Ignored for workflows.
	Model        *string
	Instructions *string
	Tools        *[]string
}
