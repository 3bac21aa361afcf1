// Package api holds the JSON wire types shared by the HTTP handlers and the
// console's REST client. Request types carry validator tags; the handler
// validates them before anything reaches the service layer.
package api

import (
	"encoding/json"
	"time"

	"github.com/pkordes/flowdeck/internal/domain"
)

// Error codes used in ErrorDetail.Code.
const (
	CodeNotFound   = "not_found"
	CodeValidation = "validation_error"
	CodeConflict   = "conflict"
	CodeBadRequest = "bad_request"
	CodeInternal   = "internal_error"
)

// ErrorDetail is the body of every non-2xx response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Pagination describes the page a list response holds.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListResponse is the envelope of every paginated list endpoint.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// WorkflowRequest is the body of POST /workflows.
type WorkflowRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Version     string          `json:"version,omitempty" validate:"max=64"`
	Status      domain.Status   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Owner       string          `json:"owner,omitempty" validate:"max=200"`
	Tags        []string        `json:"tags,omitempty" validate:"max=50,dive,max=100"`
	Trigger     string          `json:"trigger,omitempty" validate:"max=64"`
	Definition  json.RawMessage `json:"definition,omitempty"`
}

// AssistantRequest is the body of POST /assistants.
type AssistantRequest struct {
	Name         string        `json:"name" validate:"required,max=200"`
	Description  string        `json:"description,omitempty" validate:"max=2000"`
	Version      string        `json:"version,omitempty" validate:"max=64"`
	Status       domain.Status `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Owner        string        `json:"owner,omitempty" validate:"max=200"`
	Tags         []string      `json:"tags,omitempty" validate:"max=50,dive,max=100"`
	Model        string        `json:"model" validate:"required,max=100"`
	Instructions string        `json:"instructions,omitempty" validate:"max=20000"`
	Tools        []string      `json:"tools,omitempty" validate:"max=50,dive,max=100"`
}

// PatchRequest is the body of PATCH /{kind}/{id}. Absent fields are left
// unchanged; kind-specific fields are ignored for the other kind.
type PatchRequest struct {
	Name         *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Version      *string         `json:"version,omitempty" validate:"omitempty,max=64"`
	Tags         *[]string       `json:"tags,omitempty" validate:"omitempty,max=50,dive,max=100"`
	Trigger      *string         `json:"trigger,omitempty" validate:"omitempty,max=64"`
	Definition   json.RawMessage `json:"definition,omitempty"`
	Model        *string         `json:"model,omitempty" validate:"omitempty,max=100"`
	Instructions *string         `json:"instructions,omitempty" validate:"omitempty,max=20000"`
	Tools        *[]string       `json:"tools,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// Patch converts the request into a domain.EntityPatch.
func (p PatchRequest) Patch() domain.EntityPatch {
	return domain.EntityPatch{
		Name:         p.Name,
		Description:  p.Description,
		Version:      p.Version,
		Tags:         p.Tags,
		Trigger:      p.Trigger,
		Definition:   p.Definition,
		Model:        p.Model,
		Instructions: p.Instructions,
		Tools:        p.Tools,
	}
}

// OwnerRequest is the body of PUT /{kind}/{id}/owner.
type OwnerRequest struct {
	Owner string `json:"owner" validate:"required,max=200"`
}

// TagRequest is the body of POST /tags and PATCH /tags/{name}.
type TagRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// TagCreateResponse reports whether POST /tags created a tag. Tag is nil
// when the name was empty.
type TagCreateResponse struct {
	Tag     *domain.Tag `json:"tag,omitempty"`
	Created bool        `json:"created"`
}

// CascadeResponse reports how many entities a tag rename or delete changed.
type CascadeResponse struct {
	Tag        *domain.Tag `json:"tag,omitempty"`
	Workflows  int64       `json:"workflows"`
	Assistants int64       `json:"assistants"`
}

// UsageResponse is the body of GET /tags/{name}/usage.
type UsageResponse struct {
	Tag      string   `json:"tag"`
	Entities []string `json:"entities"`
	Summary  string   `json:"summary"`
}

// ExportRow is one row of GET /export.
type ExportRow struct {
	Kind        domain.Kind   `json:"kind"`
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Status      domain.Status `json:"status"`
	Owner       string        `json:"owner,omitempty"`
	Description string        `json:"description,omitempty"`
	Trigger     string        `json:"trigger,omitempty"`
	Model       string        `json:"model,omitempty"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
