// Package service holds the business rules of the FlowDeck API. Services
// validate and normalise input, then delegate persistence to the repo layer.
// Every write that touches tags runs inside a repo.UnitOfWork so the
// registry and the entity assignments never disagree.
package service

import (
	"fmt"
	"strings"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

// DefaultVersion is assigned to entities created without a version label.
const DefaultVersion = "1.0.0"

// prepareEntity normalises the shared fields in place and enforces the rules
// common to workflows and assistants:
//   - Name is required (whitespace-only names are rejected).
//   - Version defaults to DefaultVersion; Status defaults to draft.
//   - Tags are trimmed, deduplicated and stripped of empty entries.
func prepareEntity(e *domain.Entity) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	e.Owner = strings.TrimSpace(e.Owner)
	e.Version = strings.TrimSpace(e.Version)

	if e.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if e.Version == "" {
		e.Version = DefaultVersion
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, e.Status)
	}
	e.Tags = tagging.Dedupe(e.Tags)
	return nil
}

// applyEntityPatch copies the shared non-nil patch fields onto e.
func applyEntityPatch(e *domain.Entity, p domain.EntityPatch) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Version != nil {
		e.Version = *p.Version
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
}

// validateListQuery rejects unknown status and sort values and fills in the
// default sort.
func validateListQuery(f domain.ListFilter, s domain.Sort) (domain.Sort, error) {
	if f.Status != "" && !f.Status.Valid() {
		return s, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	if s.Field == "" {
		return domain.DefaultSort, nil
	}
	if !s.Field.Valid() {
		return s, fmt.Errorf("%w: unknown sort field %q", domain.ErrValidation, s.Field)
	}
	return s, nil
}

// validateOwner trims and requires an owner for ownership transfer.
func validateOwner(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}
	return owner, nil
}
