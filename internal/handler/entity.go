package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// Workflows and assistants expose the same endpoints. The handlers in
// workflow.go and assistant.go bind their service methods to these helpers.

type (
	listFunc[T any]   func(context.Context, domain.ListFilter, domain.Sort, domain.PaginationParams) ([]T, int64, error)
	getFunc[T any]    func(context.Context, uuid.UUID) (T, error)
	patchFunc[T any]  func(context.Context, uuid.UUID, domain.EntityPatch) (T, error)
	statusFunc[T any] func(context.Context, uuid.UUID, domain.Status) (T, error)
	ownerFunc[T any]  func(context.Context, uuid.UUID, string) (T, error)
)

// listEntities handles GET /{kind}.
func listEntities[T any](w http.ResponseWriter, r *http.Request, list listFunc[T], what string) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	f, s, p, err := params.entityQuery()
	if err != nil {
		writeError(w, r, err, what)
		return
	}

	items, total, err := list(r.Context(), f, s, p)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, api.ListResponse[T]{
		Data:       items,
		Pagination: api.Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// getEntity handles GET /{kind}/{id}.
func getEntity[T any](w http.ResponseWriter, r *http.Request, get getFunc[T], what string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	item, err := get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// patchEntity handles PATCH /{kind}/{id}.
func patchEntity[T any](w http.ResponseWriter, r *http.Request, update patchFunc[T], what string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	var body api.PatchRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, what)
		return
	}
	item, err := update(r.Context(), id, body.Patch())
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// setEntityStatus handles POST /{kind}/{id}/publish and /unpublish.
func setEntityStatus[T any](w http.ResponseWriter, r *http.Request, set statusFunc[T], status domain.Status, what string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	item, err := set(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// transferEntity handles PUT /{kind}/{id}/owner.
func transferEntity[T any](w http.ResponseWriter, r *http.Request, transfer ownerFunc[T], what string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	var body api.OwnerRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, what)
		return
	}
	item, err := transfer(r.Context(), id, body.Owner)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// deleteEntity handles DELETE /{kind}/{id}.
func deleteEntity(w http.ResponseWriter, r *http.Request, del func(context.Context, uuid.UUID) error, what string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, what)
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, r, err, what)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
