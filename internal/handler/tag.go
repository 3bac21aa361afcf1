package handler

import (
	"net/http"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// ListTags handles GET /tags.
// The optional ?q= query parameter keeps tags whose name contains q,
// case-insensitively. Results are in registry order.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	p := domain.NewPaginationParams(params.Page, params.Limit)

	tags, total, err := s.tags.ListPaged(r.Context(), derefString(params.Q), p)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	writeJSON(w, http.StatusOK, api.ListResponse[domain.Tag]{
		Data:       tags,
		Pagination: api.Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// CreateTag handles POST /tags.
// Returns 201 when the tag was created and 200 with created=false when the
// name was empty or already registered.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var body api.TagRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, "tag")
		return
	}

	tag, created, err := s.tags.Create(r.Context(), body.Name)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}

	resp := api.TagCreateResponse{Created: created}
	if tag.Name != "" {
		resp.Tag = &tag
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// RenameTag handles PATCH /tags/{name} with body {"name": "<new name>"}.
// The rename cascades to every workflow and assistant holding the tag.
func (s *Server) RenameTag(w http.ResponseWriter, r *http.Request) {
	oldName, err := pathTagName(r)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	var body api.TagRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, "tag")
		return
	}

	tag, changed, err := s.tags.Rename(r.Context(), oldName, body.Name)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	writeJSON(w, http.StatusOK, api.CascadeResponse{
		Tag:        &tag,
		Workflows:  changed.Workflows,
		Assistants: changed.Assistants,
	})
}

// DeleteTag handles DELETE /tags/{name}.
// Idempotent: deleting an unknown tag returns 200 with zero counts.
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	name, err := pathTagName(r)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}

	changed, err := s.tags.Delete(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	writeJSON(w, http.StatusOK, api.CascadeResponse{
		Workflows:  changed.Workflows,
		Assistants: changed.Assistants,
	})
}

// GetTagUsage handles GET /tags/{name}/usage.
func (s *Server) GetTagUsage(w http.ResponseWriter, r *http.Request) {
	name, err := pathTagName(r)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}

	usage, err := s.tags.Usage(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "tag")
		return
	}
	writeJSON(w, http.StatusOK, api.UsageResponse{
		Tag:      usage.Tag,
		Entities: usage.Entities,
		Summary:  usage.String(),
	})
}
