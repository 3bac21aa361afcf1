package handler

import (
	"net/http"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// ListWorkflows handles GET /workflows.
// Query: q (name/description substring), status, tag, sort, order, page, limit.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, s.workflows.List, "workflow")
}

// CreateWorkflow handles POST /workflows.
// Unknown tags in the body are registered as part of the create.
func (s *Server) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var body api.WorkflowRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, "workflow")
		return
	}

	created, err := s.workflows.Create(r.Context(), workflowFromRequest(body))
	if err != nil {
		writeError(w, r, err, "workflow")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetWorkflow handles GET /workflows/{id}.
func (s *Server) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, s.workflows.GetByID, "workflow")
}

// UpdateWorkflow handles PATCH /workflows/{id}.
func (s *Server) UpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	patchEntity(w, r, s.workflows.Update, "workflow")
}

// DeleteWorkflow handles DELETE /workflows/{id}.
func (s *Server) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, s.workflows.Delete, "workflow")
}

func (s *Server) PublishWorkflow(w http.ResponseWriter, r *http.Request) {
	setEntityStatus(w, r, s.workflows.SetStatus, domain.StatusPublished, "workflow")
}

func (s *Server) UnpublishWorkflow(w http.ResponseWriter, r *http.Request) {
	setEntityStatus(w, r, s.workflows.SetStatus, domain.StatusDraft, "workflow")
}

// TransferWorkflow handles PUT /workflows/{id}/owner.
func (s *Server) TransferWorkflow(w http.ResponseWriter, r *http.Request) {
	transferEntity(w, r, s.workflows.TransferOwner, "workflow")
}

// workflowFromRequest converts the request body into a domain.Workflow.
func workflowFromRequest(req api.WorkflowRequest) domain.Workflow {
	return domain.Workflow{
		Entity: domain.Entity{
			Name:        req.Name,
			Description: req.Description,
			Version:     req.Version,
			Status:      req.Status,
			Owner:       req.Owner,
			Tags:        req.Tags,
		},
		Trigger:    req.Trigger,
		Definition: req.Definition,
	}
}
