package handler

import (
	"net/http"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// ListAssistants handles GET /assistants. Same query parameters as ListWorkflows.
func (s *Server) ListAssistants(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, s.assistants.List, "assistant")
}

// CreateAssistant handles POST /assistants.
func (s *Server) CreateAssistant(w http.ResponseWriter, r *http.Request) {
	var body api.AssistantRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, "assistant")
		return
	}

	created, err := s.assistants.Create(r.Context(), domain.Assistant{
		Entity: domain.Entity{
			Name:        body.Name,
			Description: body.Description,
			Version:     body.Version,
			Status:      body.Status,
			Owner:       body.Owner,
			Tags:        body.Tags,
		},
		Model:        body.Model,
		Instructions: body.Instructions,
		Tools:        body.Tools,
	})
	if err != nil {
		writeError(w, r, err, "assistant")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) GetAssistant(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, s.assistants.GetByID, "assistant")
}

func (s *Server) UpdateAssistant(w http.ResponseWriter, r *http.Request) {
	patchEntity(w, r, s.assistants.Update, "assistant")
}

func (s *Server) DeleteAssistant(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, s.assistants.Delete, "assistant")
}

func (s *Server) PublishAssistant(w http.ResponseWriter, r *http.Request) {
	setEntityStatus(w, r, s.assistants.SetStatus, domain.StatusPublished, "assistant")
}

func (s *Server) UnpublishAssistant(w http.ResponseWriter, r *http.Request) {
	setEntityStatus(w, r, s.assistants.SetStatus, domain.StatusDraft, "assistant")
}

func (s *Server) TransferAssistant(w http.ResponseWriter, r *http.Request) {
	transferEntity(w, r, s.assistants.TransferOwner, "assistant")
}
