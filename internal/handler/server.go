// Package handler implements the HTTP handlers for the FlowDeck API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, workflow.go, tag.go, etc.) but share the same Server
// struct so they can access its dependencies. Routes wires them into chi.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

// WorkflowServicer defines the business operations the workflow handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type WorkflowServicer interface {
	Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error)
	List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Workflow, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Workflow, error)
	TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Workflow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssistantServicer mirrors WorkflowServicer for assistants.
type AssistantServicer interface {
	Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error)
	List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Assistant, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Assistant, error)
	TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Assistant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagServicer defines the tag vocabulary operations.
type TagServicer interface {
	Create(ctx context.Context, name string) (domain.Tag, bool, error)
	ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	Rename(ctx context.Context, oldName, newName string) (domain.Tag, domain.Cascade, error)
	Delete(ctx context.Context, name string) (domain.Cascade, error)
	Usage(ctx context.Context, name string) (tagging.Usage, error)
}

// ExportServicer defines the export operation used by GET /export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server implements every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	workflows  WorkflowServicer
	assistants AssistantServicer
	tags       TagServicer
	export     ExportServicer
}

// NewServer constructs the Server with all its dependencies.
// Tests may pass nil for services they do not exercise.
func NewServer(workflows WorkflowServicer, assistants AssistantServicer, tags TagServicer, export ExportServicer) *Server {
	return &Server{workflows: workflows, assistants: assistants, tags: tags, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a chi router with every API route registered.
// Cross-cutting middleware is applied by the caller (see cmd/api).
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(routeEscapedPath)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/export", s.GetExport)

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.ListWorkflows)
		r.Post("/", s.CreateWorkflow)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetWorkflow)
			r.Patch("/", s.UpdateWorkflow)
			r.Delete("/", s.DeleteWorkflow)
			r.Post("/publish", s.PublishWorkflow)
			r.Post("/unpublish", s.UnpublishWorkflow)
			r.Put("/owner", s.TransferWorkflow)
		})
	})

	r.Route("/assistants", func(r chi.Router) {
		r.Get("/", s.ListAssistants)
		r.Post("/", s.CreateAssistant)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetAssistant)
			r.Patch("/", s.UpdateAssistant)
			r.Delete("/", s.DeleteAssistant)
			r.Post("/publish", s.PublishAssistant)
			r.Post("/unpublish", s.UnpublishAssistant)
			r.Put("/owner", s.TransferAssistant)
		})
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", s.ListTags)
		r.Post("/", s.CreateTag)
		r.Route("/{name}", func(r chi.Router) {
			r.Patch("/", s.RenameTag)
			r.Delete("/", s.DeleteTag)
			r.Get("/usage", s.GetTagUsage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	return r
}

// routeEscapedPath makes chi match against the escaped request path.
// chi only uses RawPath when net/url kept one, so without this a name like
// "50%25" arrives decoded in some requests and encoded in others. With it,
// path parameters are always still escaped and are decoded exactly once when
// bound. Routes assumes it is mounted at "/".
func routeEscapedPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rctx.RoutePath = r.URL.EscapedPath()
		}
		next.ServeHTTP(w, r)
	})
}
