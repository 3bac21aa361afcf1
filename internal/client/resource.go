package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// pageLimit is the page size used when a list call walks every page.
const pageLimit = 100

// Resource is the typed client for one entity collection. T is
// *domain.Workflow or *domain.Assistant.
type Resource[T any] struct {
	c    *Client
	kind domain.Kind
}

// Workflows returns the client for /workflows.
func (c *Client) Workflows() Resource[*domain.Workflow] {
	return Resource[*domain.Workflow]{c: c, kind: domain.KindWorkflow}
}

// Assistants returns the client for /assistants.
func (c *Client) Assistants() Resource[*domain.Assistant] {
	return Resource[*domain.Assistant]{c: c, kind: domain.KindAssistant}
}

func (r Resource[T]) path(parts ...string) string {
	p := "/" + string(r.kind)
	for _, s := range parts {
		p += "/" + url.PathEscape(s)
	}
	return p
}

// List returns every entity matching f, walking all pages. The service
// filters best-effort; callers re-filter locally.
func (r Resource[T]) List(ctx context.Context, f domain.ListFilter) ([]T, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	q.Set("limit", strconv.Itoa(pageLimit))

	var out []T
	for page := 1; ; page++ {
		q.Set("page", strconv.Itoa(page))
		var resp api.ListResponse[T]
		if err := r.c.do(ctx, http.MethodGet, r.path(), q, nil, &resp); err != nil {
			return nil, fmt.Errorf("client.Resource.List %s: %w", r.kind, err)
		}
		out = append(out, resp.Data...)
		if len(resp.Data) == 0 || int64(len(out)) >= resp.Pagination.Total {
			break
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get returns one entity.
func (r Resource[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.path(id.String()), nil, nil, &out); err != nil {
		return out, fmt.Errorf("client.Resource.Get %s: %w", r.kind, err)
	}
	return out, nil
}

// Update applies a partial update.
func (r Resource[T]) Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (T, error) {
	body := api.PatchRequest{
		Name:         patch.Name,
		Description:  patch.Description,
		Version:      patch.Version,
		Tags:         patch.Tags,
		Trigger:      patch.Trigger,
		Definition:   patch.Definition,
		Model:        patch.Model,
		Instructions: patch.Instructions,
		Tools:        patch.Tools,
	}
	var out T
	if err := r.c.do(ctx, http.MethodPatch, r.path(id.String()), nil, body, &out); err != nil {
		return out, fmt.Errorf("client.Resource.Update %s: %w", r.kind, err)
	}
	return out, nil
}

// SetStatus publishes or unpublishes an entity.
func (r Resource[T]) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (T, error) {
	action := "unpublish"
	if status == domain.StatusPublished {
		action = "publish"
	}
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path(id.String(), action), nil, nil, &out); err != nil {
		return out, fmt.Errorf("client.Resource.SetStatus %s: %w", r.kind, err)
	}
	return out, nil
}

// TransferOwner hands the entity to owner.
func (r Resource[T]) TransferOwner(ctx context.Context, id uuid.UUID, owner string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.path(id.String(), "owner"), nil, api.OwnerRequest{Owner: owner}, &out)
	if err != nil {
		return out, fmt.Errorf("client.Resource.TransferOwner %s: %w", r.kind, err)
	}
	return out, nil
}

// Delete removes an entity.
func (r Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.do(ctx, http.MethodDelete, r.path(id.String()), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Resource.Delete %s: %w", r.kind, err)
	}
	return nil
}
