package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

func tagPath(name string, rest ...string) string {
	p := "/tags/" + url.PathEscape(name)
	for _, s := range rest {
		p += "/" + s
	}
	return p
}

// ListTags returns the whole vocabulary in registry order.
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	q := url.Values{"limit": {strconv.Itoa(pageLimit)}}
	out := []domain.Tag{}
	for page := 1; ; page++ {
		q.Set("page", strconv.Itoa(page))
		var resp api.ListResponse[domain.Tag]
		if err := c.do(ctx, http.MethodGet, "/tags", q, nil, &resp); err != nil {
			return nil, fmt.Errorf("client.Client.ListTags: %w", err)
		}
		out = append(out, resp.Data...)
		if len(resp.Data) == 0 || int64(len(out)) >= resp.Pagination.Total {
			return out, nil
		}
	}
}

// CreateTag registers name. It reports false when the name was empty or
// already registered on the service.
func (c *Client) CreateTag(ctx context.Context, name string) (bool, error) {
	var resp api.TagCreateResponse
	if err := c.do(ctx, http.MethodPost, "/tags", nil, api.TagRequest{Name: name}, &resp); err != nil {
		return false, fmt.Errorf("client.Client.CreateTag: %w", err)
	}
	return resp.Created, nil
}

// RenameTag renames oldName to newName everywhere.
func (c *Client) RenameTag(ctx context.Context, oldName, newName string) (domain.Cascade, error) {
	var resp api.CascadeResponse
	if err := c.do(ctx, http.MethodPatch, tagPath(oldName), nil, api.TagRequest{Name: newName}, &resp); err != nil {
		return domain.Cascade{}, fmt.Errorf("client.Client.RenameTag: %w", err)
	}
	return domain.Cascade{Workflows: resp.Workflows, Assistants: resp.Assistants}, nil
}

// DeleteTag removes name from the vocabulary and from every entity.
func (c *Client) DeleteTag(ctx context.Context, name string) (domain.Cascade, error) {
	var resp api.CascadeResponse
	if err := c.do(ctx, http.MethodDelete, tagPath(name), nil, nil, &resp); err != nil {
		return domain.Cascade{}, fmt.Errorf("client.Client.DeleteTag: %w", err)
	}
	return domain.Cascade{Workflows: resp.Workflows, Assistants: resp.Assistants}, nil
}

// TagUsage asks the service which entities hold name.
func (c *Client) TagUsage(ctx context.Context, name string) (tagging.Usage, error) {
	var resp api.UsageResponse
	if err := c.do(ctx, http.MethodGet, tagPath(name, "usage"), nil, nil, &resp); err != nil {
		return tagging.Usage{}, fmt.Errorf("client.Client.TagUsage: %w", err)
	}
	return tagging.Usage{Tag: resp.Tag, Entities: resp.Entities}, nil
}

// Export streams GET /export in format ("json" or "csv") to w.
func (c *Client) Export(ctx context.Context, format string, w io.Writer) error {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	if err := c.do(ctx, http.MethodGet, "/export", q, nil, w); err != nil {
		return fmt.Errorf("client.Client.Export: %w", err)
	}
	return nil
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, &resp); err != nil {
		return fmt.Errorf("client.Client.Health: %w", err)
	}
	return nil
}
