package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/flowdeck/internal/domain"
)

func TestListFilter_Matches(t *testing.T) {
	e := &domain.Entity{
		Name:        "Invoice Router",
		Description: "routes incoming PDFs",
		Status:      domain.StatusPublished,
		Tags:        []string{"finance", "ops"},
	}

	tests := []struct {
		name   string
		filter domain.ListFilter
		want   bool
	}{
		{"zero filter", domain.ListFilter{}, true},
		{"search name any case", domain.ListFilter{Search: "INVOICE"}, true},
		{"search description", domain.ListFilter{Search: "pdf"}, true},
		{"search miss", domain.ListFilter{Search: "payroll"}, false},
		{"status match", domain.ListFilter{Status: domain.StatusPublished}, true},
		{"status miss", domain.ListFilter{Status: domain.StatusDraft}, false},
		{"tag exact", domain.ListFilter{Tag: "ops"}, true},
		{"tag is case-sensitive", domain.ListFilter{Tag: "Ops"}, false},
		{"all dimensions", domain.ListFilter{Search: "router", Status: domain.StatusPublished, Tag: "finance"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(e))
		})
	}
}

func TestNewPaginationParams_ClampAndDefaults(t *testing.T) {
	page, limit := 3, 500
	p := domain.NewPaginationParams(&page, &limit)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())

	def := domain.NewPaginationParams(nil, nil)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, def)
}

func TestWorkflow_WithTags_DoesNotAlias(t *testing.T) {
	w := &domain.Workflow{Entity: domain.Entity{Name: "a", Tags: []string{"x"}}}

	c := w.WithTags([]string{"y"})

	assert.Equal(t, []string{"x"}, w.Tags)
	assert.Equal(t, []string{"y"}, c.Tags)
	assert.Equal(t, "a", c.Meta().Name)
}
