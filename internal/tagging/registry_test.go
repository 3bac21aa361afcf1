package tagging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

func TestNewRegistry_NormalizesAndDedupes(t *testing.T) {
	r := tagging.NewRegistry(" urgent", "draft", "urgent ", "", "Draft")

	assert.Equal(t, []string{"urgent", "draft", "Draft"}, r.List())
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_Rename_KeepsPosition(t *testing.T) {
	r := tagging.NewRegistry("a", "b", "c")

	require.NoError(t, r.Rename("b", " beta "))

	assert.Equal(t, []string{"a", "beta", "c"}, r.List())
}

func TestRegistry_Remove(t *testing.T) {
	r := tagging.NewRegistry("a", "b")

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	assert.Equal(t, []string{"b"}, r.List())
}

func TestValidateRename(t *testing.T) {
	got, err := tagging.ValidateRename("old", "  new ")
	require.NoError(t, err)
	assert.Equal(t, "new", got)

	_, err = tagging.ValidateRename("old", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = tagging.ValidateRename("old", " old ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDedupe_NeverNil(t *testing.T) {
	assert.NotNil(t, tagging.Dedupe(nil))
	assert.Equal(t, []string{"x", "y"}, tagging.Dedupe([]string{"x", " y", "x", " "}))
}
