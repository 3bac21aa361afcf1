package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
	"github.com/pkordes/flowdeck/testutil"
)

func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewRepos(testutil.NewTx(t))
}

func tagNames(tags []domain.Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Name
	}
	return out
}

// ---- Create ----------------------------------------------------------------

func TestTagRepo_Create(t *testing.T) {
	r := newTestRepos(t).Tags

	got, created, err := r.Create(context.Background(), "finance")

	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "finance", got.Name)
	assert.Positive(t, got.Position)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTagRepo_Create_Duplicate(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	first, _, err := r.Create(ctx, "finance")
	require.NoError(t, err)

	second, created, err := r.Create(ctx, "finance")

	require.NoError(t, err)
	assert.False(t, created, "duplicate name must not create a second tag")
	assert.Equal(t, first.ID, second.ID)
}

func TestTagRepo_Create_IsCaseSensitive(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	_, _, err := r.Create(ctx, "Ops")
	require.NoError(t, err)

	_, created, err := r.Create(ctx, "ops")

	require.NoError(t, err)
	assert.True(t, created)
}

// ---- EnsureAll -------------------------------------------------------------

func TestTagRepo_EnsureAll_KeepsOrder(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	_, _, err := r.Create(ctx, "beta")
	require.NoError(t, err)

	require.NoError(t, r.EnsureAll(ctx, []string{"zeta", "beta", "alpha"}))

	got, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "zeta", "alpha"}, tagNames(got))
}

func TestTagRepo_EnsureAll_Empty(t *testing.T) {
	r := newTestRepos(t).Tags

	assert.NoError(t, r.EnsureAll(context.Background(), nil))
}

func TestTagRepo_EnsureAll_DedupesNames(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"ops", "billing", "ops"}))

	got, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ops", "billing"}, tagNames(got))
}

// An entity write that registered a tag holds it until commit, so a
// concurrent delete cascade cannot miss the assignment it makes.
func TestTagRepo_EnsureAll_BlocksConcurrentDeleteUntilCommit(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()
	tag := "held-" + uuid.NewString()
	workflow := "Holder " + uuid.NewString()

	_, _, err := repo.NewRepos(pool).Tags.Create(ctx, tag)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM workflows WHERE name = $1`, workflow)
		_, _ = pool.Exec(ctx, `DELETE FROM tags WHERE name = $1`, tag)
	})

	writer, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = writer.Rollback(ctx) }()
	w := repo.NewRepos(writer)
	require.NoError(t, w.Tags.EnsureAll(ctx, []string{tag}))
	_, err = w.Workflows.Create(ctx, workflowFixture(workflow, tag))
	require.NoError(t, err)

	type result struct {
		removed int64
		err     error
	}
	done := make(chan result, 1)
	go func() {
		var removed int64
		err := repo.NewUnitOfWork(pool).Do(ctx, func(r repo.Repos) error {
			if _, err := r.Tags.Delete(ctx, tag); err != nil {
				return err
			}
			var err error
			removed, err = r.Workflows.RemoveTag(ctx, tag)
			return err
		})
		done <- result{removed, err}
	}()

	select {
	case res := <-done:
		t.Fatalf("delete finished while the tag was held: %+v", res)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, writer.Commit(ctx))

	var res result
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("delete still blocked after commit")
	}
	require.NoError(t, res.err)
	assert.Equal(t, int64(1), res.removed, "cascade must see the committed assignment")

	holders, err := repo.NewRepos(pool).Workflows.NamesWithTag(ctx, tag)
	require.NoError(t, err)
	assert.Empty(t, holders)
	_, err = repo.NewRepos(pool).Tags.GetByName(ctx, tag)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestTagRepo_List_Substring(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"ops", "DevOps", "finance"}))

	got, err := r.List(ctx, "OPS")

	require.NoError(t, err)
	assert.Equal(t, []string{"ops", "DevOps"}, tagNames(got))
}

func TestTagRepo_List_Empty(t *testing.T) {
	r := newTestRepos(t).Tags

	got, err := r.List(context.Background(), "zzz-no-match")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagRepo_ListPaged(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"a1", "a2", "a3", "b1"}))

	got, total, err := r.ListPaged(ctx, "a", domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"a3"}, tagNames(got))
}

// ---- Rename ----------------------------------------------------------------

func TestTagRepo_Rename_KeepsIdentityAndPosition(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"ops", "finance"}))
	before, err := r.GetByName(ctx, "ops")
	require.NoError(t, err)

	after, err := r.Rename(ctx, "ops", "operations")

	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Position, after.Position)
	list, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"operations", "finance"}, tagNames(list))
}

func TestTagRepo_Rename_Conflict(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"ops", "finance"}))

	_, err := r.Rename(ctx, "ops", "finance")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTagRepo_Rename_NotFound(t *testing.T) {
	r := newTestRepos(t).Tags

	_, err := r.Rename(context.Background(), "missing", "other")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestTagRepo_Delete(t *testing.T) {
	r := newTestRepos(t).Tags
	ctx := context.Background()

	require.NoError(t, r.EnsureAll(ctx, []string{"ops"}))

	removed, err := r.Delete(ctx, "ops")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(ctx, "ops")
	require.NoError(t, err)
	assert.False(t, removed, "second delete finds nothing")

	_, err = r.GetByName(ctx, "ops")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
