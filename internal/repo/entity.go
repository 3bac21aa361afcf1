package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/flowdeck/internal/domain"
)

// The helpers in this file are shared by the workflows and assistants tables,
// which have the same common columns and the same text[] tags column.

// listWhere filters on search text, status and tag. Empty parameters match all.
// strpos is used instead of ILIKE so user input needs no wildcard escaping.
const listWhere = `
		WHERE (@search = '' OR strpos(lower(name), lower(@search)) > 0
		                    OR strpos(lower(description), lower(@search)) > 0)
		  AND (@status = '' OR status = @status)
		  AND (@tag = '' OR @tag = ANY(tags))`

// sortColumns whitelists ORDER BY targets. Version is ordered as text here;
// numeric-aware version ordering happens client-side.
var sortColumns = map[domain.SortField]string{
	domain.SortByName:      "lower(name)",
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByVersion:   "version",
}

// listArgs builds the named arguments for listWhere plus pagination.
func listArgs(f domain.ListFilter, p domain.PaginationParams) pgx.NamedArgs {
	return pgx.NamedArgs{
		"search": strings.TrimSpace(f.Search),
		"status": string(f.Status),
		"tag":    f.Tag,
		"limit":  p.Limit,
		"offset": p.Offset(),
	}
}

// orderBy renders a safe ORDER BY clause for s.
func orderBy(s domain.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col, s = sortColumns[domain.DefaultSort.Field], domain.DefaultSort
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, lower(name) ASC, id ASC", col, dir)
}

// countRows runs the filtered COUNT(*) for table.
func countRows(ctx context.Context, db db, table string, args pgx.NamedArgs) (int64, error) {
	var total int64
	q := `SELECT count(*) FROM ` + table + listWhere
	if err := db.QueryRow(ctx, q, args).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// renameTagIn replaces oldName with newName in every row of table holding it.
// array_replace keeps the tag's position in each assignment.
func renameTagIn(ctx context.Context, db db, table, oldName, newName string) (int64, error) {
	q := `
		UPDATE ` + table + `
		SET tags = array_replace(tags, @old, @new)
		WHERE @old = ANY(tags)`
	tag, err := db.Exec(ctx, q, pgx.NamedArgs{"old": oldName, "new": newName})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// removeTagFrom strips name from every row of table holding it.
func removeTagFrom(ctx context.Context, db db, table, name string) (int64, error) {
	q := `
		UPDATE ` + table + `
		SET tags = array_remove(tags, @name)
		WHERE @name = ANY(tags)`
	tag, err := db.Exec(ctx, q, pgx.NamedArgs{"name": name})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// namesWithTag returns the names of rows in table holding tag, oldest first.
func namesWithTag(ctx context.Context, db db, table, tag string) ([]string, error) {
	q := `
		SELECT name FROM ` + table + `
		WHERE @tag = ANY(tags)
		ORDER BY created_at, id`
	rows, err := db.Query(ctx, q, pgx.NamedArgs{"tag": tag})
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return names, nil
}

// statusArg converts a domain status for binding; pgx binds plain strings.
func statusArg(s domain.Status) string {
	if s == "" {
		return string(domain.StatusDraft)
	}
	return string(s)
}

// tagsArg never binds NULL into the NOT NULL text[] column.
func tagsArg(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
