package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/recdex/internal/db"
)

// ReadableRecords resolves the allow-list with a single SELECT.
func (s *Store) ReadableRecords(ctx context.Context, q *db.AllowListQuery) ([]int64, error) {
	query, args := allowListSQL(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return ids, nil
}

// allowListSQL builds the statement for q. Records are readable when public or
// granted to the user; each non-empty filter adds one more condition.
func allowListSQL(q *db.AllowListQuery) (string, []any) {
	var b strings.Builder
	args := []any{q.UserID}

	b.WriteString("SELECT r.id FROM records r WHERE ")
	granted := "EXISTS (SELECT 1 FROM record_permissions p WHERE p.record_id = r.id AND p.user_id = ?)"
	if q.HidePublic {
		b.WriteString(granted + " AND r.visibility <> ?")
	} else {
		b.WriteString("(" + granted + " OR r.visibility = ?)")
	}
	args = append(args, db.VisibilityPublic)

	if len(q.Collections) > 0 {
		b.WriteString(" AND EXISTS (SELECT 1 FROM collection_records c" +
			" WHERE c.record_id = r.id AND c.collection_id IN (" + placeholders(len(q.Collections)) + "))")
		for _, id := range q.Collections {
			args = append(args, id)
		}
	}

	if tags := distinct(q.Tags); len(tags) > 0 {
		in := "t.tag IN (" + placeholders(len(tags)) + ")"
		if q.AllTags {
			b.WriteString(" AND (SELECT COUNT(DISTINCT t.tag) FROM record_tags t WHERE t.record_id = r.id AND " + in + ") = ?")
		} else {
			b.WriteString(" AND EXISTS (SELECT 1 FROM record_tags t WHERE t.record_id = r.id AND " + in + ")")
		}
		for _, t := range tags {
			args = append(args, t)
		}
		if q.AllTags {
			args = append(args, len(tags))
		}
	}

	if len(q.RecordTypes) > 0 {
		b.WriteString(" AND r.record_type IN (" + placeholders(len(q.RecordTypes)) + ")")
		for _, t := range q.RecordTypes {
			args = append(args, t)
		}
	}

	if len(q.Mimetypes) > 0 {
		b.WriteString(" AND EXISTS (SELECT 1 FROM files f" +
			" WHERE f.record_id = r.id AND f.mimetype IN (" + placeholders(len(q.Mimetypes)) + "))")
		for _, m := range q.Mimetypes {
			args = append(args, m)
		}
	}

	b.WriteString(" ORDER BY r.id")
	return b.String(), args
}

func placeholders(n int) string {
	if n <= 0 {
		panic(fmt.Sprintf("placeholders: n = %d", n))
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
