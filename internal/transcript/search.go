package transcript

import (
	"context"
	"strings"
)

// SearchParams holds parameters for searching turns.
type SearchParams struct {
	Query string
	Role  string
	Limit int
}

// Search finds turns whose text matches the query via the full-text index.
func (s *Store) Search(ctx context.Context, p SearchParams) ([]Turn, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"turns_fts MATCH ?"}
	args := []interface{}{ftsQuery(p.Query)}

	if p.Role != "" {
		where = append(where, "t.role = ?")
		args = append(args, p.Role)
	}
	args = append(args, limit)

	query := `
		SELECT t.id, t.session_id, t.seq, t.role, t.text, t.keyword, t.created_at
		FROM turns_fts
		INNER JOIN turns t ON t.rowid = turns_fts.rowid
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY t.created_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// ftsQuery quotes each term so user input cannot break FTS5 query syntax.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, ``) + `"`
	}
	return strings.Join(fields, " ")
}
