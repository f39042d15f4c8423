package templates

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListHeaders(ctx context.Context) ([]Header, error) {
	return s.queryHeaders(ctx, `
    SELECT h.id, h.title,
           COALESCE(t.id, ''), COALESCE(t.title, ''), COALESCE(t.description, ''),
           COALESCE(t.performance_factor, ''), COALESCE(t.importance, ''),
           COALESCE(t.weightage, 0), COALESCE(t.categories, '{}')
    FROM goal_template_headers h
    LEFT JOIN goal_templates t ON t.header_id = h.id
    ORDER BY h.title, t.title
  `)
}

func (s *Store) GetHeaders(ctx context.Context, headerIDs []string) ([]Header, error) {
	return s.queryHeaders(ctx, `
    SELECT h.id, h.title,
           COALESCE(t.id, ''), COALESCE(t.title, ''), COALESCE(t.description, ''),
           COALESCE(t.performance_factor, ''), COALESCE(t.importance, ''),
           COALESCE(t.weightage, 0), COALESCE(t.categories, '{}')
    FROM goal_template_headers h
    LEFT JOIN goal_templates t ON t.header_id = h.id
    WHERE h.id = ANY($1)
    ORDER BY h.title, t.title
  `, headerIDs)
}

func (s *Store) queryHeaders(ctx context.Context, query string, args ...any) ([]Header, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []Header
	index := map[string]int{}
	for rows.Next() {
		var headerID, headerTitle string
		var tmpl Template
		if err := rows.Scan(&headerID, &headerTitle, &tmpl.ID, &tmpl.Title, &tmpl.Description,
			&tmpl.PerformanceFactor, &tmpl.Importance, &tmpl.Weightage, &tmpl.Categories); err != nil {
			return nil, err
		}
		pos, ok := index[headerID]
		if !ok {
			headers = append(headers, Header{ID: headerID, Title: headerTitle})
			pos = len(headers) - 1
			index[headerID] = pos
		}
		if tmpl.ID != "" {
			headers[pos].Templates = append(headers[pos].Templates, tmpl)
		}
	}
	return headers, nil
}
