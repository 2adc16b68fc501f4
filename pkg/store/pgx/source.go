package pgx

import (
	"context"
	"fmt"

	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/record"

	pgxv5 "github.com/jackc/pgx/v5"
)

const sourceSelect = `
	SELECT id, url, publisher, type, language, captured_at
	FROM sources`

type sourceRepo struct {
	conn pgxIConn
}

// Upsert inserts the source if its id is unknown and leaves an existing row
// untouched. captured_at falls back to the insert time.
func (r *sourceRepo) Upsert(ctx context.Context, s *record.Source) error {
	query := `
		INSERT INTO sources (id, url, publisher, type, language, captured_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, now()))
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.conn.Exec(ctx, query,
		s.ID,
		s.URL,
		s.Publisher,
		s.Type,
		s.Language,
		s.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}

	if tag.RowsAffected() == 0 {
		logger.Debug("[Store][Sources] Source already captured", "id", s.ID)
	}
	return nil
}

func (r *sourceRepo) Get(ctx context.Context, id string) (*record.Source, error) {
	return getOne(ctx, r.conn, sourceSelect+" WHERE id = $1", id, scanSource)
}

func (r *sourceRepo) List(ctx context.Context, f record.Filter) ([]*record.Source, error) {
	w := &where{}
	w.eq("type", f.Type)
	w.eq("language", f.Language)
	w.text(f.Text, "url", "publisher")

	query := sourceSelect + w.sql() + " ORDER BY captured_at DESC, id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanSource)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	return items, nil
}

func scanSource(row pgxv5.Row) (*record.Source, error) {
	var s record.Source
	err := row.Scan(&s.ID, &s.URL, &s.Publisher, &s.Type, &s.Language, &s.CapturedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
