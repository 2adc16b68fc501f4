package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// where accumulates AND-ed predicates. Every "?" in a clause is bound to the
// argument added with it, so one argument may appear several times.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

func (w *where) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *where) limit(n int) string {
	if n <= 0 {
		return ""
	}
	w.args = append(w.args, n)
	return " LIMIT $" + strconv.Itoa(len(w.args))
}

func (w *where) dateRange(column string, f record.Filter) {
	if f.After != nil {
		w.add(column+" >= ?", f.After.Time)
	}
	if f.Before != nil {
		w.add(column+" < ?", f.Before.Time)
	}
}

// listContains matches a value anywhere in the text form of a JSONB list.
// It is a substring test, not set membership: "AE" also matches ["UAE"].
func (w *where) listContains(column, value string) {
	if value != "" {
		w.add(column+"::text LIKE ?", "%"+value+"%")
	}
}

func (w *where) eq(column, value string) {
	if value != "" {
		w.add(column+" = ?", value)
	}
}

func (w *where) text(value string, columns ...string) {
	if value == "" || len(columns) == 0 {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE ?"
	}
	w.add("("+strings.Join(parts, " OR ")+")", "%"+value+"%")
}

func getOne[T any](ctx context.Context, conn pgxIConn, query string, id string, scan func(pgxv5.Row) (*T, error)) (*T, error) {
	rec, err := scan(conn.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func listRows[T any](ctx context.Context, conn pgxIConn, query string, args []any, scan func(pgxv5.Row) (*T, error)) ([]*T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func dateArg(d *record.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func dateValue(d pgtype.Date) *record.Date {
	if !d.Valid {
		return nil
	}
	return &record.Date{Time: d.Time}
}

// listArg stores an omitted list as [] rather than NULL.
func listArg(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func mapArg(v map[string]any) any {
	if v == nil {
		return nil
	}
	return v
}

func scanList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list column: %w", err)
	}
	return out, nil
}

func scanMap(raw []byte) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object column: %w", err)
	}
	return out, nil
}
