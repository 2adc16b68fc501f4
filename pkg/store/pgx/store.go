package pgx

import (
	"context"

	"github.com/imec-intel/hub/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// NewStore returns a store.Store whose collections run explicit SQL against
// conn. conn is usually the process-wide *pgxpool.Pool; a pgx.Tx works as
// well. Every statement is a single round-trip, so each upsert is its own
// transaction and isolation is left to PostgreSQL.
func NewStore(conn pgxIConn) *store.Store {
	return &store.Store{
		Sources:          &sourceRepo{conn: conn},
		Entities:         &entityRepo{conn: conn},
		People:           &personRepo{conn: conn},
		Projects:         &projectRepo{conn: conn},
		Budgets:          &budgetRepo{conn: conn},
		Statements:       &statementRepo{conn: conn},
		Events:           &eventRepo{conn: conn},
		News:             &newsRepo{conn: conn},
		Relations:        &relationRepo{conn: conn},
		Jurisdictions:    &jurisdictionRepo{conn: conn},
		LegalInstruments: &legalRepo{conn: conn},
	}
}
