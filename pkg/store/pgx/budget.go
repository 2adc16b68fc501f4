package pgx

import (
	"context"
	"fmt"

	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/record"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const budgetSelect = `
	SELECT id, project_id, entity_id, amount_original, currency, amount_eur,
	       amount_usd, date, purpose, countries_involved, segment, source_id,
	       original_lang, summary_fr, summary_en, summary_ar, credibility_score,
	       created_at
	FROM budgets`

type budgetRepo struct {
	conn pgxIConn
}

// Upsert writes every column except created_at, which is set on the first
// insert and kept afterwards.
func (r *budgetRepo) Upsert(ctx context.Context, b *record.Budget) error {
	query := `
		INSERT INTO budgets (
			id, project_id, entity_id, amount_original, currency, amount_eur,
			amount_usd, date, purpose, countries_involved, segment, source_id,
			original_lang, summary_fr, summary_en, summary_ar, credibility_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			entity_id = EXCLUDED.entity_id,
			amount_original = EXCLUDED.amount_original,
			currency = EXCLUDED.currency,
			amount_eur = EXCLUDED.amount_eur,
			amount_usd = EXCLUDED.amount_usd,
			date = EXCLUDED.date,
			purpose = EXCLUDED.purpose,
			countries_involved = EXCLUDED.countries_involved,
			segment = EXCLUDED.segment,
			source_id = EXCLUDED.source_id,
			original_lang = EXCLUDED.original_lang,
			summary_fr = EXCLUDED.summary_fr,
			summary_en = EXCLUDED.summary_en,
			summary_ar = EXCLUDED.summary_ar,
			credibility_score = EXCLUDED.credibility_score
		RETURNING created_at`

	err := r.conn.QueryRow(ctx, query,
		b.ID,
		b.ProjectID,
		b.EntityID,
		b.AmountOriginal,
		b.Currency,
		b.AmountEUR,
		b.AmountUSD,
		dateArg(b.Date),
		b.Purpose,
		listArg(b.CountriesInvolved),
		b.Segment,
		b.SourceID,
		b.OriginalLang,
		b.SummaryFR,
		b.SummaryEN,
		b.SummaryAR,
		b.CredibilityScore,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	logger.Debug("[Store][Budgets] Upserted budget", "id", b.ID)
	return nil
}

func (r *budgetRepo) Get(ctx context.Context, id string) (*record.Budget, error) {
	return getOne(ctx, r.conn, budgetSelect+" WHERE id = $1", id, scanBudget)
}

func (r *budgetRepo) List(ctx context.Context, f record.Filter) ([]*record.Budget, error) {
	w := &where{}
	w.listContains("countries_involved", f.Country)
	w.eq("segment", f.Segment)
	w.dateRange("date", f)
	w.text(f.Text, "purpose", "summary_fr", "summary_en", "summary_ar")

	query := budgetSelect + w.sql() + " ORDER BY date DESC, id" + w.limit(f.Limit)
	budgets, err := listRows(ctx, r.conn, query, w.args, scanBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	return budgets, nil
}

func scanBudget(row pgxv5.Row) (*record.Budget, error) {
	var b record.Budget
	var date pgtype.Date
	var countries []byte

	err := row.Scan(
		&b.ID,
		&b.ProjectID,
		&b.EntityID,
		&b.AmountOriginal,
		&b.Currency,
		&b.AmountEUR,
		&b.AmountUSD,
		&date,
		&b.Purpose,
		&countries,
		&b.Segment,
		&b.SourceID,
		&b.OriginalLang,
		&b.SummaryFR,
		&b.SummaryEN,
		&b.SummaryAR,
		&b.CredibilityScore,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = dateValue(date)
	if b.CountriesInvolved, err = scanList(countries); err != nil {
		return nil, err
	}
	return &b, nil
}
