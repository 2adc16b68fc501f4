package pgx

import (
	"context"
	"fmt"

	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/record"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const legalSelect = `
	SELECT id, title, instrument_type, number, status, adoption_date,
	       effective_date, country_id, jurisdiction_id, segments,
	       related_projects, topics, source_id, original_lang, summary_fr,
	       summary_en, summary_ar, credibility_score
	FROM legal_instruments`

type legalRepo struct {
	conn pgxIConn
}

func (r *legalRepo) Upsert(ctx context.Context, li *record.LegalInstrument) error {
	query := `
		INSERT INTO legal_instruments (
			id, title, instrument_type, number, status, adoption_date,
			effective_date, country_id, jurisdiction_id, segments,
			related_projects, topics, source_id, original_lang, summary_fr,
			summary_en, summary_ar, credibility_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			instrument_type = EXCLUDED.instrument_type,
			number = EXCLUDED.number,
			status = EXCLUDED.status,
			adoption_date = EXCLUDED.adoption_date,
			effective_date = EXCLUDED.effective_date,
			country_id = EXCLUDED.country_id,
			jurisdiction_id = EXCLUDED.jurisdiction_id,
			segments = EXCLUDED.segments,
			related_projects = EXCLUDED.related_projects,
			topics = EXCLUDED.topics,
			source_id = EXCLUDED.source_id,
			original_lang = EXCLUDED.original_lang,
			summary_fr = EXCLUDED.summary_fr,
			summary_en = EXCLUDED.summary_en,
			summary_ar = EXCLUDED.summary_ar,
			credibility_score = EXCLUDED.credibility_score`

	_, err := r.conn.Exec(ctx, query,
		li.ID,
		li.Title,
		li.InstrumentType,
		li.Number,
		li.Status,
		dateArg(li.AdoptionDate),
		dateArg(li.EffectiveDate),
		li.CountryID,
		li.JurisdictionID,
		listArg(li.Segments),
		listArg(li.RelatedProjects),
		listArg(li.Topics),
		li.SourceID,
		li.OriginalLang,
		li.SummaryFR,
		li.SummaryEN,
		li.SummaryAR,
		li.CredibilityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert legal instrument: %w", err)
	}

	logger.Debug("[Store][Legal] Upserted legal instrument", "id", li.ID)
	return nil
}

func (r *legalRepo) Get(ctx context.Context, id string) (*record.LegalInstrument, error) {
	return getOne(ctx, r.conn, legalSelect+" WHERE id = $1", id, scanLegalInstrument)
}

// List filters country exactly on country_id, unlike the list-valued
// collections.
func (r *legalRepo) List(ctx context.Context, f record.Filter) ([]*record.LegalInstrument, error) {
	w := &where{}
	w.eq("country_id", f.Country)
	w.eq("instrument_type", f.InstrumentType)
	w.eq("status", f.Status)
	w.dateRange("adoption_date", f)
	w.text(f.Text, "title", "summary_fr", "summary_en", "summary_ar")

	query := legalSelect + w.sql() + " ORDER BY adoption_date DESC NULLS LAST, id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanLegalInstrument)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal instruments: %w", err)
	}
	return items, nil
}

func scanLegalInstrument(row pgxv5.Row) (*record.LegalInstrument, error) {
	var li record.LegalInstrument
	var adoption, effective pgtype.Date
	var segments, related, topics []byte

	err := row.Scan(
		&li.ID,
		&li.Title,
		&li.InstrumentType,
		&li.Number,
		&li.Status,
		&adoption,
		&effective,
		&li.CountryID,
		&li.JurisdictionID,
		&segments,
		&related,
		&topics,
		&li.SourceID,
		&li.OriginalLang,
		&li.SummaryFR,
		&li.SummaryEN,
		&li.SummaryAR,
		&li.CredibilityScore,
	)
	if err != nil {
		return nil, err
	}

	li.AdoptionDate = dateValue(adoption)
	li.EffectiveDate = dateValue(effective)
	if li.Segments, err = scanList(segments); err != nil {
		return nil, err
	}
	if li.RelatedProjects, err = scanList(related); err != nil {
		return nil, err
	}
	if li.Topics, err = scanList(topics); err != nil {
		return nil, err
	}
	return &li, nil
}
