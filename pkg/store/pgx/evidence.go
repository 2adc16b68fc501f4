package pgx

import (
	"context"
	"fmt"

	"github.com/imec-intel/hub/pkg/record"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Statements, events and news share the evidentiary shape: a source, a
// primary date, multilingual summaries and a credibility score.

const statementSelect = `
	SELECT id, person_id, entity_id, date, language, quote, summary_fr,
	       summary_en, summary_ar, stance_tag, countries_involved, source_id,
	       credibility_score
	FROM statements`

type statementRepo struct {
	conn pgxIConn
}

func (r *statementRepo) Upsert(ctx context.Context, s *record.Statement) error {
	query := `
		INSERT INTO statements (
			id, person_id, entity_id, date, language, quote, summary_fr,
			summary_en, summary_ar, stance_tag, countries_involved, source_id,
			credibility_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			person_id = EXCLUDED.person_id,
			entity_id = EXCLUDED.entity_id,
			date = EXCLUDED.date,
			language = EXCLUDED.language,
			quote = EXCLUDED.quote,
			summary_fr = EXCLUDED.summary_fr,
			summary_en = EXCLUDED.summary_en,
			summary_ar = EXCLUDED.summary_ar,
			stance_tag = EXCLUDED.stance_tag,
			countries_involved = EXCLUDED.countries_involved,
			source_id = EXCLUDED.source_id,
			credibility_score = EXCLUDED.credibility_score`

	_, err := r.conn.Exec(ctx, query,
		s.ID,
		s.PersonID,
		s.EntityID,
		dateArg(s.Date),
		s.Language,
		s.Quote,
		s.SummaryFR,
		s.SummaryEN,
		s.SummaryAR,
		mapArg(s.StanceTag),
		listArg(s.CountriesInvolved),
		s.SourceID,
		s.CredibilityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert statement: %w", err)
	}
	return nil
}

func (r *statementRepo) Get(ctx context.Context, id string) (*record.Statement, error) {
	return getOne(ctx, r.conn, statementSelect+" WHERE id = $1", id, scanStatement)
}

func (r *statementRepo) List(ctx context.Context, f record.Filter) ([]*record.Statement, error) {
	w := &where{}
	w.listContains("countries_involved", f.Country)
	w.eq("person_id", f.PersonID)
	w.eq("entity_id", f.EntityID)
	w.eq("language", f.Language)
	w.dateRange("date", f)
	w.text(f.Text, "quote", "summary_fr", "summary_en", "summary_ar")

	query := statementSelect + w.sql() + " ORDER BY date DESC, id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	return items, nil
}

func scanStatement(row pgxv5.Row) (*record.Statement, error) {
	var s record.Statement
	var date pgtype.Date
	var stance, countries []byte

	err := row.Scan(
		&s.ID,
		&s.PersonID,
		&s.EntityID,
		&date,
		&s.Language,
		&s.Quote,
		&s.SummaryFR,
		&s.SummaryEN,
		&s.SummaryAR,
		&stance,
		&countries,
		&s.SourceID,
		&s.CredibilityScore,
	)
	if err != nil {
		return nil, err
	}

	s.Date = dateValue(date)
	if s.StanceTag, err = scanMap(stance); err != nil {
		return nil, err
	}
	if s.CountriesInvolved, err = scanList(countries); err != nil {
		return nil, err
	}
	return &s, nil
}

const eventSelect = `
	SELECT id, title, start_date, end_date, location, countries_involved,
	       speakers, links, summary_fr, summary_en, summary_ar, source_id,
	       credibility_score
	FROM events`

type eventRepo struct {
	conn pgxIConn
}

func (r *eventRepo) Upsert(ctx context.Context, e *record.Event) error {
	query := `
		INSERT INTO events (
			id, title, start_date, end_date, location, countries_involved,
			speakers, links, summary_fr, summary_en, summary_ar, source_id,
			credibility_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			location = EXCLUDED.location,
			countries_involved = EXCLUDED.countries_involved,
			speakers = EXCLUDED.speakers,
			links = EXCLUDED.links,
			summary_fr = EXCLUDED.summary_fr,
			summary_en = EXCLUDED.summary_en,
			summary_ar = EXCLUDED.summary_ar,
			source_id = EXCLUDED.source_id,
			credibility_score = EXCLUDED.credibility_score`

	_, err := r.conn.Exec(ctx, query,
		e.ID,
		e.Title,
		dateArg(e.StartDate),
		dateArg(e.EndDate),
		e.Location,
		listArg(e.CountriesInvolved),
		listArg(e.Speakers),
		listArg(e.Links),
		e.SummaryFR,
		e.SummaryEN,
		e.SummaryAR,
		e.SourceID,
		e.CredibilityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

func (r *eventRepo) Get(ctx context.Context, id string) (*record.Event, error) {
	return getOne(ctx, r.conn, eventSelect+" WHERE id = $1", id, scanEvent)
}

func (r *eventRepo) List(ctx context.Context, f record.Filter) ([]*record.Event, error) {
	w := &where{}
	w.listContains("countries_involved", f.Country)
	w.dateRange("start_date", f)
	w.text(f.Text, "title", "summary_fr", "summary_en", "summary_ar")

	query := eventSelect + w.sql() + " ORDER BY start_date DESC, id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return items, nil
}

func scanEvent(row pgxv5.Row) (*record.Event, error) {
	var e record.Event
	var start, end pgtype.Date
	var countries, speakers, links []byte

	err := row.Scan(
		&e.ID,
		&e.Title,
		&start,
		&end,
		&e.Location,
		&countries,
		&speakers,
		&links,
		&e.SummaryFR,
		&e.SummaryEN,
		&e.SummaryAR,
		&e.SourceID,
		&e.CredibilityScore,
	)
	if err != nil {
		return nil, err
	}

	e.StartDate = dateValue(start)
	e.EndDate = dateValue(end)
	if e.CountriesInvolved, err = scanList(countries); err != nil {
		return nil, err
	}
	if e.Speakers, err = scanList(speakers); err != nil {
		return nil, err
	}
	if e.Links, err = scanList(links); err != nil {
		return nil, err
	}
	return &e, nil
}

const newsSelect = `
	SELECT id, title, outlet, date, language, summary_fr, summary_en,
	       summary_ar, tags, source_id, credibility_score
	FROM news`

type newsRepo struct {
	conn pgxIConn
}

func (r *newsRepo) Upsert(ctx context.Context, n *record.News) error {
	query := `
		INSERT INTO news (
			id, title, outlet, date, language, summary_fr, summary_en,
			summary_ar, tags, source_id, credibility_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			outlet = EXCLUDED.outlet,
			date = EXCLUDED.date,
			language = EXCLUDED.language,
			summary_fr = EXCLUDED.summary_fr,
			summary_en = EXCLUDED.summary_en,
			summary_ar = EXCLUDED.summary_ar,
			tags = EXCLUDED.tags,
			source_id = EXCLUDED.source_id,
			credibility_score = EXCLUDED.credibility_score`

	_, err := r.conn.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Outlet,
		dateArg(n.Date),
		n.Language,
		n.SummaryFR,
		n.SummaryEN,
		n.SummaryAR,
		listArg(n.Tags),
		n.SourceID,
		n.CredibilityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert news: %w", err)
	}
	return nil
}

func (r *newsRepo) Get(ctx context.Context, id string) (*record.News, error) {
	return getOne(ctx, r.conn, newsSelect+" WHERE id = $1", id, scanNews)
}

func (r *newsRepo) List(ctx context.Context, f record.Filter) ([]*record.News, error) {
	w := &where{}
	w.eq("language", f.Language)
	w.dateRange("date", f)
	w.text(f.Text, "title", "summary_fr", "summary_en", "summary_ar")

	query := newsSelect + w.sql() + " ORDER BY date DESC, id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanNews)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	return items, nil
}

func scanNews(row pgxv5.Row) (*record.News, error) {
	var n record.News
	var date pgtype.Date
	var tags []byte

	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Outlet,
		&date,
		&n.Language,
		&n.SummaryFR,
		&n.SummaryEN,
		&n.SummaryAR,
		&tags,
		&n.SourceID,
		&n.CredibilityScore,
	)
	if err != nil {
		return nil, err
	}

	n.Date = dateValue(date)
	if n.Tags, err = scanList(tags); err != nil {
		return nil, err
	}
	return &n, nil
}
