package pgx

import (
	"context"
	"fmt"

	"github.com/imec-intel/hub/pkg/record"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Graph nodes (entities, people, projects), the edges between them and the
// jurisdictions legal instruments hang off. All of them list in id order.

const entitySelect = `SELECT id, name, type, country_id, website, description FROM entities`

type entityRepo struct {
	conn pgxIConn
}

func (r *entityRepo) Upsert(ctx context.Context, e *record.Entity) error {
	query := `
		INSERT INTO entities (id, name, type, country_id, website, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			country_id = EXCLUDED.country_id,
			website = EXCLUDED.website,
			description = EXCLUDED.description`

	_, err := r.conn.Exec(ctx, query, e.ID, e.Name, e.Type, e.CountryID, e.Website, e.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}
	return nil
}

func (r *entityRepo) Get(ctx context.Context, id string) (*record.Entity, error) {
	return getOne(ctx, r.conn, entitySelect+" WHERE id = $1", id, scanEntity)
}

func (r *entityRepo) List(ctx context.Context, f record.Filter) ([]*record.Entity, error) {
	w := &where{}
	w.eq("country_id", f.Country)
	w.eq("type", f.Type)
	w.text(f.Text, "name", "description")

	query := entitySelect + w.sql() + " ORDER BY id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	return items, nil
}

func scanEntity(row pgxv5.Row) (*record.Entity, error) {
	var e record.Entity
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.CountryID, &e.Website, &e.Description); err != nil {
		return nil, err
	}
	return &e, nil
}

const personSelect = `SELECT id, full_name, role_title, entity_id, country_id, bio_short FROM people`

type personRepo struct {
	conn pgxIConn
}

func (r *personRepo) Upsert(ctx context.Context, p *record.Person) error {
	query := `
		INSERT INTO people (id, full_name, role_title, entity_id, country_id, bio_short)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role_title = EXCLUDED.role_title,
			entity_id = EXCLUDED.entity_id,
			country_id = EXCLUDED.country_id,
			bio_short = EXCLUDED.bio_short`

	_, err := r.conn.Exec(ctx, query, p.ID, p.FullName, p.RoleTitle, p.EntityID, p.CountryID, p.BioShort)
	if err != nil {
		return fmt.Errorf("failed to upsert person: %w", err)
	}
	return nil
}

func (r *personRepo) Get(ctx context.Context, id string) (*record.Person, error) {
	return getOne(ctx, r.conn, personSelect+" WHERE id = $1", id, scanPerson)
}

func (r *personRepo) List(ctx context.Context, f record.Filter) ([]*record.Person, error) {
	w := &where{}
	w.eq("country_id", f.Country)
	w.eq("entity_id", f.EntityID)
	w.text(f.Text, "full_name", "role_title", "bio_short")

	query := personSelect + w.sql() + " ORDER BY id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanPerson)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	return items, nil
}

func scanPerson(row pgxv5.Row) (*record.Person, error) {
	var p record.Person
	if err := row.Scan(&p.ID, &p.FullName, &p.RoleTitle, &p.EntityID, &p.CountryID, &p.BioShort); err != nil {
		return nil, err
	}
	return &p, nil
}

const projectSelect = `
	SELECT id, name, segment, corridor_section, countries_involved, status,
	       start_date, end_date_est
	FROM projects`

type projectRepo struct {
	conn pgxIConn
}

func (r *projectRepo) Upsert(ctx context.Context, p *record.Project) error {
	query := `
		INSERT INTO projects (
			id, name, segment, corridor_section, countries_involved, status,
			start_date, end_date_est
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			segment = EXCLUDED.segment,
			corridor_section = EXCLUDED.corridor_section,
			countries_involved = EXCLUDED.countries_involved,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date_est = EXCLUDED.end_date_est`

	_, err := r.conn.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Segment,
		p.CorridorSection,
		listArg(p.CountriesInvolved),
		p.Status,
		dateArg(p.StartDate),
		dateArg(p.EndDateEst),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

func (r *projectRepo) Get(ctx context.Context, id string) (*record.Project, error) {
	return getOne(ctx, r.conn, projectSelect+" WHERE id = $1", id, scanProject)
}

func (r *projectRepo) List(ctx context.Context, f record.Filter) ([]*record.Project, error) {
	w := &where{}
	w.listContains("countries_involved", f.Country)
	w.eq("segment", f.Segment)
	w.eq("status", f.Status)
	w.text(f.Text, "name", "corridor_section")

	query := projectSelect + w.sql() + " ORDER BY id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanProject)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	return items, nil
}

func scanProject(row pgxv5.Row) (*record.Project, error) {
	var p record.Project
	var start, end pgtype.Date
	var countries []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Segment,
		&p.CorridorSection,
		&countries,
		&p.Status,
		&start,
		&end,
	)
	if err != nil {
		return nil, err
	}

	p.StartDate = dateValue(start)
	p.EndDateEst = dateValue(end)
	if p.CountriesInvolved, err = scanList(countries); err != nil {
		return nil, err
	}
	return &p, nil
}

const relationSelect = `SELECT id, from_type, from_id, to_type, to_id, relation, weight FROM relations`

type relationRepo struct {
	conn pgxIConn
}

func (r *relationRepo) Upsert(ctx context.Context, rel *record.Relation) error {
	query := `
		INSERT INTO relations (id, from_type, from_id, to_type, to_id, relation, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			from_type = EXCLUDED.from_type,
			from_id = EXCLUDED.from_id,
			to_type = EXCLUDED.to_type,
			to_id = EXCLUDED.to_id,
			relation = EXCLUDED.relation,
			weight = EXCLUDED.weight`

	_, err := r.conn.Exec(ctx, query,
		rel.ID,
		rel.FromType,
		rel.FromID,
		rel.ToType,
		rel.ToID,
		rel.Relation,
		rel.Weight,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert relation: %w", err)
	}
	return nil
}

func (r *relationRepo) Get(ctx context.Context, id string) (*record.Relation, error) {
	return getOne(ctx, r.conn, relationSelect+" WHERE id = $1", id, scanRelation)
}

func (r *relationRepo) List(ctx context.Context, f record.Filter) ([]*record.Relation, error) {
	w := &where{}
	w.eq("from_type", f.FromType)
	w.eq("from_id", f.FromID)
	w.eq("to_type", f.ToType)
	w.eq("to_id", f.ToID)
	w.eq("relation", f.Relation)

	query := relationSelect + w.sql() + " ORDER BY id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanRelation)
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}
	return items, nil
}

func scanRelation(row pgxv5.Row) (*record.Relation, error) {
	var rel record.Relation
	err := row.Scan(&rel.ID, &rel.FromType, &rel.FromID, &rel.ToType, &rel.ToID, &rel.Relation, &rel.Weight)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

const jurisdictionSelect = `SELECT id, name, country_id, level FROM jurisdictions`

type jurisdictionRepo struct {
	conn pgxIConn
}

func (r *jurisdictionRepo) Upsert(ctx context.Context, j *record.Jurisdiction) error {
	query := `
		INSERT INTO jurisdictions (id, name, country_id, level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			country_id = EXCLUDED.country_id,
			level = EXCLUDED.level`

	if _, err := r.conn.Exec(ctx, query, j.ID, j.Name, j.CountryID, j.Level); err != nil {
		return fmt.Errorf("failed to upsert jurisdiction: %w", err)
	}
	return nil
}

func (r *jurisdictionRepo) Get(ctx context.Context, id string) (*record.Jurisdiction, error) {
	return getOne(ctx, r.conn, jurisdictionSelect+" WHERE id = $1", id, scanJurisdiction)
}

func (r *jurisdictionRepo) List(ctx context.Context, f record.Filter) ([]*record.Jurisdiction, error) {
	w := &where{}
	w.eq("country_id", f.Country)
	w.eq("level", f.Level)
	w.text(f.Text, "name")

	query := jurisdictionSelect + w.sql() + " ORDER BY id" + w.limit(f.Limit)
	items, err := listRows(ctx, r.conn, query, w.args, scanJurisdiction)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdictions: %w", err)
	}
	return items, nil
}

func scanJurisdiction(row pgxv5.Row) (*record.Jurisdiction, error) {
	var j record.Jurisdiction
	if err := row.Scan(&j.ID, &j.Name, &j.CountryID, &j.Level); err != nil {
		return nil, err
	}
	return &j, nil
}
