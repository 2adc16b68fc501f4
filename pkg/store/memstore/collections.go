package memstore

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"
)

// New returns an empty store.Store held in process memory.
func New() *store.Store {
	now := func() time.Time { return time.Now().UTC() }

	return &store.Store{
		Sources: newCollection(
			func(r *record.Source) string { return r.ID },
			func(r *record.Source, f record.Filter) bool {
				return eq(r.Type, f.Type) && eq(r.Language, f.Language) &&
					text(f.Text, &r.URL, &r.Publisher)
			},
			func(a, b *record.Source) bool {
				ta, tb := capturedAt(a), capturedAt(b)
				if !ta.Equal(tb) {
					return ta.After(tb)
				}
				return a.ID < b.ID
			},
			func(old, rec *record.Source) bool {
				if old != nil {
					return false
				}
				if rec.CapturedAt == nil {
					t := now()
					rec.CapturedAt = &t
				}
				return true
			},
		),
		Entities: newCollection(
			func(r *record.Entity) string { return r.ID },
			func(r *record.Entity, f record.Filter) bool {
				return eqs(r.CountryID, f.Country) && eqs(r.Type, f.Type) &&
					text(f.Text, &r.Name, r.Description)
			},
			func(a, b *record.Entity) bool { return a.ID < b.ID },
			nil,
		),
		People: newCollection(
			func(r *record.Person) string { return r.ID },
			func(r *record.Person, f record.Filter) bool {
				return eq(r.CountryID, f.Country) && eq(r.EntityID, f.EntityID) &&
					text(f.Text, &r.FullName, r.RoleTitle, r.BioShort)
			},
			func(a, b *record.Person) bool { return a.ID < b.ID },
			nil,
		),
		Projects: newCollection(
			func(r *record.Project) string { return r.ID },
			func(r *record.Project, f record.Filter) bool {
				return listContains(r.CountriesInvolved, f.Country) && eqs(r.Segment, f.Segment) &&
					eq(r.Status, f.Status) && text(f.Text, &r.Name, r.CorridorSection)
			},
			func(a, b *record.Project) bool { return a.ID < b.ID },
			nil,
		),
		Budgets: newCollection(
			func(r *record.Budget) string { return r.ID },
			func(r *record.Budget, f record.Filter) bool {
				return listContains(r.CountriesInvolved, f.Country) && eqs(r.Segment, f.Segment) &&
					inRange(r.Date, f) && text(f.Text, r.Purpose, r.SummaryFR, r.SummaryEN, r.SummaryAR)
			},
			func(a, b *record.Budget) bool { return dateDesc(a.Date, b.Date, a.ID, b.ID) },
			func(old, rec *record.Budget) bool {
				if old != nil {
					rec.CreatedAt = old.CreatedAt
				} else {
					rec.CreatedAt = now()
				}
				return true
			},
		),
		Statements: newCollection(
			func(r *record.Statement) string { return r.ID },
			func(r *record.Statement, f record.Filter) bool {
				return listContains(r.CountriesInvolved, f.Country) && eq(r.PersonID, f.PersonID) &&
					eq(r.EntityID, f.EntityID) && eq(r.Language, f.Language) && inRange(r.Date, f) &&
					text(f.Text, &r.Quote, r.SummaryFR, r.SummaryEN, r.SummaryAR)
			},
			func(a, b *record.Statement) bool { return dateDesc(a.Date, b.Date, a.ID, b.ID) },
			nil,
		),
		Events: newCollection(
			func(r *record.Event) string { return r.ID },
			func(r *record.Event, f record.Filter) bool {
				return listContains(r.CountriesInvolved, f.Country) && inRange(r.StartDate, f) &&
					text(f.Text, &r.Title, r.SummaryFR, r.SummaryEN, r.SummaryAR)
			},
			func(a, b *record.Event) bool { return dateDesc(a.StartDate, b.StartDate, a.ID, b.ID) },
			nil,
		),
		News: newCollection(
			func(r *record.News) string { return r.ID },
			func(r *record.News, f record.Filter) bool {
				return eq(r.Language, f.Language) && inRange(r.Date, f) &&
					text(f.Text, &r.Title, r.SummaryFR, r.SummaryEN, r.SummaryAR)
			},
			func(a, b *record.News) bool { return dateDesc(a.Date, b.Date, a.ID, b.ID) },
			nil,
		),
		Relations: newCollection(
			func(r *record.Relation) string { return r.ID },
			func(r *record.Relation, f record.Filter) bool {
				return eqs(r.FromType, f.FromType) && eqs(r.FromID, f.FromID) &&
					eqs(r.ToType, f.ToType) && eqs(r.ToID, f.ToID) && eqs(r.Relation, f.Relation)
			},
			func(a, b *record.Relation) bool { return a.ID < b.ID },
			nil,
		),
		Jurisdictions: newCollection(
			func(r *record.Jurisdiction) string { return r.ID },
			func(r *record.Jurisdiction, f record.Filter) bool {
				return eqs(r.CountryID, f.Country) && eqs(r.Level, f.Level) && text(f.Text, &r.Name)
			},
			func(a, b *record.Jurisdiction) bool { return a.ID < b.ID },
			nil,
		),
		LegalInstruments: newCollection(
			func(r *record.LegalInstrument) string { return r.ID },
			func(r *record.LegalInstrument, f record.Filter) bool {
				return eqs(r.CountryID, f.Country) && eqs(r.InstrumentType, f.InstrumentType) &&
					eq(r.Status, f.Status) && inRange(r.AdoptionDate, f) &&
					text(f.Text, &r.Title, r.SummaryFR, r.SummaryEN, r.SummaryAR)
			},
			func(a, b *record.LegalInstrument) bool {
				return dateDesc(a.AdoptionDate, b.AdoptionDate, a.ID, b.ID)
			},
			nil,
		),
	}
}

func newCollection[T any](
	id func(*T) string,
	match func(*T, record.Filter) bool,
	less func(a, b *T) bool,
	admit func(old, rec *T) bool,
) *collection[T] {
	return &collection[T]{
		rows:  map[string]*T{},
		id:    id,
		match: match,
		less:  less,
		admit: admit,
	}
}

// eqs and eq compare a column with a filter value; an empty filter value
// matches everything and a NULL column matches nothing.
func eqs(column, want string) bool {
	return want == "" || column == want
}

func eq(column *string, want string) bool {
	if want == "" {
		return true
	}
	return column != nil && *column == want
}

// listContains mirrors `column::text LIKE '%value%'` on a JSONB list.
func listContains(list []string, value string) bool {
	if value == "" {
		return true
	}
	return strings.Contains(jsonbText(list), value)
}

// jsonbText renders list the way PostgreSQL prints a jsonb array:
// elements separated by ", " and no HTML escaping.
func jsonbText(list []string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	parts := make([]string, 0, len(list))
	for _, v := range list {
		buf.Reset()
		if err := enc.Encode(v); err != nil {
			return ""
		}
		parts = append(parts, strings.TrimSuffix(buf.String(), "\n"))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func inRange(d *record.Date, f record.Filter) bool {
	if f.After == nil && f.Before == nil {
		return true
	}
	if d == nil {
		return false
	}
	if f.After != nil && d.Before(f.After.Time) {
		return false
	}
	if f.Before != nil && !d.Before(f.Before.Time) {
		return false
	}
	return true
}

func text(q string, columns ...*string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, c := range columns {
		if c != nil && strings.Contains(strings.ToLower(*c), q) {
			return true
		}
	}
	return false
}

// dateDesc orders newest first with NULL dates last, then by id.
func dateDesc(a, b *record.Date, idA, idB string) bool {
	switch {
	case a == nil && b == nil:
		return idA < idB
	case a == nil:
		return false
	case b == nil:
		return true
	case !a.Equal(b.Time):
		return a.After(b.Time)
	default:
		return idA < idB
	}
}

func capturedAt(s *record.Source) time.Time {
	if s.CapturedAt == nil {
		return time.Time{}
	}
	return *s.CapturedAt
}
