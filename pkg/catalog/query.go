package catalog

import (
	"net/url"
	"strconv"

	"github.com/imec-intel/hub/pkg/record"
)

// stringParams maps query parameter names to Filter fields. Parameters that
// do not apply to a collection are accepted and ignored by its store.
var stringParams = map[string]func(*record.Filter, string){
	"country":         func(f *record.Filter, v string) { f.Country = v },
	"segment":         func(f *record.Filter, v string) { f.Segment = v },
	"instrument_type": func(f *record.Filter, v string) { f.InstrumentType = v },
	"type":            func(f *record.Filter, v string) { f.Type = v },
	"status":          func(f *record.Filter, v string) { f.Status = v },
	"level":           func(f *record.Filter, v string) { f.Level = v },
	"language":        func(f *record.Filter, v string) { f.Language = v },
	"person_id":       func(f *record.Filter, v string) { f.PersonID = v },
	"entity_id":       func(f *record.Filter, v string) { f.EntityID = v },
	"from_type":       func(f *record.Filter, v string) { f.FromType = v },
	"from_id":         func(f *record.Filter, v string) { f.FromID = v },
	"to_type":         func(f *record.Filter, v string) { f.ToType = v },
	"to_id":           func(f *record.Filter, v string) { f.ToID = v },
	"relation":        func(f *record.Filter, v string) { f.Relation = v },
	"q":               func(f *record.Filter, v string) { f.Text = v },
}

// ParseFilter turns list query parameters into a Filter. Empty values are
// treated as absent. Malformed dates or limits yield a *ValidationError.
func ParseFilter(values url.Values) (record.Filter, error) {
	var f record.Filter
	for name, set := range stringParams {
		if v := values.Get(name); v != "" {
			set(&f, v)
		}
	}

	var err error
	if f.After, err = parseDateParam(values, "after"); err != nil {
		return record.Filter{}, err
	}
	if f.Before, err = parseDateParam(values, "before"); err != nil {
		return record.Filter{}, err
	}

	if raw := values.Get("limit"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 || n > MaxLimit {
			return record.Filter{}, &ValidationError{
				Field:  "limit",
				Reason: "must be an integer between 1 and " + strconv.Itoa(MaxLimit),
			}
		}
		f.Limit = n
	}
	return f, nil
}

func parseDateParam(values url.Values, name string) (*record.Date, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := record.ParseDate(raw)
	if err != nil {
		return nil, &ValidationError{Field: name, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return &d, nil
}
