package record

import "strings"

// SanitizeText removes NUL bytes and invalid UTF-8 sequences, both of which
// PostgreSQL refuses in TEXT columns.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

func sanitizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	s := SanitizeText(*value)
	return &s
}

// sanitizeList returns an empty, non-nil list for nil input. Order and
// duplicates are kept as given.
func sanitizeList(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = SanitizeText(v)
	}
	return out
}

func (r *Source) Normalize() {
	r.URL = SanitizeText(r.URL)
	r.Publisher = SanitizeText(r.Publisher)
}

func (r *Entity) Normalize() {
	r.Name = SanitizeText(r.Name)
	r.Website = sanitizePtr(r.Website)
	r.Description = sanitizePtr(r.Description)
}

func (r *Person) Normalize() {
	r.FullName = SanitizeText(r.FullName)
	r.RoleTitle = sanitizePtr(r.RoleTitle)
	r.BioShort = sanitizePtr(r.BioShort)
}

func (r *Project) Normalize() {
	r.Name = SanitizeText(r.Name)
	r.CorridorSection = sanitizePtr(r.CorridorSection)
	r.CountriesInvolved = sanitizeList(r.CountriesInvolved)
}

func (r *Budget) Normalize() {
	r.Purpose = sanitizePtr(r.Purpose)
	r.CountriesInvolved = sanitizeList(r.CountriesInvolved)
	r.SummaryFR = sanitizePtr(r.SummaryFR)
	r.SummaryEN = sanitizePtr(r.SummaryEN)
	r.SummaryAR = sanitizePtr(r.SummaryAR)
}

func (r *Statement) Normalize() {
	r.Quote = SanitizeText(r.Quote)
	r.SummaryFR = sanitizePtr(r.SummaryFR)
	r.SummaryEN = sanitizePtr(r.SummaryEN)
	r.SummaryAR = sanitizePtr(r.SummaryAR)
	r.CountriesInvolved = sanitizeList(r.CountriesInvolved)
}

func (r *Event) Normalize() {
	r.Title = SanitizeText(r.Title)
	r.Location = sanitizePtr(r.Location)
	r.CountriesInvolved = sanitizeList(r.CountriesInvolved)
	r.Speakers = sanitizeList(r.Speakers)
	r.Links = sanitizeList(r.Links)
	r.SummaryFR = sanitizePtr(r.SummaryFR)
	r.SummaryEN = sanitizePtr(r.SummaryEN)
	r.SummaryAR = sanitizePtr(r.SummaryAR)
}

func (r *News) Normalize() {
	r.Title = SanitizeText(r.Title)
	r.Outlet = SanitizeText(r.Outlet)
	r.SummaryFR = sanitizePtr(r.SummaryFR)
	r.SummaryEN = sanitizePtr(r.SummaryEN)
	r.SummaryAR = sanitizePtr(r.SummaryAR)
	r.Tags = sanitizeList(r.Tags)
}

func (r *Relation) Normalize() {
	r.Relation = SanitizeText(r.Relation)
}

func (r *Jurisdiction) Normalize() {
	r.Name = SanitizeText(r.Name)
}

func (r *LegalInstrument) Normalize() {
	r.Title = SanitizeText(r.Title)
	r.Number = sanitizePtr(r.Number)
	r.Segments = sanitizeList(r.Segments)
	r.RelatedProjects = sanitizeList(r.RelatedProjects)
	r.Topics = sanitizeList(r.Topics)
	r.SummaryFR = sanitizePtr(r.SummaryFR)
	r.SummaryEN = sanitizePtr(r.SummaryEN)
	r.SummaryAR = sanitizePtr(r.SummaryAR)
}
