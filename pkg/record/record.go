// Package record holds the plain data types of the intelligence catalog.
//
// Every record type is its own collection keyed by a caller-assigned id.
// The same struct is used for the inbound payload and the stored row, so
// struct tags carry both the JSON shape and the validation rules.
package record

import "time"

// Record is implemented by every collection type.
type Record interface {
	// RecordID returns the caller-assigned primary key.
	RecordID() string
	// Normalize prepares a decoded payload for storage: empty lists instead
	// of nil and free text stripped of bytes PostgreSQL rejects.
	Normalize()
}

// Source is the evidentiary origin of other records. Sources are never
// updated once captured.
type Source struct {
	ID         string     `json:"id" validate:"required"`
	URL        string     `json:"url" validate:"required"`
	Publisher  string     `json:"publisher" validate:"required"`
	Type       *string    `json:"type" validate:"omitempty,oneof=gov IFI media think_tank meeting_notes other"`
	Language   *string    `json:"language" validate:"omitempty,max=8"`
	CapturedAt *time.Time `json:"captured_at"`
}

// Entity is an organisation.
type Entity struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=gov SOE private IFI NGO other"`
	CountryID   string  `json:"country_id" validate:"required,len=2"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

type Person struct {
	ID        string  `json:"id" validate:"required"`
	FullName  string  `json:"full_name" validate:"required"`
	RoleTitle *string `json:"role_title"`
	EntityID  *string `json:"entity_id"`
	CountryID *string `json:"country_id" validate:"omitempty,len=2"`
	BioShort  *string `json:"bio_short"`
}

// Project is an infrastructure initiative on the corridor.
type Project struct {
	ID                string   `json:"id" validate:"required"`
	Name              string   `json:"name" validate:"required"`
	Segment           string   `json:"segment" validate:"required,oneof=rail port energy data customs"`
	CorridorSection   *string  `json:"corridor_section"`
	CountriesInvolved []string `json:"countries_involved"`
	Status            *string  `json:"status" validate:"omitempty,oneof=announced planned under_construction operational cancelled"`
	StartDate         *Date    `json:"start_date"`
	EndDateEst        *Date    `json:"end_date_est"`
}

// Budget is a financial allocation. Amounts are kept in the original
// currency with optional EUR and USD conversions.
type Budget struct {
	ID                string    `json:"id" validate:"required"`
	ProjectID         *string   `json:"project_id"`
	EntityID          *string   `json:"entity_id"`
	AmountOriginal    *float64  `json:"amount_original" validate:"required"`
	Currency          string    `json:"currency" validate:"required,max=8"`
	AmountEUR         *float64  `json:"amount_eur"`
	AmountUSD         *float64  `json:"amount_usd"`
	Date              *Date     `json:"date" validate:"required"`
	Purpose           *string   `json:"purpose"`
	CountriesInvolved []string  `json:"countries_involved"`
	Segment           string    `json:"segment" validate:"required,oneof=rail port energy data customs"`
	SourceID          string    `json:"source_id" validate:"required"`
	OriginalLang      *string   `json:"original_lang" validate:"omitempty,max=8"`
	SummaryFR         *string   `json:"summary_fr"`
	SummaryEN         *string   `json:"summary_en"`
	SummaryAR         *string   `json:"summary_ar"`
	CredibilityScore  *float64  `json:"credibility_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Statement is a quoted remark attributed to a person or an entity.
type Statement struct {
	ID                string         `json:"id" validate:"required"`
	PersonID          *string        `json:"person_id"`
	EntityID          *string        `json:"entity_id"`
	Date              *Date          `json:"date" validate:"required"`
	Language          *string        `json:"language" validate:"omitempty,max=8"`
	Quote             string         `json:"quote" validate:"required"`
	SummaryFR         *string        `json:"summary_fr"`
	SummaryEN         *string        `json:"summary_en"`
	SummaryAR         *string        `json:"summary_ar"`
	StanceTag         map[string]any `json:"stance_tag"`
	CountriesInvolved []string       `json:"countries_involved"`
	SourceID          string         `json:"source_id" validate:"required"`
	CredibilityScore  *float64       `json:"credibility_score"`
}

type Event struct {
	ID                string   `json:"id" validate:"required"`
	Title             string   `json:"title" validate:"required"`
	StartDate         *Date    `json:"start_date" validate:"required"`
	EndDate           *Date    `json:"end_date"`
	Location          *string  `json:"location"`
	CountriesInvolved []string `json:"countries_involved"`
	Speakers          []string `json:"speakers"`
	Links             []string `json:"links"`
	SummaryFR         *string  `json:"summary_fr"`
	SummaryEN         *string  `json:"summary_en"`
	SummaryAR         *string  `json:"summary_ar"`
	SourceID          string   `json:"source_id" validate:"required"`
	CredibilityScore  *float64 `json:"credibility_score"`
}

type News struct {
	ID               string   `json:"id" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	Outlet           string   `json:"outlet" validate:"required"`
	Date             *Date    `json:"date" validate:"required"`
	Language         *string  `json:"language" validate:"omitempty,max=8"`
	SummaryFR        *string  `json:"summary_fr"`
	SummaryEN        *string  `json:"summary_en"`
	SummaryAR        *string  `json:"summary_ar"`
	Tags             []string `json:"tags"`
	SourceID         string   `json:"source_id" validate:"required"`
	CredibilityScore *float64 `json:"credibility_score"`
}

// Relation is a labelled directed edge between two graph nodes. Nodes are
// people, entities or projects; no uniqueness or acyclicity is implied.
type Relation struct {
	ID       string   `json:"id" validate:"required"`
	FromType string   `json:"from_type" validate:"required,oneof=person entity project"`
	FromID   string   `json:"from_id" validate:"required"`
	ToType   string   `json:"to_type" validate:"required,oneof=person entity project"`
	ToID     string   `json:"to_id" validate:"required"`
	Relation string   `json:"relation" validate:"required"`
	Weight   *float64 `json:"weight"`
}

type Jurisdiction struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	CountryID string `json:"country_id" validate:"required,len=2"`
	Level     string `json:"level" validate:"required,oneof=supranational national state_province local"`
}

// LegalInstrument is a law, decree, regulation, policy, MoU or
// parliamentary question.
type LegalInstrument struct {
	ID               string   `json:"id" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	InstrumentType   string   `json:"instrument_type" validate:"required,oneof=law decree regulation policy mou question other"`
	Number           *string  `json:"number"`
	Status           *string  `json:"status" validate:"omitempty,oneof=draft proposed adopted enacted effective repealed"`
	AdoptionDate     *Date    `json:"adoption_date"`
	EffectiveDate    *Date    `json:"effective_date"`
	CountryID        string   `json:"country_id" validate:"required,len=2"`
	JurisdictionID   *string  `json:"jurisdiction_id"`
	Segments         []string `json:"segments"`
	RelatedProjects  []string `json:"related_projects"`
	Topics           []string `json:"topics"`
	SourceID         string   `json:"source_id" validate:"required"`
	OriginalLang     *string  `json:"original_lang" validate:"omitempty,max=8"`
	SummaryFR        *string  `json:"summary_fr"`
	SummaryEN        *string  `json:"summary_en"`
	SummaryAR        *string  `json:"summary_ar"`
	CredibilityScore *float64 `json:"credibility_score"`
}

func (r *Source) RecordID() string          { return r.ID }
func (r *Entity) RecordID() string          { return r.ID }
func (r *Person) RecordID() string          { return r.ID }
func (r *Project) RecordID() string         { return r.ID }
func (r *Budget) RecordID() string          { return r.ID }
func (r *Statement) RecordID() string       { return r.ID }
func (r *Event) RecordID() string           { return r.ID }
func (r *News) RecordID() string            { return r.ID }
func (r *Relation) RecordID() string        { return r.ID }
func (r *Jurisdiction) RecordID() string    { return r.ID }
func (r *LegalInstrument) RecordID() string { return r.ID }
