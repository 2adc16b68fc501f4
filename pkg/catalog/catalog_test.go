package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"
	"github.com/imec-intel/hub/pkg/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "secret"

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(memstore.New(), testKey)
}

func mustUpsert(t *testing.T, c *Catalog, collection, body string) {
	t.Helper()
	_, err := c.Ingest(context.Background(), testKey, collection, []byte(body))
	require.NoError(t, err)
}

func listIDs(t *testing.T, c *Catalog, collection string, f record.Filter) []string {
	t.Helper()
	items, err := c.List(context.Background(), collection, f)
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.(record.Record).RecordID())
	}
	return ids
}

func budgetJSON(id, date string, countries ...string) string {
	payload := map[string]any{
		"id":                 id,
		"amount_original":    500000000,
		"currency":           "USD",
		"date":               date,
		"segment":            "port",
		"source_id":          "src_1",
		"countries_involved": countries,
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestUpsertIsIdempotent(t *testing.T) {
	c := newTestCatalog(t)
	body := budgetJSON("bud_1", "2025-09-01", "AE")

	mustUpsert(t, c, Budgets, body)
	first, err := c.Get(context.Background(), Budgets, "bud_1")
	require.NoError(t, err)

	mustUpsert(t, c, Budgets, body)
	second, err := c.Get(context.Background(), Budgets, "bud_1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"bud_1"}, listIDs(t, c, Budgets, record.Filter{}))
}

func TestUpsertReplacesNotPatches(t *testing.T) {
	c := newTestCatalog(t)
	mustUpsert(t, c, Budgets, `{
		"id": "bud_1", "amount_original": 1, "currency": "EUR", "date": "2025-01-01",
		"segment": "rail", "source_id": "src_1", "purpose": "track renewal",
		"summary_en": "Rail capex", "countries_involved": ["IN", "AE"], "credibility_score": 0.9
	}`)
	mustUpsert(t, c, Budgets, `{
		"id": "bud_1", "amount_original": 2, "currency": "EUR", "date": "2025-01-01",
		"segment": "rail", "source_id": "src_1"
	}`)

	got, err := c.Get(context.Background(), Budgets, "bud_1")
	require.NoError(t, err)
	b := got.(*record.Budget)
	assert.Nil(t, b.Purpose)
	assert.Nil(t, b.SummaryEN)
	assert.Nil(t, b.CredibilityScore)
	assert.Equal(t, []string{}, b.CountriesInvolved)
	assert.Equal(t, 2.0, *b.AmountOriginal)
}

func TestBudgetDateFilters(t *testing.T) {
	c := newTestCatalog(t)
	mustUpsert(t, c, Budgets, budgetJSON("jan", "2025-01-01"))
	mustUpsert(t, c, Budgets, budgetJSON("jun", "2025-06-01"))
	mustUpsert(t, c, Budgets, budgetJSON("dec", "2025-12-01"))

	assert.Equal(t, []string{"dec", "jun"}, listIDs(t, c, Budgets, record.Filter{After: record.MustDate("2025-02-01")}))
	assert.Equal(t, []string{"jan"}, listIDs(t, c, Budgets, record.Filter{Before: record.MustDate("2025-06-01")}))
}

func TestBudgetCountrySubstring(t *testing.T) {
	c := newTestCatalog(t)
	mustUpsert(t, c, Budgets, budgetJSON("bud_1", "2025-01-01", "AE", "IN"))

	assert.Equal(t, []string{"bud_1"}, listIDs(t, c, Budgets, record.Filter{Country: "AE"}))
	assert.Equal(t, []string{"bud_1"}, listIDs(t, c, Budgets, record.Filter{Country: "IN"}))
	assert.Empty(t, listIDs(t, c, Budgets, record.Filter{Country: "SA"}))
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	c := newTestCatalog(t)
	items, err := c.List(context.Background(), Budgets, record.Filter{Segment: "energy"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDefaultLimit(t *testing.T) {
	c := newTestCatalog(t)
	for i := 0; i < DefaultLimit+5; i++ {
		mustUpsert(t, c, Budgets, budgetJSON("b"+string(rune('A'+i/26))+string(rune('a'+i%26)), "2025-01-01"))
	}
	assert.Len(t, listIDs(t, c, Budgets, record.Filter{}), DefaultLimit)
	assert.Len(t, listIDs(t, c, Budgets, record.Filter{Limit: 3}), 3)
}

func TestAuthGateNeverMutates(t *testing.T) {
	c := newTestCatalog(t)
	tests := []struct {
		name string
		key  string
		body string
	}{
		{"valid payload, wrong key", "nope", budgetJSON("bud_1", "2025-01-01")},
		{"valid payload, no key", "", budgetJSON("bud_1", "2025-01-01")},
		{"invalid payload, wrong key", "nope", `{"id": "bud_1"}`},
		{"garbage, wrong key", "nope", `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Ingest(context.Background(), tt.key, Budgets, []byte(tt.body))
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
	assert.Empty(t, listIDs(t, c, Budgets, record.Filter{}))
}

func TestEmptyConfiguredKeyRejectsAll(t *testing.T) {
	c := New(memstore.New(), "")
	assert.ErrorIs(t, c.Authorize(""), ErrUnauthorized)
}

func TestValidationErrors(t *testing.T) {
	c := newTestCatalog(t)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing amount", `{"id":"b","currency":"EUR","date":"2025-01-01","segment":"rail","source_id":"s"}`, "amount_original"},
		{"amount not numeric", `{"id":"b","amount_original":"lots","currency":"EUR","date":"2025-01-01","segment":"rail","source_id":"s"}`, "amount_original"},
		{"missing date", `{"id":"b","amount_original":1,"currency":"EUR","segment":"rail","source_id":"s"}`, "date"},
		{"unknown segment", `{"id":"b","amount_original":1,"currency":"EUR","date":"2025-01-01","segment":"air","source_id":"s"}`, "segment"},
		{"missing source", `{"id":"b","amount_original":1,"currency":"EUR","date":"2025-01-01","segment":"rail"}`, "source_id"},
		{"not an object", `[1,2]`, ""},
		{"malformed", `{"id":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Upsert(context.Background(), Budgets, []byte(tt.body))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Empty(t, listIDs(t, c, Budgets, record.Filter{}))
}

func TestMalformedDateIsValidationError(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Upsert(context.Background(), Budgets, []byte(budgetJSON("b", "12/04/2025")))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date", ve.Field)
	assert.Equal(t, `invalid date "12/04/2025": expected YYYY-MM-DD`, ve.Reason)

	_, err = c.Upsert(context.Background(), LegalInstruments, []byte(`{
		"id": "li_1", "title": "Decree", "instrument_type": "decree", "country_id": "IL",
		"source_id": "src_il", "adoption_date": "2025-04-12", "effective_date": 20250501
	}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "effective_date", ve.Field)
}

func TestTextSanitisedBeforeValidation(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Upsert(context.Background(), LegalInstruments, []byte(`{
		"id": "li_nul", "title": "\u0000", "instrument_type": "law",
		"country_id": "IL", "source_id": "src_il"
	}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Empty(t, listIDs(t, c, LegalInstruments, record.Filter{}))
}

func TestLegalEndToEnd(t *testing.T) {
	c := newTestCatalog(t)
	mustUpsert(t, c, LegalInstruments, `{
		"id": "li_1", "title": "Rail Interoperability Regulation", "instrument_type": "regulation",
		"country_id": "IL", "source_id": "src_il", "status": "adopted", "adoption_date": "2025-04-12",
		"segments": ["rail", "data"], "topics": ["standards", "safety"]
	}`)

	assert.Contains(t, listIDs(t, c, LegalInstruments, record.Filter{After: record.MustDate("2025-01-01")}), "li_1")
	assert.NotContains(t, listIDs(t, c, LegalInstruments, record.Filter{Before: record.MustDate("2025-01-01")}), "li_1")
	assert.Equal(t, []string{"li_1"}, listIDs(t, c, LegalInstruments, record.Filter{Country: "IL", InstrumentType: "regulation"}))
	assert.Empty(t, listIDs(t, c, LegalInstruments, record.Filter{Country: "I"}))

	got, err := c.Get(context.Background(), LegalInstruments, "li_1")
	require.NoError(t, err)
	li := got.(*record.LegalInstrument)
	assert.Equal(t, []string{"rail", "data"}, li.Segments)
	assert.Equal(t, []string{}, li.RelatedProjects)
}

func TestUnknownCollection(t *testing.T) {
	c := newTestCatalog(t)
	_, err := c.List(context.Background(), "weather", record.Filter{})
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = c.Upsert(context.Background(), "weather", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestGetMissing(t *testing.T) {
	c := newTestCatalog(t)
	_, err := c.Get(context.Background(), News, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"country": {"AE"},
		"after":   {"2025-01-01"},
		"limit":   {"10"},
		"q":       {"port"},
		"unknown": {"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "AE", f.Country)
	assert.Equal(t, "2025-01-01", f.After.String())
	assert.Nil(t, f.Before)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, "port", f.Text)

	bad := []url.Values{
		{"after": {"yesterday"}},
		{"before": {"2025-13-01"}},
		{"limit": {"ten"}},
		{"limit": {"0"}},
		{"limit": {"1001"}},
	}
	for _, v := range bad {
		_, err := ParseFilter(v)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "expected validation error for %v", v)
	}
}
