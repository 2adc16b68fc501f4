package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetSchema(t *testing.T) {
	c := newTestCatalog(t)
	s, err := c.Schema(Budgets)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"id", "amount_original", "currency", "date", "segment", "source_id"},
		s.Required)

	segment, ok := s.Properties.Get("segment")
	require.True(t, ok)
	assert.Equal(t, []any{"rail", "port", "energy", "data", "customs"}, segment.Enum)

	date, ok := s.Properties.Get("date")
	require.True(t, ok)
	assert.Equal(t, "date", date.Format)
}

func TestEverySchemaBuilds(t *testing.T) {
	c := newTestCatalog(t)
	for _, name := range c.Collections() {
		s, err := c.Schema(name)
		require.NoError(t, err, name)
		assert.Contains(t, s.Required, "id", name)
	}
}

func TestCountryCodeLength(t *testing.T) {
	c := newTestCatalog(t)
	s, err := c.Schema(LegalInstruments)
	require.NoError(t, err)

	country, ok := s.Properties.Get("country_id")
	require.True(t, ok)
	require.NotNil(t, country.MinLength)
	assert.EqualValues(t, 2, *country.MinLength)
	assert.EqualValues(t, 2, *country.MaxLength)
}
