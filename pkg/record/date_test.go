package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var b Budget
	err := json.Unmarshal([]byte(`{"id":"b1","date":"2025-04-12","amount_original":5}`), &b)
	require.NoError(t, err)
	require.NotNil(t, b.Date)
	assert.Equal(t, 2025, b.Date.Year())
	assert.Equal(t, time.April, b.Date.Month())
	assert.Equal(t, 12, b.Date.Day())

	out, err := json.Marshal(b.Date)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-12"`, string(out))
}

func TestDateRejectsNonCalendarInput(t *testing.T) {
	inputs := []string{
		`"2025-13-01"`,
		`"12/04/2025"`,
		`"2025-04-12T10:00:00Z"`,
		`20250412`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(in), &d)
			var dateErr *DateError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, in, dateErr.Value)
		})
	}
}

func TestNullDateStaysNil(t *testing.T) {
	var li LegalInstrument
	require.NoError(t, json.Unmarshal([]byte(`{"adoption_date":null}`), &li))
	assert.Nil(t, li.AdoptionDate)
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2025-06-01", d.String())
	assert.True(t, d.Equal(MustDate("2025-06-01").Time))
}
