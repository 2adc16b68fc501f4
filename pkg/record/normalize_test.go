package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain utf8",
			input: "Règlement d'interopérabilité",
			want:  "Règlement d'interopérabilité",
		},
		{
			name:  "arabic text untouched",
			input: "لائحة قابلية التشغيل",
			want:  "لائحة قابلية التشغيل",
		},
		{
			name:  "contains null byte",
			input: "hel\x00lo",
			want:  "hello",
		},
		{
			name:  "contains invalid utf8",
			input: string([]byte{'a', 0xff, 'b'}),
			want:  "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeText(tt.input)
			if got != tt.want {
				t.Fatalf("unexpected sanitized value: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeFillsEmptyLists(t *testing.T) {
	li := &LegalInstrument{ID: "li_1"}
	li.Normalize()

	require.NotNil(t, li.Segments)
	require.NotNil(t, li.RelatedProjects)
	require.NotNil(t, li.Topics)

	out, err := json.Marshal(li)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []any{}, decoded["segments"])
	assert.Nil(t, decoded["adoption_date"])
}

func TestNormalizeKeepsOrderAndDuplicates(t *testing.T) {
	b := &Budget{CountriesInvolved: []string{"IN", "AE", "IN"}}
	b.Normalize()

	assert.Equal(t, []string{"IN", "AE", "IN"}, b.CountriesInvolved)
}

func TestNormalizeSanitizesOptionalText(t *testing.T) {
	summary := "port\x00 capex"
	n := &News{SummaryEN: &summary}
	n.Normalize()

	require.NotNil(t, n.SummaryEN)
	assert.Equal(t, "port capex", *n.SummaryEN)
	assert.Nil(t, n.SummaryFR)
}
