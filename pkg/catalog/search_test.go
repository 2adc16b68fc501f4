package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearch(t *testing.T, c *Catalog) {
	t.Helper()
	mustUpsert(t, c, Budgets, budgetJSON("bud_old", "2024-01-01"))
	mustUpsert(t, c, Budgets, budgetJSON("bud_new", "2025-01-01"))
	mustUpsert(t, c, News, `{"id":"news_1","title":"Port deal signed","outlet":"Reuters","date":"2025-02-01","source_id":"s"}`)
	mustUpsert(t, c, LegalInstruments, `{"id":"li_1","title":"Customs MoU","instrument_type":"mou","country_id":"IN","source_id":"s"}`)
}

func tags(items []SearchItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Type
	}
	return out
}

func TestSearchBlockOrder(t *testing.T) {
	c := newTestCatalog(t)
	seedSearch(t, c)

	items, err := c.Search(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "budget", "news", "legal"}, tags(items))
	assert.Equal(t, "bud_new", items[0].Record.(interface{ RecordID() string }).RecordID())
}

func TestSearchTypeFilter(t *testing.T) {
	c := newTestCatalog(t)
	seedSearch(t, c)

	items, err := c.Search(context.Background(), "", []string{"legal", "news", "weather"})
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "legal"}, tags(items))

	items, err = c.Search(context.Background(), "", []string{"weather"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchQueryText(t *testing.T) {
	c := newTestCatalog(t)
	seedSearch(t, c)

	items, err := c.Search(context.Background(), "PORT DEAL", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"news"}, tags(items))
}

func TestSearchItemJSON(t *testing.T) {
	c := newTestCatalog(t)
	seedSearch(t, c)

	items, err := c.Search(context.Background(), "", []string{"news"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	raw, err := json.Marshal(items[0])
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(raw, &obj))
	assert.Equal(t, "news", obj["type"])
	assert.Equal(t, "news_1", obj["id"])
	assert.Equal(t, "2025-02-01", obj["date"])
}

func TestSearchBlockLimit(t *testing.T) {
	c := newTestCatalog(t)
	for i := 0; i < SearchBlockLimit+3; i++ {
		mustUpsert(t, c, Budgets, budgetJSON("b"+string(rune('a'+i)), "2025-01-01"))
	}
	items, err := c.Search(context.Background(), "", []string{"budgets"})
	require.NoError(t, err)
	assert.Len(t, items, SearchBlockLimit)
}
