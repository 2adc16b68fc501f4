package catalog

import (
	"context"
	"encoding/json"

	"github.com/imec-intel/hub/pkg/record"

	"golang.org/x/sync/errgroup"
)

// SearchBlockLimit is the number of most recent records each collection
// contributes to a search.
const SearchBlockLimit = 10

// SearchItem is one search hit. It encodes as the record's own JSON object
// with an added "type" member naming the originating collection.
type SearchItem struct {
	Type   string
	Record any
}

func (i SearchItem) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(i.Record)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(i.Type)
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

type searchBlock struct {
	collection string
	tag        string
	fetch      func(ctx context.Context, f record.Filter) ([]any, error)
}

// Search returns the most recent records of budgets, news and legal
// instruments, concatenated in that order. types restricts the blocks to the
// named collections and unknown names are ignored; no types means all three.
// A non-empty q keeps only records whose text fields contain it.
func (c *Catalog) Search(ctx context.Context, q string, types []string) ([]SearchItem, error) {
	all := []searchBlock{
		{collection: Budgets, tag: "budget", fetch: c.collections[Budgets].list},
		{collection: News, tag: "news", fetch: c.collections[News].list},
		{collection: LegalInstruments, tag: "legal", fetch: c.collections[LegalInstruments].list},
	}

	wanted := map[string]bool{}
	for _, t := range types {
		wanted[t] = true
	}

	blocks := make([]searchBlock, 0, len(all))
	for _, b := range all {
		if len(types) == 0 || wanted[b.collection] {
			blocks = append(blocks, b)
		}
	}

	results := make([][]any, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range blocks {
		g.Go(func() error {
			rows, err := b.fetch(gctx, record.Filter{Text: q, Limit: SearchBlockLimit})
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]SearchItem, 0)
	for i, b := range blocks {
		for _, rec := range results[i] {
			items = append(items, SearchItem{Type: b.tag, Record: rec})
		}
	}
	return items, nil
}
