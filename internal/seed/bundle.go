// Package seed loads record bundles and pushes them into the catalog through
// the HTTP API, the ingest queue or an in-process catalog.
//
// A bundle maps a collection name to a list of payloads:
//
//	sources:
//	  - id: src_ae_oj_20250320
//	    url: https://example.org/oj
//	    publisher: Official Journal
//	budgets:
//	  - id: bud_1
//	    ...
package seed

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/imec-intel/hub/pkg/catalog"

	"gopkg.in/yaml.v3"
)

// applyOrder lists collections so that referenced rows are written before the
// rows that reference them.
var applyOrder = []string{
	catalog.Sources,
	catalog.Jurisdictions,
	catalog.Entities,
	catalog.People,
	catalog.Projects,
	catalog.Budgets,
	catalog.LegalInstruments,
	catalog.Statements,
	catalog.Events,
	catalog.News,
	catalog.Relations,
}

type Bundle map[string][]json.RawMessage

// Collections returns the bundle's collection names in apply order. Names the
// catalog does not know come last, sorted.
func (b Bundle) Collections() []string {
	names := make([]string, 0, len(b))
	for _, name := range applyOrder {
		if _, ok := b[name]; ok {
			names = append(names, name)
		}
	}

	var rest []string
	for name := range b {
		if !slices.Contains(applyOrder, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Len returns the number of payloads in the bundle.
func (b Bundle) Len() int {
	n := 0
	for _, items := range b {
		n += len(items)
	}
	return n
}

// ParseBundle decodes data as YAML when name ends in .yaml or .yml and as JSON
// otherwise.
func ParseBundle(name string, data []byte) (Bundle, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		var b Bundle
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse JSON bundle %s: %w", name, err)
		}
		return b, nil
	}
}

// parseYAML re-encodes the document as JSON. Timestamp-like scalars keep
// their source text, so `date: 2025-09-01` reaches the catalog as
// "2025-09-01" rather than as a midnight timestamp.
func parseYAML(data []byte) (Bundle, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML bundle: %w", err)
	}
	if doc.Kind == 0 {
		return Bundle{}, nil
	}

	v, err := nodeValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML bundle: %w", err)
	}
	if v == nil {
		return Bundle{}, nil
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML bundle: %w", err)
	}
	var b Bundle
	if err := json.Unmarshal(encoded, &b); err != nil {
		return nil, fmt.Errorf("YAML bundle must map collection names to lists: %w", err)
	}
	return b, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
