// Package catalog is the service core: it authorises, decodes, validates,
// normalises and upserts payloads, answers filtered list queries and runs
// the cross-collection search. Transports (HTTP, queue, CLI) call into it
// and map its errors to their own status codes.
package catalog

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"

	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"

	"github.com/go-playground/validator"
	"github.com/invopop/jsonschema"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

type Catalog struct {
	apiKey      string
	validate    *validator.Validate
	collections map[string]collection
	stores      *store.Store
}

// New binds every collection of s. apiKey is the shared secret writers
// must present; an empty key rejects every write.
func New(s *store.Store, apiKey string) *Catalog {
	return &Catalog{
		apiKey:   apiKey,
		validate: NewValidator(),
		stores:   s,
		collections: map[string]collection{
			Sources:          bind[record.Source](Sources, s.Sources),
			Entities:         bind[record.Entity](Entities, s.Entities),
			People:           bind[record.Person](People, s.People),
			Projects:         bind[record.Project](Projects, s.Projects),
			Budgets:          bind[record.Budget](Budgets, s.Budgets),
			Statements:       bind[record.Statement](Statements, s.Statements),
			Events:           bind[record.Event](Events, s.Events),
			News:             bind[record.News](News, s.News),
			Relations:        bind[record.Relation](Relations, s.Relations),
			Jurisdictions:    bind[record.Jurisdiction](Jurisdictions, s.Jurisdictions),
			LegalInstruments: bind[record.LegalInstrument](LegalInstruments, s.LegalInstruments),
		},
	}
}

// Collections lists the served collection names in sorted order.
func (c *Catalog) Collections() []string {
	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) lookup(name string) (collection, error) {
	coll, ok := c.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return coll, nil
}

// Authorize compares key with the shared secret in constant time.
func (c *Catalog) Authorize(key string) error {
	if c.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(c.apiKey)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Upsert decodes body as a record of the named collection and writes it,
// replacing any record with the same id. The caller must have authorised
// the request. It returns the record id.
func (c *Catalog) Upsert(ctx context.Context, collection string, body []byte) (string, error) {
	coll, err := c.lookup(collection)
	if err != nil {
		return "", err
	}

	id, err := coll.upsert(ctx, c.validate, body)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			logger.Debug("[Catalog] Rejected payload", "collection", collection, "field", ve.Field, "reason", ve.Reason)
		}
		return "", err
	}

	logger.Info("[Catalog] Upserted record", "collection", collection, "id", id)
	return id, nil
}

// Ingest authorises key and then upserts body. Transports that receive the
// secret alongside the payload use it.
func (c *Catalog) Ingest(ctx context.Context, key, collection string, body []byte) (string, error) {
	if err := c.Authorize(key); err != nil {
		return "", err
	}
	return c.Upsert(ctx, collection, body)
}

// List returns the collection's records matching f in its default order.
// A zero limit means DefaultLimit.
func (c *Catalog) List(ctx context.Context, collection string, f record.Filter) ([]any, error) {
	coll, err := c.lookup(collection)
	if err != nil {
		return nil, err
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		return nil, &ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
	}
	return coll.list(ctx, f)
}

// Get returns one record or an error wrapping store.ErrNotFound.
func (c *Catalog) Get(ctx context.Context, collection, id string) (any, error) {
	coll, err := c.lookup(collection)
	if err != nil {
		return nil, err
	}

	rec, err := coll.get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%s %q: %w", collection, id, err)
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Collection: collection, Err: err}
	}
	return rec, nil
}

// Schema returns the JSON Schema of the collection's payload.
func (c *Catalog) Schema(collection string) (*jsonschema.Schema, error) {
	coll, err := c.lookup(collection)
	if err != nil {
		return nil, err
	}
	return coll.schema(), nil
}
