package catalog

import (
	"context"

	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"

	"github.com/go-playground/validator"
	"github.com/invopop/jsonschema"
)

// Collection names as they appear in URLs and queue messages.
const (
	Sources          = "sources"
	Entities         = "entities"
	People           = "people"
	Projects         = "projects"
	Budgets          = "budgets"
	Statements       = "statements"
	Events           = "events"
	News             = "news"
	Relations        = "relations"
	Jurisdictions    = "jurisdictions"
	LegalInstruments = "legal"
)

type collection interface {
	upsert(ctx context.Context, v *validator.Validate, body []byte) (string, error)
	get(ctx context.Context, id string) (any, error)
	list(ctx context.Context, f record.Filter) ([]any, error)
	schema() *jsonschema.Schema
}

type binding[T any, P interface {
	*T
	record.Record
}] struct {
	name  string
	store store.Collection[T]
}

func bind[T any, P interface {
	*T
	record.Record
}](name string, s store.Collection[T]) collection {
	return &binding[T, P]{name: name, store: s}
}

func (b *binding[T, P]) upsert(ctx context.Context, v *validator.Validate, body []byte) (string, error) {
	rec := P(new(T))
	if err := decode(body, rec); err != nil {
		return "", err
	}
	rec.Normalize()
	if err := check(v, rec); err != nil {
		return "", err
	}

	if err := b.store.Upsert(ctx, (*T)(rec)); err != nil {
		return "", &StoreError{Op: "upsert", Collection: b.name, Err: err}
	}
	return rec.RecordID(), nil
}

func (b *binding[T, P]) get(ctx context.Context, id string) (any, error) {
	rec, err := b.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *binding[T, P]) list(ctx context.Context, f record.Filter) ([]any, error) {
	rows, err := b.store.List(ctx, f)
	if err != nil {
		return nil, &StoreError{Op: "list", Collection: b.name, Err: err}
	}
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

func (b *binding[T, P]) schema() *jsonschema.Schema {
	return reflectSchema(new(T))
}
