package store

import (
	"context"
	"errors"

	"github.com/imec-intel/hub/pkg/record"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Collection defines the persistence contract shared by every record type.
// Upsert inserts the record or fully replaces the stored row with the same
// id; columns omitted by the caller are cleared, never kept from the prior
// version. List applies the filter fields relevant to the collection and
// returns rows in the collection's default order.
type Collection[T any] interface {
	Upsert(ctx context.Context, rec *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter record.Filter) ([]*T, error)
}

// Store groups one Collection per record type.
type Store struct {
	Sources          Collection[record.Source]
	Entities         Collection[record.Entity]
	People           Collection[record.Person]
	Projects         Collection[record.Project]
	Budgets          Collection[record.Budget]
	Statements       Collection[record.Statement]
	Events           Collection[record.Event]
	News             Collection[record.News]
	Relations        Collection[record.Relation]
	Jurisdictions    Collection[record.Jurisdiction]
	LegalInstruments Collection[record.LegalInstrument]
}
