package record

// Filter carries the list predicates accepted by the query gateway. Each
// collection honours the subset that applies to it and ignores the rest.
type Filter struct {
	// Country is matched loosely (substring of the serialised list) on
	// collections with a countries_involved list, exactly on country_id
	// everywhere else.
	Country        string
	Segment        string
	InstrumentType string
	Type           string
	Status         string
	Level          string
	Language       string
	PersonID       string
	EntityID       string
	FromType       string
	FromID         string
	ToType         string
	ToID           string
	Relation       string

	// After is an inclusive lower bound and Before an exclusive upper bound
	// on the collection's primary date.
	After  *Date
	Before *Date

	// Text restricts results to records whose title, purpose or summaries
	// contain it, case-insensitively.
	Text string

	Limit int
}
