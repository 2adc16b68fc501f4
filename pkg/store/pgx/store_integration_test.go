//go:build integration

package pgx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/imec-intel/hub/pkg/catalog"
	"github.com/imec-intel/hub/pkg/database"
	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testKey = "secret"

var (
	sharedPool     *pgxpool.Pool
	sharedPoolOnce sync.Once
	sharedPoolErr  error
)

// testPool returns a pool on a shared PostgreSQL container with migrations
// applied and every table emptied.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPoolOnce.Do(func() {
		sharedPool, sharedPoolErr = setupPostgres()
	})
	require.NoError(t, sharedPoolErr, "failed to set up test database")

	_, err := sharedPool.Exec(context.Background(), `
		TRUNCATE sources, entities, people, projects, budgets, statements,
		         events, news, relations, jurisdictions, legal_instruments CASCADE`)
	require.NoError(t, err)
	return sharedPool
}

func setupPostgres() (*pgxpool.Pool, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "imec",
			"POSTGRES_USER":     "imec",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	url := fmt.Sprintf("postgres://imec:test_password@%s:%s/imec?sslmode=disable", host, port.Port())
	if err := database.RunMigrations(url); err != nil {
		return nil, err
	}

	return database.NewConnection(ctx, &database.Config{URL: url})
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(NewStore(testPool(t)), testKey)
}

func ingest(t *testing.T, c *catalog.Catalog, collection, body string) {
	t.Helper()
	_, err := c.Ingest(context.Background(), testKey, collection, []byte(body))
	require.NoError(t, err)
}

const source1 = `{"id": "src_1", "url": "https://example.org/oj", "publisher": "Official Journal"}`

func budget(id, date, country string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"amount_original": 500000000,
		"currency": "USD",
		"date": %q,
		"segment": "port",
		"countries_involved": [%q],
		"source_id": "src_1"
	}`, id, date, country)
}

func TestBudgetUpsertKeepsCreatedAt(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	ingest(t, c, catalog.Sources, source1)

	ingest(t, c, catalog.Budgets, budget("bud_1", "2025-09-01", "AE"))
	first, err := c.Get(ctx, catalog.Budgets, "bud_1")
	require.NoError(t, err)

	ingest(t, c, catalog.Budgets, budget("bud_1", "2025-10-01", "SA"))
	second, err := c.Get(ctx, catalog.Budgets, "bud_1")
	require.NoError(t, err)

	b1, b2 := first.(*record.Budget), second.(*record.Budget)
	assert.Equal(t, "2025-10-01", b2.Date.String())
	assert.Equal(t, []string{"SA"}, b2.CountriesInvolved)
	assert.True(t, b1.CreatedAt.Equal(b2.CreatedAt))

	items, err := c.List(ctx, catalog.Budgets, record.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestBudgetFilters(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	ingest(t, c, catalog.Sources, source1)
	ingest(t, c, catalog.Budgets, budget("bud_old", "2024-01-15", "IN"))
	ingest(t, c, catalog.Budgets, budget("bud_mid", "2025-03-01", "UAE"))
	ingest(t, c, catalog.Budgets, budget("bud_new", "2025-09-01", "AE"))

	ids := func(f record.Filter) []string {
		items, err := c.List(ctx, catalog.Budgets, f)
		require.NoError(t, err)
		out := []string{}
		for _, it := range items {
			out = append(out, it.(*record.Budget).ID)
		}
		return out
	}

	after, err := record.ParseDate("2025-01-01")
	require.NoError(t, err)
	before, err := record.ParseDate("2025-09-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"bud_new", "bud_mid", "bud_old"}, ids(record.Filter{}))
	assert.Equal(t, []string{"bud_new", "bud_mid"}, ids(record.Filter{Country: "AE"}))
	assert.Equal(t, []string{"bud_mid"}, ids(record.Filter{After: &after, Before: &before}))
	assert.Equal(t, []string{"bud_new"}, ids(record.Filter{Limit: 1}))
}

func TestSourcesAreInsertIfAbsent(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	ingest(t, c, catalog.Sources, source1)
	ingest(t, c, catalog.Sources, `{"id": "src_1", "url": "https://example.org/other", "publisher": "Someone else"}`)

	got, err := c.Get(ctx, catalog.Sources, "src_1")
	require.NoError(t, err)
	s := got.(*record.Source)
	assert.Equal(t, "https://example.org/oj", s.URL)
	require.NotNil(t, s.CapturedAt)
}

func TestMissingReferenceIsStoreError(t *testing.T) {
	c := newCatalog(t)

	_, err := c.Ingest(context.Background(), testKey, catalog.Budgets, []byte(budget("bud_1", "2025-09-01", "AE")))
	require.Error(t, err)

	var storeErr *catalog.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, catalog.Budgets, storeErr.Collection)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)
}

func TestLegalRoundTripAndSearch(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	ingest(t, c, catalog.Sources, source1)
	ingest(t, c, catalog.LegalInstruments, `{
		"id": "li_1",
		"title": "Rail Interoperability Regulation",
		"instrument_type": "regulation",
		"status": "adopted",
		"adoption_date": "2025-04-12",
		"country_id": "IL",
		"segments": ["rail", "data"],
		"source_id": "src_1",
		"summary_en": "Rail interoperability regulation (Israel).",
		"credibility_score": 0.8
	}`)
	ingest(t, c, catalog.LegalInstruments, `{
		"id": "li_2",
		"title": "Port Concession Decree",
		"instrument_type": "decree",
		"country_id": "IL",
		"source_id": "src_1"
	}`)

	items, err := c.List(ctx, catalog.LegalInstruments, record.Filter{Country: "IL"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "li_1", items[0].(*record.LegalInstrument).ID)
	assert.Equal(t, "li_2", items[1].(*record.LegalInstrument).ID)
	assert.Equal(t, []string{}, items[1].(*record.LegalInstrument).Topics)

	results, err := c.Search(ctx, "interoperability", []string{"legal"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "legal", results[0].Type)
}

func TestGetMissingIsNotFound(t *testing.T) {
	c := newCatalog(t)

	_, err := c.Get(context.Background(), catalog.News, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
