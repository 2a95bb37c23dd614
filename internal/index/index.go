// Package index answers directory searches from PostgreSQL or Typesense and
// keeps the Typesense collection in sync with the companies table.
package index

import (
	"context"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/search"
)

const (
	BackendPostgres  = "postgres"
	BackendTypesense = "typesense"
)

// Query is a validated directory search.
type Query struct {
	Text         search.Query
	Region       string
	Category     string
	VerifiedOnly bool
	Sort         model.SearchSort
	Limit        int
	Offset       int
}

type Page struct {
	Matches []model.CompanyMatch
	Total   int64
}

// CompanyIndex answers directory searches. Facet methods ignore the filter on
// their own dimension so callers can offer alternatives.
type CompanyIndex interface {
	Backend() string
	Search(ctx context.Context, q Query) (*Page, error)
	RegionFacets(ctx context.Context, q Query) ([]model.FacetCount, error)
	CategoryFacets(ctx context.Context, q Query) ([]model.FacetCount, error)
}

// Indexer keeps an external search index in sync with the database.
type Indexer interface {
	Enabled() bool
	EnsureSchema(ctx context.Context) error
	Index(ctx context.Context, company *model.Company) error
	Remove(ctx context.Context, companyID int64) error
}
