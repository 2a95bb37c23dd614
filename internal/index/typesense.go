package index

import (
	"context"
	"fmt"
	"strconv"

	"bizdir.app/directory/common/typesense"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/search"
	"bizdir.app/directory/internal/store"
)

type typesenseIndex struct {
	client    typesense.Client
	companies store.CompanyStore
}

// NewTypesense searches Typesense and hydrates hits from the database so
// results always reflect committed rows.
func NewTypesense(client typesense.Client, companies store.CompanyStore) CompanyIndex {
	return &typesenseIndex{client: client, companies: companies}
}

func (t *typesenseIndex) Backend() string {
	return BackendTypesense
}

func (t *typesenseIndex) Search(ctx context.Context, q Query) (*Page, error) {
	req := toSearchRequest(q)
	res, err := t.client.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits))
	scores := make(map[int64]int64, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		scores[id] = h.TextMatch
	}

	companies, err := t.companies.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating search hits: %w", err)
	}
	byID := make(map[int64]model.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	matches := make([]model.CompanyMatch, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			// deleted since it was indexed
			continue
		}
		matches = append(matches, model.CompanyMatch{Company: c, Rank: float32(scores[id])})
	}

	return &Page{Matches: matches, Total: res.Found}, nil
}

func (t *typesenseIndex) RegionFacets(ctx context.Context, q Query) ([]model.FacetCount, error) {
	return t.facets(ctx, q, typesense.FacetRegion)
}

func (t *typesenseIndex) CategoryFacets(ctx context.Context, q Query) ([]model.FacetCount, error) {
	return t.facets(ctx, q, typesense.FacetCategories)
}

func (t *typesenseIndex) facets(ctx context.Context, q Query, field string) ([]model.FacetCount, error) {
	req := toSearchRequest(q)
	req.FacetBy = field
	res, err := t.client.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]model.FacetCount, 0, len(res.Facets))
	for _, f := range res.Facets {
		if f.Value == "" {
			continue
		}
		out = append(out, model.FacetCount{Value: f.Value, Count: f.Count})
	}
	return out, nil
}

func toSearchRequest(q Query) typesense.SearchRequest {
	page := 1
	if q.Limit > 0 {
		page = q.Offset/q.Limit + 1
	}
	return typesense.SearchRequest{
		Query:        q.Text.Text(),
		Region:       q.Region,
		Category:     q.Category,
		VerifiedOnly: q.VerifiedOnly,
		Sort:         typesense.SortOrder(q.Sort),
		Page:         page,
		PerPage:      q.Limit,
	}
}

type typesenseIndexer struct {
	client typesense.Client
}

func NewTypesenseIndexer(client typesense.Client) Indexer {
	return &typesenseIndexer{client: client}
}

func (i *typesenseIndexer) Enabled() bool {
	return true
}

func (i *typesenseIndexer) EnsureSchema(ctx context.Context) error {
	return i.client.EnsureCollection(ctx)
}

func (i *typesenseIndexer) Index(ctx context.Context, company *model.Company) error {
	if company.IsDeleted {
		return i.Remove(ctx, company.ID)
	}
	return i.client.Upsert(ctx, Document(company))
}

func (i *typesenseIndexer) Remove(ctx context.Context, companyID int64) error {
	return i.client.Delete(ctx, strconv.FormatInt(companyID, 10))
}

// Document converts a company into its Typesense document.
func Document(c *model.Company) typesense.CompanyDocument {
	fields := search.CompanyFields(c)
	var boost int32
	if c.IsFeatured {
		boost += 2
	}
	if c.IsVerified {
		boost++
	}
	categories := c.Categories
	if categories == nil {
		categories = []string{}
	}
	return typesense.CompanyDocument{
		ID:             strconv.FormatInt(c.ID, 10),
		Name:           c.Name,
		NameSort:       fields.Name,
		SearchName:     fields.Name,
		SearchDocument: fields.Document,
		Region:         c.Region,
		Categories:     categories,
		IsVerified:     c.IsVerified,
		IsFeatured:     c.IsFeatured,
		Boost:          boost,
		CreatedAt:      c.CreatedAt.Unix(),
	}
}

type noopIndexer struct{}

// NewNoopIndexer is used when no external index is configured; PostgreSQL
// full-text search needs no separate indexing step.
func NewNoopIndexer() Indexer {
	return noopIndexer{}
}

func (noopIndexer) Enabled() bool                               { return false }
func (noopIndexer) EnsureSchema(context.Context) error          { return nil }
func (noopIndexer) Index(context.Context, *model.Company) error { return nil }
func (noopIndexer) Remove(context.Context, int64) error         { return nil }
