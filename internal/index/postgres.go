package index

import (
	"context"
	"fmt"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/store"
)

type postgresIndex struct {
	companies store.CompanyStore
}

func NewPostgres(companies store.CompanyStore) CompanyIndex {
	return &postgresIndex{companies: companies}
}

func (p *postgresIndex) Backend() string {
	return BackendPostgres
}

func (p *postgresIndex) Search(ctx context.Context, q Query) (*Page, error) {
	filter := toFilter(q)

	matches, err := p.companies.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}

	total, err := p.companies.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting companies: %w", err)
	}

	return &Page{Matches: matches, Total: total}, nil
}

func (p *postgresIndex) RegionFacets(ctx context.Context, q Query) ([]model.FacetCount, error) {
	return p.companies.RegionFacets(ctx, toFilter(q))
}

func (p *postgresIndex) CategoryFacets(ctx context.Context, q Query) ([]model.FacetCount, error) {
	return p.companies.CategoryFacets(ctx, toFilter(q))
}

func toFilter(q Query) store.CompanyFilter {
	return store.CompanyFilter{
		TSQuery:      q.Text.TSQuery(),
		Region:       q.Region,
		Category:     q.Category,
		VerifiedOnly: q.VerifiedOnly,
		Sort:         q.Sort,
		Limit:        int32(q.Limit),
		Offset:       int32(q.Offset),
	}
}
