package store

import (
	"context"

	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/search"
)

type companyStore struct {
	queries *sqlc.Queries
}

func newCompanyStore(queries *sqlc.Queries) CompanyStore {
	return &companyStore{queries: queries}
}

func (s *companyStore) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	row, err := s.queries.GetCompany(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toCompanyModel(row), nil
}

func (s *companyStore) GetBySlug(ctx context.Context, slug string) (*model.Company, error) {
	row, err := s.queries.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	return toCompanyModel(row), nil
}

func (s *companyStore) GetByOrganizationID(ctx context.Context, workosOrgID string) (*model.Company, error) {
	row, err := s.queries.GetCompanyByWorkOSOrganizationID(ctx, &workosOrgID)
	if err != nil {
		return nil, notFound(err)
	}
	return toCompanyModel(row), nil
}

func (s *companyStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.queries.CompanySlugExists(ctx, slug)
}

func (s *companyStore) Create(ctx context.Context, c *model.Company) error {
	fields := search.CompanyFields(c)
	row, err := s.queries.CreateCompany(ctx, sqlc.CreateCompanyParams{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		DescriptionEn:  c.DescriptionEN,
		DescriptionFr:  c.DescriptionFR,
		Categories:     nonNil(c.Categories),
		ServiceAreas:   nonNil(c.ServiceAreas),
		Address:        c.Address,
		City:           c.City,
		Region:         c.Region,
		PostalCode:     c.PostalCode,
		Phone:          c.Phone,
		Email:          c.Email,
		Website:        c.Website,
		IsVerified:     c.IsVerified,
		IsFeatured:     c.IsFeatured,
		SearchName:     fields.Name,
		SearchDocument: fields.Document,
	})
	if err != nil {
		return err
	}
	*c = *toCompanyModel(row)
	return nil
}

func (s *companyStore) Update(ctx context.Context, c *model.Company) error {
	fields := search.CompanyFields(c)
	row, err := s.queries.UpdateCompany(ctx, sqlc.UpdateCompanyParams{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		DescriptionEn:  c.DescriptionEN,
		DescriptionFr:  c.DescriptionFR,
		Categories:     nonNil(c.Categories),
		ServiceAreas:   nonNil(c.ServiceAreas),
		Address:        c.Address,
		City:           c.City,
		Region:         c.Region,
		PostalCode:     c.PostalCode,
		Phone:          c.Phone,
		Email:          c.Email,
		Website:        c.Website,
		IsVerified:     c.IsVerified,
		IsFeatured:     c.IsFeatured,
		SearchName:     fields.Name,
		SearchDocument: fields.Document,
	})
	if err != nil {
		return notFound(err)
	}
	*c = *toCompanyModel(row)
	return nil
}

func (s *companyStore) SetOrganizationID(ctx context.Context, id int64, workosOrgID string) (*model.Company, error) {
	row, err := s.queries.SetCompanyOrganizationID(ctx, sqlc.SetCompanyOrganizationIDParams{
		ID:                   id,
		WorkosOrganizationID: &workosOrgID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toCompanyModel(row), nil
}

func (s *companyStore) MarkClaimed(ctx context.Context, id int64, workosOrgID string) (*model.Company, error) {
	row, err := s.queries.MarkCompanyClaimed(ctx, sqlc.MarkCompanyClaimedParams{
		ID:                   id,
		WorkosOrganizationID: &workosOrgID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toCompanyModel(row), nil
}

func (s *companyStore) SoftDelete(ctx context.Context, id int64) error {
	n, err := s.queries.SoftDeleteCompany(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *companyStore) ListAfter(ctx context.Context, afterID int64, limit int32) ([]model.Company, error) {
	rows, err := s.queries.ListCompaniesAfter(ctx, sqlc.ListCompaniesAfterParams{
		ID:    afterID,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Company, len(rows))
	for i, row := range rows {
		result[i] = *toCompanyModel(row)
	}
	return result, nil
}

func (s *companyStore) GetByIDs(ctx context.Context, ids []int64) ([]model.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.queries.ListCompaniesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]model.Company, len(rows))
	for i, row := range rows {
		result[i] = *toCompanyModel(row)
	}
	return result, nil
}

func (s *companyStore) Search(ctx context.Context, f CompanyFilter) ([]model.CompanyMatch, error) {
	rows, err := s.queries.SearchCompanies(ctx, sqlc.SearchCompaniesParams{
		TsQuery:      ptrIfNotEmpty(f.TSQuery),
		Region:       ptrIfNotEmpty(f.Region),
		Category:     ptrIfNotEmpty(f.Category),
		VerifiedOnly: f.VerifiedOnly,
		Sort:         string(f.Sort),
		Limit:        f.Limit,
		Offset:       f.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.CompanyMatch, len(rows))
	for i, row := range rows {
		result[i] = model.CompanyMatch{
			Company: *toCompanyModel(sqlc.Company{
				ID:                   row.ID,
				Name:                 row.Name,
				Slug:                 row.Slug,
				DescriptionEn:        row.DescriptionEn,
				DescriptionFr:        row.DescriptionFr,
				Categories:           row.Categories,
				ServiceAreas:         row.ServiceAreas,
				Address:              row.Address,
				City:                 row.City,
				Region:               row.Region,
				PostalCode:           row.PostalCode,
				Phone:                row.Phone,
				Email:                row.Email,
				Website:              row.Website,
				IsVerified:           row.IsVerified,
				IsFeatured:           row.IsFeatured,
				IsClaimed:            row.IsClaimed,
				WorkosOrganizationID: row.WorkosOrganizationID,
				IsDeleted:            row.IsDeleted,
				CreatedAt:            row.CreatedAt,
				UpdatedAt:            row.UpdatedAt,
			}),
			Rank: row.Rank,
		}
	}
	return result, nil
}

func (s *companyStore) Count(ctx context.Context, f CompanyFilter) (int64, error) {
	return s.queries.CountSearchCompanies(ctx, sqlc.CountSearchCompaniesParams{
		TsQuery:      ptrIfNotEmpty(f.TSQuery),
		Region:       ptrIfNotEmpty(f.Region),
		Category:     ptrIfNotEmpty(f.Category),
		VerifiedOnly: f.VerifiedOnly,
	})
}

func (s *companyStore) RegionFacets(ctx context.Context, f CompanyFilter) ([]model.FacetCount, error) {
	rows, err := s.queries.RegionFacets(ctx, sqlc.RegionFacetsParams{
		TsQuery:      ptrIfNotEmpty(f.TSQuery),
		Category:     ptrIfNotEmpty(f.Category),
		VerifiedOnly: f.VerifiedOnly,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.FacetCount, len(rows))
	for i, row := range rows {
		result[i] = model.FacetCount{Value: row.Value, Count: row.Count}
	}
	return result, nil
}

func (s *companyStore) CategoryFacets(ctx context.Context, f CompanyFilter) ([]model.FacetCount, error) {
	rows, err := s.queries.CategoryFacets(ctx, sqlc.CategoryFacetsParams{
		TsQuery:      ptrIfNotEmpty(f.TSQuery),
		Region:       ptrIfNotEmpty(f.Region),
		VerifiedOnly: f.VerifiedOnly,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.FacetCount, len(rows))
	for i, row := range rows {
		result[i] = model.FacetCount{Value: row.Value, Count: row.Count}
	}
	return result, nil
}

func toCompanyModel(row sqlc.Company) *model.Company {
	return &model.Company{
		ID:                   row.ID,
		Name:                 row.Name,
		Slug:                 row.Slug,
		DescriptionEN:        row.DescriptionEn,
		DescriptionFR:        row.DescriptionFr,
		Categories:           nonNil(row.Categories),
		ServiceAreas:         nonNil(row.ServiceAreas),
		Address:              row.Address,
		City:                 row.City,
		Region:               row.Region,
		PostalCode:           row.PostalCode,
		Phone:                row.Phone,
		Email:                row.Email,
		Website:              row.Website,
		IsVerified:           row.IsVerified,
		IsFeatured:           row.IsFeatured,
		IsClaimed:            row.IsClaimed,
		WorkOSOrganizationID: row.WorkosOrganizationID,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
		IsDeleted:            row.IsDeleted,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
