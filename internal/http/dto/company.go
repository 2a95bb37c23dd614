package dto

import (
	"time"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

type SearchCompaniesQuery struct {
	Q            string `form:"q" binding:"max=200"`
	Region       string `form:"region" binding:"max=100"`
	Category     string `form:"category" binding:"max=100"`
	VerifiedOnly bool   `form:"verified_only"`
	Sort         string `form:"sort" binding:"omitempty,oneof=relevance name newest"`
	Page         int    `form:"page" binding:"omitempty,min=1,max=10000"`
	PerPage      int    `form:"per_page" binding:"omitempty,min=1"`
	Lang         string `form:"lang"`
}

func (q SearchCompaniesQuery) Params() service.SearchParams {
	return service.SearchParams{
		Query:        q.Q,
		Region:       q.Region,
		Category:     q.Category,
		VerifiedOnly: q.VerifiedOnly,
		Sort:         model.SearchSort(q.Sort),
		Page:         q.Page,
		PerPage:      q.PerPage,
	}
}

// CompanyResponse is the public view of a company. Description is the
// requested language with the other language as fallback.
type CompanyResponse struct {
	ID            int64     `json:"id,string"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	DescriptionEN string    `json:"description_en"`
	DescriptionFR string    `json:"description_fr"`
	Categories    []string  `json:"categories"`
	ServiceAreas  []string  `json:"service_areas"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Region        string    `json:"region"`
	PostalCode    string    `json:"postal_code"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	IsVerified    bool      `json:"is_verified"`
	IsFeatured    bool      `json:"is_featured"`
	IsClaimed     bool      `json:"is_claimed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToCompanyResponse(c *model.Company, lang string) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description(lang),
		DescriptionEN: c.DescriptionEN,
		DescriptionFR: c.DescriptionFR,
		Categories:    nonNil(c.Categories),
		ServiceAreas:  nonNil(c.ServiceAreas),
		Address:       c.Address,
		City:          c.City,
		Region:        c.Region,
		PostalCode:    c.PostalCode,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		IsVerified:    c.IsVerified,
		IsFeatured:    c.IsFeatured,
		IsClaimed:     c.IsClaimed,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type SearchHit struct {
	CompanyResponse
	Score float32 `json:"score"`
}

type SearchResponse struct {
	Results    []SearchHit    `json:"results"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int64          `json:"total_pages"`
	Facets     service.Facets `json:"facets"`
	Backend    string         `json:"backend"`
	Lang       string         `json:"lang"`
}

func ToSearchResponse(res *service.SearchResult, lang string) SearchResponse {
	hits := make([]SearchHit, len(res.Matches))
	for i := range res.Matches {
		hits[i] = SearchHit{
			CompanyResponse: ToCompanyResponse(&res.Matches[i].Company, lang),
			Score:           res.Matches[i].Rank,
		}
	}

	var pages int64
	if res.PerPage > 0 {
		pages = (res.Total + int64(res.PerPage) - 1) / int64(res.PerPage)
	}

	facets := res.Facets
	if facets.Regions == nil {
		facets.Regions = []model.FacetCount{}
	}
	if facets.Categories == nil {
		facets.Categories = []model.FacetCount{}
	}

	return SearchResponse{
		Results:    hits,
		Total:      res.Total,
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalPages: pages,
		Facets:     facets,
		Backend:    res.Backend,
		Lang:       lang,
	}
}

type FacetListResponse struct {
	Items []model.FacetCount `json:"items"`
}

func ToFacetListResponse(items []model.FacetCount) FacetListResponse {
	if items == nil {
		items = []model.FacetCount{}
	}
	return FacetListResponse{Items: items}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
