package model

import "time"

type Company struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Slug                 string    `json:"slug"`
	DescriptionEN        string    `json:"description_en"`
	DescriptionFR        string    `json:"description_fr"`
	Categories           []string  `json:"categories"`
	ServiceAreas         []string  `json:"service_areas"`
	Address              string    `json:"address"`
	City                 string    `json:"city"`
	Region               string    `json:"region"`
	PostalCode           string    `json:"postal_code"`
	Phone                string    `json:"phone"`
	Email                string    `json:"email"`
	Website              string    `json:"website"`
	IsVerified           bool      `json:"is_verified"`
	IsFeatured           bool      `json:"is_featured"`
	IsClaimed            bool      `json:"is_claimed"`
	WorkOSOrganizationID *string   `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	IsDeleted            bool      `json:"-"`
}

// Description returns the description in lang ("en" or "fr"), falling back to
// the other language when the requested one is empty.
func (c *Company) Description(lang string) string {
	primary, secondary := c.DescriptionEN, c.DescriptionFR
	if lang == LangFR {
		primary, secondary = c.DescriptionFR, c.DescriptionEN
	}
	if primary != "" {
		return primary
	}
	return secondary
}

const (
	LangEN = "en"
	LangFR = "fr"
)

// CompanyMatch is a company returned by a search together with its text score.
type CompanyMatch struct {
	Company Company
	Rank    float32
}

// FacetCount is the number of matching companies sharing one region or category.
type FacetCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type SearchSort string

const (
	SearchSortRelevance SearchSort = "relevance"
	SearchSortName      SearchSort = "name"
	SearchSortNewest    SearchSort = "newest"
)

func (s SearchSort) Valid() bool {
	switch s {
	case SearchSortRelevance, SearchSortName, SearchSortNewest:
		return true
	}
	return false
}
