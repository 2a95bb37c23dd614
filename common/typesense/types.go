package typesense

// CompanyDocument is the Typesense representation of a directory company.
// Text fields hold the same folded text that PostgreSQL indexes.
type CompanyDocument struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	NameSort       string   `json:"name_sort"`
	SearchName     string   `json:"search_name"`
	SearchDocument string   `json:"search_document"`
	Region         string   `json:"region"`
	Categories     []string `json:"categories"`
	IsVerified     bool     `json:"is_verified"`
	IsFeatured     bool     `json:"is_featured"`
	// Boost folds featured/verified into one sortable value (featured=2, verified=1).
	Boost     int32 `json:"boost"`
	CreatedAt int64 `json:"created_at"`
}

type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortName      SortOrder = "name"
	SortNewest    SortOrder = "newest"
)

// SearchRequest mirrors the directory search parameters. An empty Query
// matches every document.
type SearchRequest struct {
	Query        string
	Region       string
	Category     string
	VerifiedOnly bool
	Sort         SortOrder
	Page         int
	PerPage      int
	// FacetBy requests counts for one field ("region" or "categories") and
	// suppresses hits.
	FacetBy string
}

type Hit struct {
	ID        string
	TextMatch int64
}

type FacetValue struct {
	Value string
	Count int64
}

type SearchResult struct {
	Found  int64
	Hits   []Hit
	Facets []FacetValue
}

const (
	FacetRegion     = "region"
	FacetCategories = "categories"
)
