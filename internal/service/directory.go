package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/search"
	"bizdir.app/directory/internal/store"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*per_page well inside an int32 OFFSET.
	MaxPage = 10000
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrInvalidSort     = errors.New("invalid sort order")
	ErrPageOutOfRange  = errors.New("page out of range")
)

type SearchParams struct {
	Query        string
	Region       string
	Category     string
	VerifiedOnly bool
	Sort         model.SearchSort
	Page         int
	PerPage      int
}

type Facets struct {
	Regions    []model.FacetCount `json:"regions"`
	Categories []model.FacetCount `json:"categories"`
}

type SearchResult struct {
	Matches []model.CompanyMatch
	Total   int64
	Page    int
	PerPage int
	Facets  Facets
	Backend string
}

type DirectoryService interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetBySlug(ctx context.Context, slug string) (*model.Company, error)
	ListCategories(ctx context.Context) ([]model.FacetCount, error)
	ListRegions(ctx context.Context) ([]model.FacetCount, error)
}

type directoryService struct {
	companies store.CompanyStore
	primary   index.CompanyIndex
	fallback  index.CompanyIndex
	metrics   *metrics.Metrics
}

// NewDirectoryService searches primary and retries on fallback when primary
// fails. primary may be nil, in which case fallback serves every search.
func NewDirectoryService(companies store.CompanyStore, primary, fallback index.CompanyIndex, m *metrics.Metrics) DirectoryService {
	if primary == nil {
		primary = fallback
	}
	return &directoryService{
		companies: companies,
		primary:   primary,
		fallback:  fallback,
		metrics:   m,
	}
}

func (s *directoryService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Sort == "" {
		params.Sort = model.SearchSortRelevance
	}
	if !params.Sort.Valid() {
		return nil, ErrInvalidSort
	}
	if params.Page > MaxPage {
		return nil, ErrPageOutOfRange
	}
	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.PerPage <= 0:
		params.PerPage = DefaultPerPage
	case params.PerPage > MaxPerPage:
		params.PerPage = MaxPerPage
	}

	q := index.Query{
		Text:         search.Parse(params.Query),
		Region:       strings.TrimSpace(params.Region),
		Category:     normalizeTag(params.Category),
		VerifiedOnly: params.VerifiedOnly,
		Sort:         params.Sort,
		Limit:        params.PerPage,
		Offset:       (params.Page - 1) * params.PerPage,
	}

	res, err := s.searchWith(ctx, s.primary, q)
	if err != nil && s.fallback != nil && s.primary != s.fallback {
		slog.WarnContext(ctx, "search backend failed, falling back",
			"backend", s.primary.Backend(),
			"fallback", s.fallback.Backend(),
			"error", err)
		s.metrics.IncrementSearchFallback()
		res, err = s.searchWith(ctx, s.fallback, q)
	}
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}

	res.Page = params.Page
	res.PerPage = params.PerPage
	return res, nil
}

func (s *directoryService) searchWith(ctx context.Context, idx index.CompanyIndex, q index.Query) (*SearchResult, error) {
	span := logger.StartSpan(ctx, "directory.search", trace.WithAttributes(
		attribute.String("search.backend", idx.Backend()),
		attribute.Int("search.offset", q.Offset),
	))
	start := time.Now()
	result, err := s.runSearch(span.Context(), idx, q)
	s.metrics.ObserveSearch(idx.Backend(), start)
	if result != nil {
		span.SetAttributes(attribute.Int64("search.total", result.Total))
	}
	span.Finish(err)
	return result, err
}

func (s *directoryService) runSearch(ctx context.Context, idx index.CompanyIndex, q index.Query) (*SearchResult, error) {

	var (
		page    *index.Page
		regions []model.FacetCount
		cats    []model.FacetCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = idx.Search(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		regions, err = idx.RegionFacets(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = idx.CategoryFacets(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SearchResult{
		Matches: page.Matches,
		Total:   page.Total,
		Facets:  Facets{Regions: regions, Categories: cats},
		Backend: idx.Backend(),
	}, nil
}

func (s *directoryService) GetBySlug(ctx context.Context, slug string) (*model.Company, error) {
	company, err := s.companies.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return company, nil
}

func (s *directoryService) ListCategories(ctx context.Context) ([]model.FacetCount, error) {
	facets, err := s.companies.CategoryFacets(ctx, store.CompanyFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return facets, nil
}

func (s *directoryService) ListRegions(ctx context.Context) ([]model.FacetCount, error) {
	facets, err := s.companies.RegionFacets(ctx, store.CompanyFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	return facets, nil
}
