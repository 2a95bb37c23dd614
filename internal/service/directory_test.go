package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
	"bizdir.app/directory/internal/store"
)

var _ = Describe("DirectoryService", func() {
	var (
		ctx       context.Context
		companies *mockCompanyStore
		primary   *mockIndex
		fallback  *mockIndex
		svc       service.DirectoryService
	)

	BeforeEach(func() {
		ctx = context.Background()
		companies = &mockCompanyStore{}
		primary = &mockIndex{backend: index.BackendTypesense}
		fallback = &mockIndex{backend: index.BackendPostgres}
		svc = service.NewDirectoryService(companies, primary, fallback, nil)
	})

	Describe("Search", func() {
		It("applies paging defaults and returns facets", func() {
			primary.searchFn = func(_ context.Context, q index.Query) (*index.Page, error) {
				Expect(q.Limit).To(Equal(service.DefaultPerPage))
				Expect(q.Offset).To(Equal(0))
				Expect(q.Sort).To(Equal(model.SearchSortRelevance))
				Expect(q.Text.Tokens()).To(Equal([]string{"plumber", "laval"}))
				return &index.Page{
					Matches: []model.CompanyMatch{{Company: model.Company{ID: 1}}},
					Total:   1,
				}, nil
			}
			primary.regionFn = func(_ context.Context, _ index.Query) ([]model.FacetCount, error) {
				return []model.FacetCount{{Value: "QC", Count: 1}}, nil
			}
			primary.categoryFn = func(_ context.Context, _ index.Query) ([]model.FacetCount, error) {
				return []model.FacetCount{{Value: "plumbing", Count: 1}}, nil
			}

			res, err := svc.Search(ctx, service.SearchParams{Query: "Plumber in Laval"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(Equal(int64(1)))
			Expect(res.Page).To(Equal(1))
			Expect(res.PerPage).To(Equal(service.DefaultPerPage))
			Expect(res.Backend).To(Equal(index.BackendTypesense))
			Expect(res.Facets.Regions).To(HaveLen(1))
			Expect(res.Facets.Categories).To(HaveLen(1))
			Expect(fallback.searchCalls).To(BeZero())
		})

		It("caps per page and computes the offset", func() {
			primary.searchFn = func(_ context.Context, q index.Query) (*index.Page, error) {
				Expect(q.Limit).To(Equal(service.MaxPerPage))
				Expect(q.Offset).To(Equal(2 * service.MaxPerPage))
				return &index.Page{}, nil
			}

			res, err := svc.Search(ctx, service.SearchParams{Page: 3, PerPage: 1000})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.PerPage).To(Equal(service.MaxPerPage))
		})

		It("rejects pages whose offset would overflow", func() {
			_, err := svc.Search(ctx, service.SearchParams{Page: 30000000, PerPage: 100})
			Expect(err).To(MatchError(service.ErrPageOutOfRange))
			Expect(primary.searchCalls).To(BeZero())
			Expect(fallback.searchCalls).To(BeZero())
		})

		It("accepts the last allowed page", func() {
			primary.searchFn = func(_ context.Context, q index.Query) (*index.Page, error) {
				Expect(q.Offset).To(Equal((service.MaxPage - 1) * service.MaxPerPage))
				return &index.Page{}, nil
			}

			_, err := svc.Search(ctx, service.SearchParams{Page: service.MaxPage, PerPage: service.MaxPerPage})
			Expect(err).NotTo(HaveOccurred())
		})

		It("folds the category filter the way categories are stored", func() {
			primary.searchFn = func(_ context.Context, q index.Query) (*index.Page, error) {
				Expect(q.Category).To(Equal("plumbing"))
				return &index.Page{}, nil
			}

			_, err := svc.Search(ctx, service.SearchParams{Category: "  Plumbing "})
			Expect(err).NotTo(HaveOccurred())
			Expect(primary.searchCalls).To(Equal(1))
		})

		It("rejects unknown sort orders", func() {
			_, err := svc.Search(ctx, service.SearchParams{Sort: "popularity"})
			Expect(err).To(MatchError(service.ErrInvalidSort))
		})

		It("falls back when the primary backend fails", func() {
			primary.searchFn = func(context.Context, index.Query) (*index.Page, error) {
				return nil, errors.New("typesense unavailable")
			}
			fallback.searchFn = func(context.Context, index.Query) (*index.Page, error) {
				return &index.Page{Total: 4}, nil
			}

			res, err := svc.Search(ctx, service.SearchParams{Query: "electricien"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Backend).To(Equal(index.BackendPostgres))
			Expect(res.Total).To(Equal(int64(4)))
			Expect(fallback.searchCalls).To(Equal(1))
		})

		It("fails when a facet query fails on the only backend", func() {
			svc = service.NewDirectoryService(companies, nil, fallback, nil)
			fallback.regionFn = func(context.Context, index.Query) ([]model.FacetCount, error) {
				return nil, errors.New("db down")
			}

			_, err := svc.Search(ctx, service.SearchParams{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetBySlug", func() {
		It("normalizes the slug", func() {
			companies.getBySlugFn = func(_ context.Context, slug string) (*model.Company, error) {
				Expect(slug).To(Equal("acme-plumbing"))
				return &model.Company{ID: 3, Slug: slug}, nil
			}

			c, err := svc.GetBySlug(ctx, " Acme-Plumbing ")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(Equal(int64(3)))
		})

		It("maps missing companies", func() {
			_, err := svc.GetBySlug(ctx, "missing")
			Expect(err).To(MatchError(service.ErrCompanyNotFound))
		})
	})

	It("lists categories and regions without filters", func() {
		companies.categoryFacetsFn = func(_ context.Context, f store.CompanyFilter) ([]model.FacetCount, error) {
			Expect(f).To(Equal(store.CompanyFilter{}))
			return []model.FacetCount{{Value: "plumbing", Count: 12}}, nil
		}
		companies.regionFacetsFn = func(_ context.Context, f store.CompanyFilter) ([]model.FacetCount, error) {
			return []model.FacetCount{{Value: "QC", Count: 30}}, nil
		}

		cats, err := svc.ListCategories(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(cats).To(ConsistOf(model.FacetCount{Value: "plumbing", Count: 12}))

		regions, err := svc.ListRegions(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(regions).To(HaveLen(1))
	})
})

var _ = DescribeTable("ResolveLanguage",
	func(lang, accept, want string) {
		Expect(service.ResolveLanguage(lang, accept)).To(Equal(want))
	},
	Entry("explicit fr", "fr", "en-US", model.LangFR),
	Entry("explicit regional fr", "fr-CA", "", model.LangFR),
	Entry("header fr", "", "fr-CA,fr;q=0.9,en;q=0.8", model.LangFR),
	Entry("header en", "", "en-GB,en;q=0.9", model.LangEN),
	Entry("unsupported", "", "de-DE", model.LangEN),
	Entry("nothing", "", "", model.LangEN),
)
