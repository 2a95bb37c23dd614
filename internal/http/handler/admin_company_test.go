package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/http/handler"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

var _ = Describe("AdminCompanyHandler", func() {
	var (
		router    *gin.Engine
		companies *mockCompanyService
	)

	BeforeEach(func() {
		companies = &mockCompanyService{}
		h := handler.NewAdminCompanyHandler(companies)
		router = gin.New()
		router.POST("/companies", h.Create)
		router.POST("/companies/reindex", h.Reindex)
		router.GET("/companies/:id", h.Get)
		router.PATCH("/companies/:id", h.Update)
		router.DELETE("/companies/:id", h.Delete)
	})

	Describe("Create", func() {
		It("creates the company with profile fields", func() {
			companies.createFn = func(_ context.Context, in service.CompanyInput) (*model.Company, error) {
				Expect(in.Name).To(Equal("Acme"))
				Expect(in.Slug).To(BeNil())
				Expect(in.IsVerified).To(BeTrue())
				Expect(*in.Profile.Region).To(Equal("Québec"))
				return &model.Company{ID: 1, Name: in.Name, Slug: "acme", Region: "Québec", IsVerified: true}, nil
			}

			w, resp := perform(router, http.MethodPost, "/companies", map[string]any{
				"name":        "Acme",
				"region":      "Québec",
				"is_verified": true,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(resp["slug"]).To(Equal("acme"))
		})

		It("requires a name", func() {
			w, _ := perform(router, http.MethodPost, "/companies", map[string]any{"region": "Québec"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 409 for a taken slug", func() {
			companies.createFn = func(context.Context, service.CompanyInput) (*model.Company, error) {
				return nil, service.ErrSlugTaken
			}

			w, resp := perform(router, http.MethodPost, "/companies", map[string]any{"name": "Acme", "slug": "acme"})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(resp["code"]).To(Equal("slug_taken"))
		})
	})

	It("updates flags", func() {
		companies.updateFn = func(_ context.Context, id int64, patch service.CompanyPatch) (*model.Company, error) {
			Expect(id).To(Equal(int64(4)))
			Expect(*patch.IsFeatured).To(BeTrue())
			Expect(patch.Name).To(BeNil())
			return &model.Company{ID: 4, IsFeatured: true}, nil
		}

		w, resp := perform(router, http.MethodPatch, "/companies/4", map[string]any{"is_featured": true})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["is_featured"]).To(BeTrue())
	})

	It("gets a company by id", func() {
		companies.getFn = func(_ context.Context, id int64) (*model.Company, error) {
			return nil, service.ErrCompanyNotFound
		}

		w, _ := perform(router, http.MethodGet, "/companies/4", nil)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("deletes a company", func() {
		companies.deleteFn = func(_ context.Context, id int64) error {
			Expect(id).To(Equal(int64(4)))
			return nil
		}

		w, _ := perform(router, http.MethodDelete, "/companies/4", nil)

		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	Describe("Reindex", func() {
		It("schedules a full reindex", func() {
			companies.reindexFn = func(context.Context) error { return nil }

			w, resp := perform(router, http.MethodPost, "/companies/reindex", nil)

			Expect(w.Code).To(Equal(http.StatusAccepted))
			Expect(resp["status"]).To(Equal("scheduled"))
		})

		It("returns 500 when the task cannot be queued", func() {
			companies.reindexFn = func(context.Context) error { return errors.New("redis down") }

			w, resp := perform(router, http.MethodPost, "/companies/reindex", nil)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(resp["code"]).To(Equal("internal"))
		})
	})
})
