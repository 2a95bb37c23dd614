package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/http/handler"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

var _ = Describe("SubmissionHandler", func() {
	var (
		router *gin.Engine
		quotes *mockQuoteService
		claims *mockClaimService
	)

	BeforeEach(func() {
		quotes = &mockQuoteService{}
		claims = &mockClaimService{}
		h := handler.NewSubmissionHandler(quotes, claims)
		router = gin.New()
		router.POST("/companies/:slug/quotes", h.SubmitQuote)
		router.POST("/companies/:slug/claims", h.SubmitClaim)
	})

	Describe("SubmitQuote", func() {
		validBody := map[string]any{
			"requester_name":    "Marie Tremblay",
			"requester_email":   "marie@example.com",
			"message":           "Leaking pipe under the sink",
			"urgency":           "soon",
			"preferred_contact": "email",
		}

		It("creates the quote request and forwards the user agent", func() {
			quotes.submitFn = func(_ context.Context, slug string, in service.QuoteInput) (*model.QuoteRequest, error) {
				Expect(slug).To(Equal("acme"))
				Expect(in.RequesterEmail).To(Equal("marie@example.com"))
				Expect(in.Urgency).To(Equal(model.QuoteUrgency("soon")))
				Expect(in.UserAgent).To(Equal("Mozilla/5.0 (iPhone)"))
				return &model.QuoteRequest{ID: 99, Status: model.QuoteStatusNew}, nil
			}

			w, resp := perform(router, http.MethodPost, "/companies/acme/quotes", validBody,
				"User-Agent", "Mozilla/5.0 (iPhone)")

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(resp["id"]).To(Equal("99"))
			Expect(resp["status"]).To(Equal("new"))
		})

		It("rejects a body without a message", func() {
			w, resp := perform(router, http.MethodPost, "/companies/acme/quotes", map[string]any{
				"requester_name":  "Marie",
				"requester_email": "marie@example.com",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["code"]).To(Equal("invalid_request"))
		})

		It("rejects an invalid email", func() {
			body := map[string]any{"requester_name": "Marie", "requester_email": "not-an-email", "message": "hi"}

			w, _ := perform(router, http.MethodPost, "/companies/acme/quotes", body)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps an unknown company to 404", func() {
			quotes.submitFn = func(context.Context, string, service.QuoteInput) (*model.QuoteRequest, error) {
				return nil, service.ErrCompanyNotFound
			}

			w, resp := perform(router, http.MethodPost, "/companies/ghost/quotes", validBody)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(resp["code"]).To(Equal("company_not_found"))
		})

		It("maps a missing phone for phone contact to 400", func() {
			quotes.submitFn = func(context.Context, string, service.QuoteInput) (*model.QuoteRequest, error) {
				return nil, service.ErrPhoneRequired
			}

			w, resp := perform(router, http.MethodPost, "/companies/acme/quotes", validBody)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["code"]).To(Equal("phone_required"))
		})
	})

	Describe("SubmitClaim", func() {
		body := map[string]any{
			"requester_name":  "Jean Côté",
			"requester_email": "jean@acme.ca",
			"job_title":       "Owner",
		}

		It("creates a pending claim", func() {
			claims.submitFn = func(_ context.Context, slug string, in service.ClaimInput) (*model.ClaimRequest, error) {
				Expect(slug).To(Equal("acme"))
				Expect(in.JobTitle).To(Equal("Owner"))
				return &model.ClaimRequest{ID: 5, Status: model.ClaimStatusPending}, nil
			}

			w, resp := perform(router, http.MethodPost, "/companies/acme/claims", body)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(resp["id"]).To(Equal("5"))
			Expect(resp["status"]).To(Equal("pending"))
		})

		It("returns 409 when the company is already claimed", func() {
			claims.submitFn = func(context.Context, string, service.ClaimInput) (*model.ClaimRequest, error) {
				return nil, service.ErrCompanyAlreadyClaimed
			}

			w, resp := perform(router, http.MethodPost, "/companies/acme/claims", body)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(resp["code"]).To(Equal("company_already_claimed"))
		})

		It("returns 409 for a duplicate pending claim", func() {
			claims.submitFn = func(context.Context, string, service.ClaimInput) (*model.ClaimRequest, error) {
				return nil, service.ErrDuplicateClaim
			}

			w, resp := perform(router, http.MethodPost, "/companies/acme/claims", body)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(resp["code"]).To(Equal("duplicate_claim"))
		})
	})
})
