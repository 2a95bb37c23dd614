package handler_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/http/handler"
	"bizdir.app/directory/internal/http/middleware"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

var _ = Describe("AdminClaimHandler", func() {
	const apiKey = "s3cret"

	var (
		router *gin.Engine
		claims *mockClaimService
	)

	BeforeEach(func() {
		claims = &mockClaimService{}
		h := handler.NewAdminClaimHandler(claims)
		router = gin.New()
		admin := router.Group("/admin")
		admin.Use(middleware.RequireAdminAPIKey(apiKey))
		admin.GET("/claims", h.List)
		admin.GET("/claims/:id", h.Get)
		admin.POST("/claims/:id/approve", h.Approve)
		admin.POST("/claims/:id/reject", h.Reject)
	})

	It("requires the admin API key", func() {
		w, resp := perform(router, http.MethodGet, "/admin/claims", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(resp["code"]).To(Equal("unauthenticated"))

		w, _ = perform(router, http.MethodGet, "/admin/claims", nil, "X-Admin-API-Key", "wrong")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("is disabled when no key is configured", func() {
		r := gin.New()
		r.GET("/admin/claims", middleware.RequireAdminAPIKey(""), handler.NewAdminClaimHandler(claims).List)

		w, resp := perform(r, http.MethodGet, "/admin/claims", nil, "X-Admin-API-Key", "")

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(resp["code"]).To(Equal("admin_disabled"))
	})

	Describe("List", func() {
		It("filters by status and accepts the key as a bearer token", func() {
			claims.listFn = func(_ context.Context, status *model.ClaimStatus, page, perPage int) ([]model.ClaimRequest, int64, error) {
				Expect(status).NotTo(BeNil())
				Expect(*status).To(Equal(model.ClaimStatusPending))
				Expect(page).To(Equal(1))
				Expect(perPage).To(Equal(10))
				return []model.ClaimRequest{{ID: 1, Status: model.ClaimStatusPending}}, 1, nil
			}

			w, resp := perform(router, http.MethodGet, "/admin/claims?status=pending&page=1&per_page=10", nil,
				"Authorization", "Bearer "+apiKey)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["total"]).To(BeNumerically("==", 1))
			Expect(resp["claims"]).To(HaveLen(1))
		})

		It("rejects an unknown status", func() {
			claims.listFn = func(context.Context, *model.ClaimStatus, int, int) ([]model.ClaimRequest, int64, error) {
				return nil, 0, service.ErrInvalidClaimStatus
			}

			w, resp := perform(router, http.MethodGet, "/admin/claims?status=maybe", nil, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["code"]).To(Equal("invalid_status"))
		})

		It("rejects per_page above the cap", func() {
			w, _ := perform(router, http.MethodGet, "/admin/claims?per_page=500", nil, "X-Admin-API-Key", apiKey)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Get", func() {
		It("rejects a non-numeric id", func() {
			w, resp := perform(router, http.MethodGet, "/admin/claims/abc", nil, "X-Admin-API-Key", apiKey)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["code"]).To(Equal("invalid_request"))
		})

		It("maps a missing claim to 404", func() {
			claims.getFn = func(context.Context, int64) (*model.ClaimRequest, error) {
				return nil, service.ErrClaimNotFound
			}

			w, resp := perform(router, http.MethodGet, "/admin/claims/12", nil, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(resp["code"]).To(Equal("claim_not_found"))
		})
	})

	Describe("Approve", func() {
		It("approves with the default reviewer and reports the invitation", func() {
			orgID := "org_123"
			claims.approveFn = func(_ context.Context, id int64, reviewer string) (*service.ApprovalResult, error) {
				Expect(id).To(Equal(int64(12)))
				Expect(reviewer).To(Equal("admin"))
				return &service.ApprovalResult{
					Claim:          &model.ClaimRequest{ID: 12, Status: model.ClaimStatusApproved},
					Company:        &model.Company{ID: 3, WorkOSOrganizationID: &orgID},
					Invite:         &identity.InviteOutcome{InvitationID: "inv_1"},
					RejectedOthers: 2,
				}, nil
			}

			w, resp := perform(router, http.MethodPost, "/admin/claims/12/approve", nil, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["organization_id"]).To(Equal("org_123"))
			Expect(resp["invitation_id"]).To(Equal("inv_1"))
			Expect(resp["already_member"]).To(BeFalse())
			Expect(resp["rejected_others"]).To(BeNumerically("==", 2))
			Expect(resp["claim"].(map[string]any)["status"]).To(Equal("approved"))
		})

		It("uses the reviewer from the body", func() {
			claims.approveFn = func(_ context.Context, _ int64, reviewer string) (*service.ApprovalResult, error) {
				Expect(reviewer).To(Equal("ops@bizdir.app"))
				return &service.ApprovalResult{Claim: &model.ClaimRequest{ID: 12}}, nil
			}

			w, _ := perform(router, http.MethodPost, "/admin/claims/12/approve",
				map[string]any{"reviewer": "ops@bizdir.app"}, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 502 when provisioning fails so the admin can retry", func() {
			claims.approveFn = func(context.Context, int64, string) (*service.ApprovalResult, error) {
				return nil, fmt.Errorf("%w: creating organization: timeout", identity.ErrProvisioning)
			}

			w, resp := perform(router, http.MethodPost, "/admin/claims/12/approve", nil, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(resp["code"]).To(Equal("provisioning_failed"))
		})

		It("returns 409 when the claim was already reviewed", func() {
			claims.approveFn = func(context.Context, int64, string) (*service.ApprovalResult, error) {
				return nil, service.ErrClaimNotPending
			}

			w, resp := perform(router, http.MethodPost, "/admin/claims/12/approve", nil, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(resp["code"]).To(Equal("claim_not_pending"))
		})
	})

	Describe("Reject", func() {
		It("passes the reason through", func() {
			claims.rejectFn = func(_ context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error) {
				Expect(id).To(Equal(int64(12)))
				Expect(reviewer).To(Equal("admin"))
				Expect(reason).To(Equal("could not verify ownership"))
				return &model.ClaimRequest{ID: 12, Status: model.ClaimStatusRejected, RejectionReason: &reason}, nil
			}

			w, resp := perform(router, http.MethodPost, "/admin/claims/12/reject",
				map[string]any{"reason": "could not verify ownership"}, "X-Admin-API-Key", apiKey)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["status"]).To(Equal("rejected"))
			Expect(resp["rejection_reason"]).To(Equal("could not verify ownership"))
		})
	})
})
