package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

const defaultReviewer = "admin"

type AdminClaimHandler struct {
	claims service.ClaimService
}

func NewAdminClaimHandler(claims service.ClaimService) *AdminClaimHandler {
	return &AdminClaimHandler{claims: claims}
}

func (h *AdminClaimHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid list parameters")
		return
	}

	var status *model.ClaimStatus
	if q.Status != "" {
		s := model.ClaimStatus(q.Status)
		status = &s
	}

	claims, total, err := h.claims.List(c.Request.Context(), status, q.Page, q.PerPage)
	if err != nil {
		respondError(c, err, "failed to list claim requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimListResponse(claims, total))
}

func (h *AdminClaimHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claim, err := h.claims.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get claim request")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

func (h *AdminClaimHandler) Approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, ok := bindReview(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := h.claims.Approve(ctx, id, reviewer(req))
	if err != nil {
		respondError(c, err, "failed to approve claim request")
		return
	}

	slog.InfoContext(ctx, "claim approved via admin API", "claim_id", id)
	c.JSON(http.StatusOK, dto.ToApprovalResponse(res))
}

func (h *AdminClaimHandler) Reject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, ok := bindReview(c)
	if !ok {
		return
	}

	claim, err := h.claims.Reject(c.Request.Context(), id, reviewer(req), req.Reason)
	if err != nil {
		respondError(c, err, "failed to reject claim request")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// bindReview accepts an empty body.
func bindReview(c *gin.Context) (dto.ReviewClaimRequest, bool) {
	var req dto.ReviewClaimRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid review request")
		return req, false
	}
	return req, true
}

func reviewer(req dto.ReviewClaimRequest) string {
	if r := strings.TrimSpace(req.Reviewer); r != "" {
		return r
	}
	return defaultReviewer
}
