package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/http/middleware"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

// PortalHandler serves the claimed-company portal. Routes sit behind
// middleware.RequireAuth.
type PortalHandler struct {
	portal service.PortalService
}

func NewPortalHandler(portal service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

func (h *PortalHandler) GetCompany(c *gin.Context) {
	ctx := c.Request.Context()
	company, err := h.portal.GetCompany(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(c, err, "failed to get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, service.ResolveLanguage(c.Query("lang"), c.GetHeader("Accept-Language"))))
}

func (h *PortalHandler) UpdateCompany(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid profile update")
		return
	}

	ctx := c.Request.Context()
	company, err := h.portal.UpdateProfile(ctx, middleware.GetPrincipal(ctx), req.Patch())
	if err != nil {
		respondError(c, err, "failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, service.ResolveLanguage(c.Query("lang"), c.GetHeader("Accept-Language"))))
}

func (h *PortalHandler) ListQuotes(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid list parameters")
		return
	}

	var status *model.QuoteStatus
	if q.Status != "" {
		s := model.QuoteStatus(q.Status)
		status = &s
	}

	ctx := c.Request.Context()
	quotes, total, err := h.portal.ListQuotes(ctx, middleware.GetPrincipal(ctx), status, q.Page, q.PerPage)
	if err != nil {
		respondError(c, err, "failed to list quote requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteListResponse(quotes, total))
}

func (h *PortalHandler) UpdateQuoteStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: status must be one of new, viewed, responded, archived")
		return
	}

	ctx := c.Request.Context()
	quote, err := h.portal.UpdateQuoteStatus(ctx, middleware.GetPrincipal(ctx), id, model.QuoteStatus(req.Status))
	if err != nil {
		respondError(c, err, "failed to update quote request")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}
