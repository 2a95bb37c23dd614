package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/service"
)

type AdminCompanyHandler struct {
	companies service.CompanyService
}

func NewAdminCompanyHandler(companies service.CompanyService) *AdminCompanyHandler {
	return &AdminCompanyHandler{companies: companies}
}

func (h *AdminCompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: name is required")
		return
	}

	company, err := h.companies.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, err, "failed to create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company, model.LangEN))
}

func (h *AdminCompanyHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, model.LangEN))
}

func (h *AdminCompanyHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid company update")
		return
	}

	company, err := h.companies.Update(c.Request.Context(), id, req.CompanyPatch())
	if err != nil {
		respondError(c, err, "failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, model.LangEN))
}

func (h *AdminCompanyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminCompanyHandler) Reindex(c *gin.Context) {
	if err := h.companies.Reindex(c.Request.Context()); err != nil {
		respondError(c, err, "failed to schedule reindex")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}
