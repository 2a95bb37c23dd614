package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/service"
)

type DirectoryHandler struct {
	directory service.DirectoryService
}

func NewDirectoryHandler(directory service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) Search(c *gin.Context) {
	var q dto.SearchCompaniesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid search parameters")
		return
	}

	res, err := h.directory.Search(c.Request.Context(), q.Params())
	if err != nil {
		respondError(c, err, "failed to search companies")
		return
	}

	lang := service.ResolveLanguage(q.Lang, c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.ToSearchResponse(res, lang))
}

func (h *DirectoryHandler) GetBySlug(c *gin.Context) {
	company, err := h.directory.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "failed to get company")
		return
	}

	lang := service.ResolveLanguage(c.Query("lang"), c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, lang))
}

func (h *DirectoryHandler) ListCategories(c *gin.Context) {
	items, err := h.directory.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToFacetListResponse(items))
}

func (h *DirectoryHandler) ListRegions(c *gin.Context) {
	items, err := h.directory.ListRegions(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list regions")
		return
	}
	c.JSON(http.StatusOK, dto.ToFacetListResponse(items))
}
