package router

import (
	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/handler"
)

// AuthRouter exposes login; /me and /logout need a bearer token.
func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, requireAuth gin.HandlerFunc) {
	rg.GET("/url", h.AuthorizationURL)
	rg.POST("/exchange", h.Exchange)
	rg.GET("/me", requireAuth, h.Me)
	rg.POST("/logout", requireAuth, h.Logout)
}

func DirectoryRouter(rg *gin.RouterGroup, h *handler.DirectoryHandler) {
	rg.GET("/companies", h.Search)
	rg.GET("/companies/:slug", h.GetBySlug)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/regions", h.ListRegions)
}

func SubmissionRouter(rg *gin.RouterGroup, h *handler.SubmissionHandler, rateLimit gin.HandlerFunc) {
	rg.POST("/quotes", rateLimit, h.SubmitQuote)
	rg.POST("/claims", rateLimit, h.SubmitClaim)
}

func PortalRouter(rg *gin.RouterGroup, h *handler.PortalHandler) {
	rg.GET("/company", h.GetCompany)
	rg.PATCH("/company", h.UpdateCompany)
	rg.GET("/quotes", h.ListQuotes)
	rg.PATCH("/quotes/:id", h.UpdateQuoteStatus)
}

func AdminRouter(rg *gin.RouterGroup, claims *handler.AdminClaimHandler, companies *handler.AdminCompanyHandler) {
	rg.GET("/claims", claims.List)
	rg.GET("/claims/:id", claims.Get)
	rg.POST("/claims/:id/approve", claims.Approve)
	rg.POST("/claims/:id/reject", claims.Reject)

	rg.POST("/companies", companies.Create)
	rg.POST("/companies/reindex", companies.Reindex)
	rg.GET("/companies/:id", companies.Get)
	rg.PATCH("/companies/:id", companies.Update)
	rg.DELETE("/companies/:id", companies.Delete)
}
