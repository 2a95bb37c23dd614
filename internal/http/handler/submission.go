package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/service"
)

// SubmissionHandler serves the public quote and claim forms.
type SubmissionHandler struct {
	quotes service.QuoteService
	claims service.ClaimService
}

func NewSubmissionHandler(quotes service.QuoteService, claims service.ClaimService) *SubmissionHandler {
	return &SubmissionHandler{quotes: quotes, claims: claims}
}

func (h *SubmissionHandler) SubmitQuote(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: name, email and message are required")
		return
	}

	quote, err := h.quotes.Submit(c.Request.Context(), c.Param("slug"), req.Input(c.Request.UserAgent()))
	if err != nil {
		respondError(c, err, "failed to submit quote request")
		return
	}

	c.JSON(http.StatusCreated, dto.SubmittedResponse{ID: quote.ID, Status: string(quote.Status)})
}

func (h *SubmissionHandler) SubmitClaim(c *gin.Context) {
	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: name and email are required")
		return
	}

	claim, err := h.claims.Submit(c.Request.Context(), c.Param("slug"), req.Input())
	if err != nil {
		respondError(c, err, "failed to submit claim request")
		return
	}

	c.JSON(http.StatusCreated, dto.SubmittedResponse{ID: claim.ID, Status: string(claim.Status)})
}
