package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/service"
)

type apiError struct {
	status int
	code   string
	msg    string
}

var knownErrors = []struct {
	err error
	apiError
}{
	{service.ErrCompanyNotFound, apiError{http.StatusNotFound, "company_not_found", "company not found"}},
	{service.ErrQuoteNotFound, apiError{http.StatusNotFound, "quote_not_found", "quote request not found"}},
	{service.ErrClaimNotFound, apiError{http.StatusNotFound, "claim_not_found", "claim request not found"}},
	{service.ErrClaimNotPending, apiError{http.StatusConflict, "claim_not_pending", "claim request is not pending"}},
	{service.ErrCompanyAlreadyClaimed, apiError{http.StatusConflict, "company_already_claimed", "company has already been claimed"}},
	{service.ErrDuplicateClaim, apiError{http.StatusConflict, "duplicate_claim", "a pending claim from this email already exists"}},
	{service.ErrSlugTaken, apiError{http.StatusConflict, "slug_taken", "slug is already taken"}},
	{service.ErrPageOutOfRange, apiError{http.StatusBadRequest, "invalid_page", "page is out of range"}},
	{service.ErrInvalidSort, apiError{http.StatusBadRequest, "invalid_sort", "invalid sort order"}},
	{service.ErrInvalidQuoteStatus, apiError{http.StatusBadRequest, "invalid_status", "invalid quote status"}},
	{service.ErrInvalidClaimStatus, apiError{http.StatusBadRequest, "invalid_status", "invalid claim status"}},
	{service.ErrInvalidRequester, apiError{http.StatusBadRequest, "invalid_requester", "requester name and a valid email are required"}},
	{service.ErrPhoneRequired, apiError{http.StatusBadRequest, "phone_required", "a phone number is required when phone contact is preferred"}},
	{service.ErrCompanyNameEmpty, apiError{http.StatusBadRequest, "name_required", "company name is required"}},
	{service.ErrNoCompanyAccess, apiError{http.StatusForbidden, "no_company_access", "you do not manage a company"}},
	{service.ErrInvalidCode, apiError{http.StatusUnauthorized, "invalid_code", "invalid authorization code"}},
	{identity.ErrProvisioning, apiError{http.StatusBadGateway, "provisioning_failed", "identity provider provisioning failed, retry later"}},
}

// respondError maps service errors to JSON responses. Unknown errors are
// logged and reported as 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			if k.status >= http.StatusInternalServerError {
				slog.ErrorContext(c.Request.Context(), fallback, "error", err)
			}
			c.JSON(k.status, gin.H{"error": k.msg, "code": k.code})
			return
		}
	}
	slog.ErrorContext(c.Request.Context(), fallback, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "code": "internal"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "invalid_request"})
}

// idParam parses a Snowflake path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
