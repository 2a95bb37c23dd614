package store

import (
	"context"
	"errors"

	"bizdir.app/directory/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrMissingWorkOSID is returned when a user is upserted without a WorkOS ID.
var ErrMissingWorkOSID = errors.New("user has no WorkOS ID")

// CompanyFilter narrows a directory search. Empty strings mean "no filter".
type CompanyFilter struct {
	// TSQuery is a to_tsquery('simple', ...) expression; empty matches all companies.
	TSQuery      string
	Region       string
	Category     string
	VerifiedOnly bool
	Sort         model.SearchSort
	Limit        int32
	Offset       int32
}

// CompanyStore defines the contract for company data access
type CompanyStore interface {
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	GetBySlug(ctx context.Context, slug string) (*model.Company, error)
	GetByOrganizationID(ctx context.Context, workosOrgID string) (*model.Company, error)
	// GetByIDs returns the non-deleted companies among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Company, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	SetOrganizationID(ctx context.Context, id int64, workosOrgID string) (*model.Company, error)
	// MarkClaimed returns ErrNotFound when the company is missing or already claimed.
	MarkClaimed(ctx context.Context, id int64, workosOrgID string) (*model.Company, error)
	SoftDelete(ctx context.Context, id int64) error
	ListAfter(ctx context.Context, afterID int64, limit int32) ([]model.Company, error)

	Search(ctx context.Context, filter CompanyFilter) ([]model.CompanyMatch, error)
	Count(ctx context.Context, filter CompanyFilter) (int64, error)
	// RegionFacets ignores filter.Region; CategoryFacets ignores filter.Category.
	RegionFacets(ctx context.Context, filter CompanyFilter) ([]model.FacetCount, error)
	CategoryFacets(ctx context.Context, filter CompanyFilter) ([]model.FacetCount, error)
}

// ClaimStore defines the contract for claim request data access
type ClaimStore interface {
	Create(ctx context.Context, claim *model.ClaimRequest) error
	GetByID(ctx context.Context, id int64) (*model.ClaimRequest, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.ClaimRequest, error)
	GetPendingByCompanyAndEmail(ctx context.Context, companyID int64, email string) (*model.ClaimRequest, error)
	List(ctx context.Context, status *model.ClaimStatus, limit, offset int32) ([]model.ClaimRequest, error)
	Count(ctx context.Context, status *model.ClaimStatus) (int64, error)
	// Approve and Reject return ErrNotFound when the claim is no longer pending.
	Approve(ctx context.Context, id int64, reviewer string, invitationID *string) (*model.ClaimRequest, error)
	Reject(ctx context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error)
	RejectOtherPending(ctx context.Context, companyID, keepID int64, reviewer, reason string) ([]model.ClaimRequest, error)
}

// QuoteStore defines the contract for quote request data access
type QuoteStore interface {
	Create(ctx context.Context, quote *model.QuoteRequest) error
	GetForCompany(ctx context.Context, id, companyID int64) (*model.QuoteRequest, error)
	ListForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus, limit, offset int32) ([]model.QuoteRequest, error)
	CountForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus) (int64, error)
	UpdateStatus(ctx context.Context, id, companyID int64, status model.QuoteStatus) (*model.QuoteRequest, error)
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// UpsertByWorkOSID inserts the user or refreshes name, email and avatar
	// of the user with the same WorkOS ID.
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValid(ctx context.Context, id int64) (*model.Session, error)
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// MemberStore defines the contract for company membership data access
type MemberStore interface {
	Upsert(ctx context.Context, member *model.CompanyMember) error
	ListByUser(ctx context.Context, userID int64) ([]model.CompanyMember, error)
}
