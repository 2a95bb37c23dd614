package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

var ErrNoCompanyAccess = errors.New("user does not manage a company")

// PortalService is the self-service API of a claimed company. Every call is
// scoped to the company the user is a member of.
type PortalService interface {
	GetCompany(ctx context.Context, principal *Principal) (*model.Company, error)
	UpdateProfile(ctx context.Context, principal *Principal, patch ProfilePatch) (*model.Company, error)
	ListQuotes(ctx context.Context, principal *Principal, status *model.QuoteStatus, page, perPage int) ([]model.QuoteRequest, int64, error)
	UpdateQuoteStatus(ctx context.Context, principal *Principal, quoteID int64, status model.QuoteStatus) (*model.QuoteRequest, error)
}

type portalService struct {
	companies store.CompanyStore
	quotes    QuoteService
	producer  queue.Producer
}

func NewPortalService(companies store.CompanyStore, quotes QuoteService, producer queue.Producer) PortalService {
	return &portalService{
		companies: companies,
		quotes:    quotes,
		producer:  producer,
	}
}

func (s *portalService) GetCompany(ctx context.Context, principal *Principal) (*model.Company, error) {
	companyID, err := managedCompanyID(principal)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoCompanyAccess
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return company, nil
}

func (s *portalService) UpdateProfile(ctx context.Context, principal *Principal, patch ProfilePatch) (*model.Company, error) {
	company, err := s.GetCompany(ctx, principal)
	if err != nil {
		return nil, err
	}

	patch.apply(company)
	if err := s.companies.Update(ctx, company); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoCompanyAccess
		}
		return nil, fmt.Errorf("updating company: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &company.ID, UserID: &principal.User.ID})
	slog.InfoContext(ctx, "company profile updated from portal")

	enqueue(ctx, s.producer, queue.CompanyIndexTask(company.ID))
	return company, nil
}

func (s *portalService) ListQuotes(ctx context.Context, principal *Principal, status *model.QuoteStatus, page, perPage int) ([]model.QuoteRequest, int64, error) {
	companyID, err := managedCompanyID(principal)
	if err != nil {
		return nil, 0, err
	}
	return s.quotes.ListForCompany(ctx, companyID, status, page, perPage)
}

func (s *portalService) UpdateQuoteStatus(ctx context.Context, principal *Principal, quoteID int64, status model.QuoteStatus) (*model.QuoteRequest, error) {
	companyID, err := managedCompanyID(principal)
	if err != nil {
		return nil, err
	}
	return s.quotes.UpdateStatus(ctx, companyID, quoteID, status)
}

// managedCompanyID prefers an owner membership over an editor one.
func managedCompanyID(principal *Principal) (int64, error) {
	if principal == nil || len(principal.Memberships) == 0 {
		return 0, ErrNoCompanyAccess
	}
	for _, m := range principal.Memberships {
		if m.Role == model.MemberRoleOwner {
			return m.CompanyID, nil
		}
	}
	return principal.Memberships[0].CompanyID, nil
}
