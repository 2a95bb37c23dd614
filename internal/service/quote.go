package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/mssola/useragent"

	"bizdir.app/directory/common/id"
	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

var (
	ErrQuoteNotFound      = errors.New("quote request not found")
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
	ErrInvalidRequester   = errors.New("requester name and a valid email are required")
	ErrPhoneRequired      = errors.New("a phone number is required when phone contact is preferred")
)

type QuoteInput struct {
	RequesterName    string
	RequesterEmail   string
	RequesterPhone   string
	Message          string
	Urgency          model.QuoteUrgency
	PreferredContact model.ContactPreference
	UserAgent        string
}

type QuoteService interface {
	Submit(ctx context.Context, slug string, in QuoteInput) (*model.QuoteRequest, error)
	ListForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus, page, perPage int) ([]model.QuoteRequest, int64, error)
	UpdateStatus(ctx context.Context, companyID, quoteID int64, status model.QuoteStatus) (*model.QuoteRequest, error)
}

type quoteService struct {
	companies store.CompanyStore
	quotes    store.QuoteStore
	producer  queue.Producer
	metrics   *metrics.Metrics
}

func NewQuoteService(companies store.CompanyStore, quotes store.QuoteStore, producer queue.Producer, m *metrics.Metrics) QuoteService {
	return &quoteService{
		companies: companies,
		quotes:    quotes,
		producer:  producer,
		metrics:   m,
	}
}

func (s *quoteService) Submit(ctx context.Context, slug string, in QuoteInput) (*model.QuoteRequest, error) {
	email, err := normalizeRequester(in.RequesterName, in.RequesterEmail)
	if err != nil {
		return nil, err
	}
	if in.Urgency == "" {
		in.Urgency = model.QuoteUrgencyFlexible
	}
	if in.PreferredContact == "" {
		in.PreferredContact = model.ContactPreferenceEmail
	}
	if in.PreferredContact == model.ContactPreferencePhone && strings.TrimSpace(in.RequesterPhone) == "" {
		return nil, ErrPhoneRequired
	}

	company, err := s.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}

	quote := &model.QuoteRequest{
		ID:               id.New(),
		CompanyID:        company.ID,
		RequesterName:    strings.TrimSpace(in.RequesterName),
		RequesterEmail:   email,
		RequesterPhone:   strings.TrimSpace(in.RequesterPhone),
		Message:          strings.TrimSpace(in.Message),
		Urgency:          in.Urgency,
		PreferredContact: in.PreferredContact,
		Status:           model.QuoteStatusNew,
		Device:           DeviceFromUserAgent(in.UserAgent),
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("creating quote request: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &company.ID, QuoteID: &quote.ID})
	slog.InfoContext(ctx, "quote request submitted",
		"urgency", quote.Urgency,
		"device", quote.Device)

	s.metrics.IncrementQuoteSubmitted()
	enqueue(ctx, s.producer, queue.QuoteNotificationTask(company.ID, quote.ID))

	return quote, nil
}

func (s *quoteService) ListForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus, page, perPage int) ([]model.QuoteRequest, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidQuoteStatus
	}
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, 0, err
	}

	quotes, err := s.quotes.ListForCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing quote requests: %w", err)
	}
	total, err := s.quotes.CountForCompany(ctx, companyID, status)
	if err != nil {
		return nil, 0, fmt.Errorf("counting quote requests: %w", err)
	}
	return quotes, total, nil
}

func (s *quoteService) UpdateStatus(ctx context.Context, companyID, quoteID int64, status model.QuoteStatus) (*model.QuoteRequest, error) {
	if !status.Valid() {
		return nil, ErrInvalidQuoteStatus
	}
	quote, err := s.quotes.UpdateStatus(ctx, quoteID, companyID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("updating quote status: %w", err)
	}
	return quote, nil
}

// DeviceFromUserAgent classifies a User-Agent header as "bot", "mobile",
// "desktop" or "unknown".
func DeviceFromUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "unknown"
	}
	ua := useragent.New(raw)
	switch {
	case ua.Bot():
		return "bot"
	case ua.Mobile():
		return "mobile"
	}
	return "desktop"
}

func normalizeRequester(name, email string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidRequester
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidRequester
	}
	return strings.ToLower(addr.Address), nil
}
