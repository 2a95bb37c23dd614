package store

import (
	"context"

	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/model"
)

type quoteStore struct {
	queries *sqlc.Queries
}

func newQuoteStore(queries *sqlc.Queries) QuoteStore {
	return &quoteStore{queries: queries}
}

func (s *quoteStore) Create(ctx context.Context, quote *model.QuoteRequest) error {
	row, err := s.queries.CreateQuoteRequest(ctx, sqlc.CreateQuoteRequestParams{
		ID:               quote.ID,
		CompanyID:        quote.CompanyID,
		RequesterName:    quote.RequesterName,
		RequesterEmail:   quote.RequesterEmail,
		RequesterPhone:   quote.RequesterPhone,
		Message:          quote.Message,
		Urgency:          string(quote.Urgency),
		PreferredContact: string(quote.PreferredContact),
		Device:           quote.Device,
	})
	if err != nil {
		return err
	}
	*quote = *toQuoteModel(row)
	return nil
}

func (s *quoteStore) GetForCompany(ctx context.Context, id, companyID int64) (*model.QuoteRequest, error) {
	row, err := s.queries.GetQuoteRequestForCompany(ctx, sqlc.GetQuoteRequestForCompanyParams{
		ID:        id,
		CompanyID: companyID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toQuoteModel(row), nil
}

func (s *quoteStore) ListForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus, limit, offset int32) ([]model.QuoteRequest, error) {
	rows, err := s.queries.ListQuoteRequestsForCompany(ctx, sqlc.ListQuoteRequestsForCompanyParams{
		CompanyID: companyID,
		Status:    quoteStatusParam(status),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.QuoteRequest, len(rows))
	for i, row := range rows {
		result[i] = *toQuoteModel(row)
	}
	return result, nil
}

func (s *quoteStore) CountForCompany(ctx context.Context, companyID int64, status *model.QuoteStatus) (int64, error) {
	return s.queries.CountQuoteRequestsForCompany(ctx, sqlc.CountQuoteRequestsForCompanyParams{
		CompanyID: companyID,
		Status:    quoteStatusParam(status),
	})
}

func (s *quoteStore) UpdateStatus(ctx context.Context, id, companyID int64, status model.QuoteStatus) (*model.QuoteRequest, error) {
	row, err := s.queries.UpdateQuoteRequestStatus(ctx, sqlc.UpdateQuoteRequestStatusParams{
		ID:        id,
		CompanyID: companyID,
		Status:    string(status),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toQuoteModel(row), nil
}

func quoteStatusParam(status *model.QuoteStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

func toQuoteModel(row sqlc.QuoteRequest) *model.QuoteRequest {
	return &model.QuoteRequest{
		ID:               row.ID,
		CompanyID:        row.CompanyID,
		RequesterName:    row.RequesterName,
		RequesterEmail:   row.RequesterEmail,
		RequesterPhone:   row.RequesterPhone,
		Message:          row.Message,
		Urgency:          model.QuoteUrgency(row.Urgency),
		PreferredContact: model.ContactPreference(row.PreferredContact),
		Status:           model.QuoteStatus(row.Status),
		Device:           row.Device,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
