package store

import (
	"context"

	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/model"
)

type claimStore struct {
	queries *sqlc.Queries
}

func newClaimStore(queries *sqlc.Queries) ClaimStore {
	return &claimStore{queries: queries}
}

func (s *claimStore) Create(ctx context.Context, claim *model.ClaimRequest) error {
	row, err := s.queries.CreateClaimRequest(ctx, sqlc.CreateClaimRequestParams{
		ID:             claim.ID,
		CompanyID:      claim.CompanyID,
		RequesterName:  claim.RequesterName,
		RequesterEmail: claim.RequesterEmail,
		RequesterPhone: claim.RequesterPhone,
		JobTitle:       claim.JobTitle,
		Message:        claim.Message,
	})
	if err != nil {
		return err
	}
	*claim = *toClaimModel(row)
	return nil
}

func (s *claimStore) GetByID(ctx context.Context, id int64) (*model.ClaimRequest, error) {
	row, err := s.queries.GetClaimRequest(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toClaimModel(row), nil
}

func (s *claimStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.ClaimRequest, error) {
	row, err := s.queries.GetClaimRequestForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toClaimModel(row), nil
}

func (s *claimStore) GetPendingByCompanyAndEmail(ctx context.Context, companyID int64, email string) (*model.ClaimRequest, error) {
	row, err := s.queries.GetPendingClaimByCompanyAndEmail(ctx, sqlc.GetPendingClaimByCompanyAndEmailParams{
		CompanyID: companyID,
		Email:     email,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toClaimModel(row), nil
}

func (s *claimStore) List(ctx context.Context, status *model.ClaimStatus, limit, offset int32) ([]model.ClaimRequest, error) {
	rows, err := s.queries.ListClaimRequests(ctx, sqlc.ListClaimRequestsParams{
		Status: claimStatusParam(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toClaimModels(rows), nil
}

func (s *claimStore) Count(ctx context.Context, status *model.ClaimStatus) (int64, error) {
	return s.queries.CountClaimRequests(ctx, claimStatusParam(status))
}

func (s *claimStore) Approve(ctx context.Context, id int64, reviewer string, invitationID *string) (*model.ClaimRequest, error) {
	row, err := s.queries.ApproveClaimRequest(ctx, sqlc.ApproveClaimRequestParams{
		ID:                 id,
		ReviewedBy:         &reviewer,
		WorkosInvitationID: invitationID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toClaimModel(row), nil
}

func (s *claimStore) Reject(ctx context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error) {
	row, err := s.queries.RejectClaimRequest(ctx, sqlc.RejectClaimRequestParams{
		ID:              id,
		ReviewedBy:      &reviewer,
		RejectionReason: ptrIfNotEmpty(reason),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toClaimModel(row), nil
}

func (s *claimStore) RejectOtherPending(ctx context.Context, companyID, keepID int64, reviewer, reason string) ([]model.ClaimRequest, error) {
	rows, err := s.queries.RejectOtherPendingClaims(ctx, sqlc.RejectOtherPendingClaimsParams{
		CompanyID:       companyID,
		ID:              keepID,
		ReviewedBy:      &reviewer,
		RejectionReason: &reason,
	})
	if err != nil {
		return nil, err
	}
	return toClaimModels(rows), nil
}

func claimStatusParam(status *model.ClaimStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

func toClaimModel(row sqlc.ClaimRequest) *model.ClaimRequest {
	claim := &model.ClaimRequest{
		ID:                 row.ID,
		CompanyID:          row.CompanyID,
		RequesterName:      row.RequesterName,
		RequesterEmail:     row.RequesterEmail,
		RequesterPhone:     row.RequesterPhone,
		JobTitle:           row.JobTitle,
		Message:            row.Message,
		Status:             model.ClaimStatus(row.Status),
		ReviewedBy:         row.ReviewedBy,
		RejectionReason:    row.RejectionReason,
		WorkOSInvitationID: row.WorkosInvitationID,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
	if row.ReviewedAt.Valid {
		claim.ReviewedAt = &row.ReviewedAt.Time
	}
	return claim
}

func toClaimModels(rows []sqlc.ClaimRequest) []model.ClaimRequest {
	result := make([]model.ClaimRequest, len(rows))
	for i, row := range rows {
		result[i] = *toClaimModel(row)
	}
	return result
}
