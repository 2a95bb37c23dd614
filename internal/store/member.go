package store

import (
	"context"

	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/model"
)

type memberStore struct {
	queries *sqlc.Queries
}

func newMemberStore(queries *sqlc.Queries) MemberStore {
	return &memberStore{queries: queries}
}

func (s *memberStore) Upsert(ctx context.Context, member *model.CompanyMember) error {
	row, err := s.queries.UpsertCompanyMember(ctx, sqlc.UpsertCompanyMemberParams{
		CompanyID: member.CompanyID,
		UserID:    member.UserID,
		Role:      string(member.Role),
	})
	if err != nil {
		return err
	}
	*member = toMemberModel(row)
	return nil
}

func (s *memberStore) ListByUser(ctx context.Context, userID int64) ([]model.CompanyMember, error) {
	rows, err := s.queries.ListCompanyMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.CompanyMember, len(rows))
	for i, row := range rows {
		result[i] = toMemberModel(row)
	}
	return result, nil
}

func toMemberModel(row sqlc.CompanyMember) model.CompanyMember {
	return model.CompanyMember{
		CompanyID: row.CompanyID,
		UserID:    row.UserID,
		Role:      model.MemberRole(row.Role),
		CreatedAt: row.CreatedAt.Time,
	}
}
