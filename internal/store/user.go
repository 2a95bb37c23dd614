package store

import (
	"context"

	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return userFromRow(row), nil
}

// UpsertByWorkOSID keys on the WorkOS user ID, so an email changed at WorkOS
// updates the existing row. The returned row keeps the ID of an existing
// user, so user.ID may differ from the one passed in.
func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	if user.WorkOSID == nil || *user.WorkOSID == "" {
		return ErrMissingWorkOSID
	}
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarURL,
		WorkosID:  user.WorkOSID,
	})
	if err != nil {
		return err
	}
	*user = *userFromRow(row)
	return nil
}

func userFromRow(row sqlc.User) *model.User {
	u := &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		WorkOSID:  row.WorkosID,
	}
	u.CreatedAt, u.UpdatedAt = row.CreatedAt.Time, row.UpdatedAt.Time
	return u
}
