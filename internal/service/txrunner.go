package service

import (
	"context"

	"bizdir.app/directory/core/db"
	"bizdir.app/directory/core/db/sqlc"
	"bizdir.app/directory/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Companies() store.CompanyStore
	Claims() store.ClaimStore
	Quotes() store.QuoteStore
	Users() store.UserStore
	Sessions() store.SessionStore
	Members() store.MemberStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
