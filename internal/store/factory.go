package store

import (
	"bizdir.app/directory/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Companies() CompanyStore {
	return newCompanyStore(s.queries)
}

func (s *Stores) Claims() ClaimStore {
	return newClaimStore(s.queries)
}

func (s *Stores) Quotes() QuoteStore {
	return newQuoteStore(s.queries)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Members() MemberStore {
	return newMemberStore(s.queries)
}
