package service

import (
	"bizdir.app/directory/core/config"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

type Services struct {
	stores      *store.Stores
	txRunner    TxRunner
	producer    queue.Producer
	provider    identity.Provider
	provisioner Provisioner
	searchIndex index.CompanyIndex
	metrics     *metrics.Metrics
	authCfg     config.AuthConfig
}

type Deps struct {
	Stores      *store.Stores
	TxRunner    TxRunner
	Producer    queue.Producer
	Provider    identity.Provider
	Provisioner Provisioner
	// SearchIndex is the preferred search backend; nil means PostgreSQL only.
	SearchIndex index.CompanyIndex
	Metrics     *metrics.Metrics
	Auth        config.AuthConfig
}

func NewServices(deps Deps) *Services {
	return &Services{
		stores:      deps.Stores,
		txRunner:    deps.TxRunner,
		producer:    deps.Producer,
		provider:    deps.Provider,
		provisioner: deps.Provisioner,
		searchIndex: deps.SearchIndex,
		metrics:     deps.Metrics,
		authCfg:     deps.Auth,
	}
}

func (s *Services) Directory() DirectoryService {
	companies := s.stores.Companies()
	return NewDirectoryService(companies, s.searchIndex, index.NewPostgres(companies), s.metrics)
}

func (s *Services) Quotes() QuoteService {
	return NewQuoteService(s.stores.Companies(), s.stores.Quotes(), s.producer, s.metrics)
}

func (s *Services) Claims() ClaimService {
	return NewClaimService(s.stores.Companies(), s.stores.Claims(), s.txRunner, s.provisioner, s.producer, s.metrics)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.txRunner, s.stores.Users(), s.stores.Sessions(), s.stores.Members(), s.provider, s.authCfg)
}

func (s *Services) Portal() PortalService {
	return NewPortalService(s.stores.Companies(), s.Quotes(), s.producer)
}

func (s *Services) Companies() CompanyService {
	return NewCompanyService(s.stores.Companies(), s.producer)
}
