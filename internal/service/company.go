package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bizdir.app/directory/common"
	"bizdir.app/directory/common/id"
	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

var (
	ErrSlugTaken        = errors.New("slug is already taken")
	ErrCompanyNameEmpty = errors.New("company name is required")
)

type CompanyInput struct {
	Name string
	// Slug defaults to one derived from Name.
	Slug       *string
	Profile    ProfilePatch
	IsVerified bool
	IsFeatured bool
}

// CompanyPatch is the admin superset of ProfilePatch.
type CompanyPatch struct {
	ProfilePatch
	Name       *string
	IsVerified *bool
	IsFeatured *bool
}

// CompanyService is the admin-only company management API.
type CompanyService interface {
	Create(ctx context.Context, in CompanyInput) (*model.Company, error)
	Get(ctx context.Context, id int64) (*model.Company, error)
	Update(ctx context.Context, id int64, patch CompanyPatch) (*model.Company, error)
	Delete(ctx context.Context, id int64) error
	Reindex(ctx context.Context) error
}

type companyService struct {
	companies store.CompanyStore
	producer  queue.Producer
}

func NewCompanyService(companies store.CompanyStore, producer queue.Producer) CompanyService {
	return &companyService{companies: companies, producer: producer}
}

func (s *companyService) Create(ctx context.Context, in CompanyInput) (*model.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrCompanyNameEmpty
	}

	slug, err := s.ensureSlug(ctx, name, in.Slug)
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		ID:         id.New(),
		Name:       name,
		Slug:       slug,
		IsVerified: in.IsVerified,
		IsFeatured: in.IsFeatured,
	}
	in.Profile.apply(company)

	if err := s.companies.Create(ctx, company); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("creating company: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &company.ID})
	slog.InfoContext(ctx, "company created", "slug", company.Slug)

	enqueue(ctx, s.producer, queue.CompanyIndexTask(company.ID))
	return company, nil
}

func (s *companyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return company, nil
}

func (s *companyService) Update(ctx context.Context, id int64, patch CompanyPatch) (*model.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrCompanyNameEmpty
		}
		company.Name = name
	}
	if patch.IsVerified != nil {
		company.IsVerified = *patch.IsVerified
	}
	if patch.IsFeatured != nil {
		company.IsFeatured = *patch.IsFeatured
	}
	patch.ProfilePatch.apply(company)

	if err := s.companies.Update(ctx, company); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("updating company: %w", err)
	}

	enqueue(ctx, s.producer, queue.CompanyIndexTask(company.ID))
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id int64) error {
	if err := s.companies.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("deleting company: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &id})
	slog.InfoContext(ctx, "company deleted")

	enqueue(ctx, s.producer, queue.CompanyIndexTask(id))
	return nil
}

func (s *companyService) Reindex(ctx context.Context) error {
	if s.producer == nil {
		return nil
	}
	if err := s.producer.Enqueue(ctx, queue.ReindexAllTask()); err != nil {
		return fmt.Errorf("enqueueing reindex: %w", err)
	}
	return nil
}

func (s *companyService) ensureSlug(ctx context.Context, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "company")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	exists, err := s.companies.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("checking slug availability: %w", err)
	}
	if !exists {
		return base, nil
	}
	// An explicit slug is honoured exactly or rejected.
	if slug != nil && *slug != "" {
		return "", ErrSlugTaken
	}

	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := s.companies.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
