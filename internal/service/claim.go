package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bizdir.app/directory/common/id"
	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

// SupersededReason is recorded on pending claims closed by another approval.
const SupersededReason = "another claim was approved"

var (
	ErrClaimNotFound         = errors.New("claim request not found")
	ErrClaimNotPending       = errors.New("claim request is not pending")
	ErrCompanyAlreadyClaimed = errors.New("company has already been claimed")
	ErrDuplicateClaim        = errors.New("a pending claim from this email already exists")
	ErrInvalidClaimStatus    = errors.New("invalid claim status")
)

type ClaimInput struct {
	RequesterName  string
	RequesterEmail string
	RequesterPhone string
	JobTitle       string
	Message        string
}

// Provisioner creates the company's identity-provider organization and
// invites the approved claimant into it.
type Provisioner interface {
	EnsureOrganization(ctx context.Context, company *model.Company) (string, error)
	InviteAdmin(ctx context.Context, organizationID, email string) (*identity.InviteOutcome, error)
}

type ApprovalResult struct {
	Claim          *model.ClaimRequest
	Company        *model.Company
	Invite         *identity.InviteOutcome
	RejectedOthers int
}

type ClaimService interface {
	Submit(ctx context.Context, slug string, in ClaimInput) (*model.ClaimRequest, error)
	List(ctx context.Context, status *model.ClaimStatus, page, perPage int) ([]model.ClaimRequest, int64, error)
	Get(ctx context.Context, id int64) (*model.ClaimRequest, error)
	Approve(ctx context.Context, id int64, reviewer string) (*ApprovalResult, error)
	Reject(ctx context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error)
}

type claimService struct {
	companies   store.CompanyStore
	claims      store.ClaimStore
	txRunner    TxRunner
	provisioner Provisioner
	producer    queue.Producer
	metrics     *metrics.Metrics
}

func NewClaimService(
	companies store.CompanyStore,
	claims store.ClaimStore,
	txRunner TxRunner,
	provisioner Provisioner,
	producer queue.Producer,
	m *metrics.Metrics,
) ClaimService {
	return &claimService{
		companies:   companies,
		claims:      claims,
		txRunner:    txRunner,
		provisioner: provisioner,
		producer:    producer,
		metrics:     m,
	}
}

func (s *claimService) Submit(ctx context.Context, slug string, in ClaimInput) (*model.ClaimRequest, error) {
	email, err := normalizeRequester(in.RequesterName, in.RequesterEmail)
	if err != nil {
		return nil, err
	}

	company, err := s.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	if company.IsClaimed {
		return nil, ErrCompanyAlreadyClaimed
	}

	if _, err := s.claims.GetPendingByCompanyAndEmail(ctx, company.ID, email); err == nil {
		return nil, ErrDuplicateClaim
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking pending claims: %w", err)
	}

	claim := &model.ClaimRequest{
		ID:             id.New(),
		CompanyID:      company.ID,
		RequesterName:  strings.TrimSpace(in.RequesterName),
		RequesterEmail: email,
		RequesterPhone: strings.TrimSpace(in.RequesterPhone),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		Message:        strings.TrimSpace(in.Message),
		Status:         model.ClaimStatusPending,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrDuplicateClaim
		}
		return nil, fmt.Errorf("creating claim request: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &company.ID, ClaimID: &claim.ID})
	slog.InfoContext(ctx, "claim request submitted")

	s.metrics.IncrementClaim("submitted")
	enqueue(ctx, s.producer, queue.ClaimNotificationTask(queue.NotificationClaimSubmitted, company.ID, claim.ID))

	return claim, nil
}

func (s *claimService) List(ctx context.Context, status *model.ClaimStatus, page, perPage int) ([]model.ClaimRequest, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidClaimStatus
	}
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, 0, err
	}

	claims, err := s.claims.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing claim requests: %w", err)
	}
	total, err := s.claims.Count(ctx, status)
	if err != nil {
		return nil, 0, fmt.Errorf("counting claim requests: %w", err)
	}
	return claims, total, nil
}

func (s *claimService) Get(ctx context.Context, id int64) (*model.ClaimRequest, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("getting claim request: %w", err)
	}
	return claim, nil
}

// Approve provisions the company's organization, invites the claimant and
// then, in one transaction, marks the company claimed, approves the claim and
// closes every other pending claim for the company. Provisioning is
// idempotent, so a failed approval can simply be retried.
func (s *claimService) Approve(ctx context.Context, id int64, reviewer string) (*ApprovalResult, error) {
	span := logger.StartSpan(ctx, "claim.approve", trace.WithAttributes(
		attribute.Int64("claim.id", id),
		attribute.String("claim.reviewer", reviewer),
	))
	result, err := s.approve(span.Context(), id, reviewer)
	span.Finish(err)
	return result, err
}

func (s *claimService) approve(ctx context.Context, id int64, reviewer string) (*ApprovalResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{ClaimID: &id})

	claim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !claim.IsPending() {
		return nil, ErrClaimNotPending
	}

	company, err := s.companies.GetByID(ctx, claim.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("getting company: %w", err)
	}
	if company.IsClaimed {
		return nil, ErrCompanyAlreadyClaimed
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &company.ID})

	orgID, err := s.provisioner.EnsureOrganization(ctx, company)
	if err != nil {
		s.metrics.IncrementClaim("provisioning_failed")
		return nil, err
	}
	if company.WorkOSOrganizationID == nil || *company.WorkOSOrganizationID != orgID {
		// Persist immediately so a retry after a failed invite reuses the organization.
		if _, err := s.companies.SetOrganizationID(ctx, company.ID, orgID); err != nil {
			return nil, fmt.Errorf("saving organization id: %w", err)
		}
		company.WorkOSOrganizationID = &orgID
	}

	invite, err := s.provisioner.InviteAdmin(ctx, orgID, claim.RequesterEmail)
	if err != nil {
		s.metrics.IncrementClaim("provisioning_failed")
		return nil, err
	}

	var invitationID *string
	if invite.InvitationID != "" {
		invitationID = &invite.InvitationID
	}

	result := &ApprovalResult{Invite: invite}
	var rejected []model.ClaimRequest
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		locked, err := sp.Claims().GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClaimNotFound
			}
			return fmt.Errorf("locking claim request: %w", err)
		}
		if !locked.IsPending() {
			return ErrClaimNotPending
		}

		claimed, err := sp.Companies().MarkClaimed(ctx, company.ID, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyAlreadyClaimed
			}
			return fmt.Errorf("marking company claimed: %w", err)
		}

		approved, err := sp.Claims().Approve(ctx, id, reviewer, invitationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClaimNotPending
			}
			return fmt.Errorf("approving claim request: %w", err)
		}

		rejected, err = sp.Claims().RejectOtherPending(ctx, company.ID, id, reviewer, SupersededReason)
		if err != nil {
			return fmt.Errorf("rejecting other pending claims: %w", err)
		}

		result.Claim = approved
		result.Company = claimed
		result.RejectedOthers = len(rejected)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim request approved",
		"reviewer", reviewer,
		"organization_id", orgID,
		"already_member", invite.AlreadyMember,
		"reused_invitation", invite.Reused,
		"rejected_others", len(rejected))

	s.metrics.IncrementClaim("approved")
	enqueue(ctx, s.producer, queue.ClaimNotificationTask(queue.NotificationClaimApproved, company.ID, id))
	for _, r := range rejected {
		enqueue(ctx, s.producer, queue.ClaimNotificationTask(queue.NotificationClaimRejected, company.ID, r.ID))
	}
	enqueue(ctx, s.producer, queue.CompanyIndexTask(company.ID))

	return result, nil
}

func (s *claimService) Reject(ctx context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error) {
	claim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !claim.IsPending() {
		return nil, ErrClaimNotPending
	}

	rejected, err := s.claims.Reject(ctx, id, reviewer, strings.TrimSpace(reason))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClaimNotPending
		}
		return nil, fmt.Errorf("rejecting claim request: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CompanyID: &claim.CompanyID, ClaimID: &id})
	slog.InfoContext(ctx, "claim request rejected", "reviewer", reviewer)

	s.metrics.IncrementClaim("rejected")
	enqueue(ctx, s.producer, queue.ClaimNotificationTask(queue.NotificationClaimRejected, claim.CompanyID, id))

	return rejected, nil
}
