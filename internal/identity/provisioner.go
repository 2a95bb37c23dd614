package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/model"
)

var ErrProvisioning = errors.New("identity provider provisioning failed")

// InviteOutcome reports how the claimant ended up with access.
type InviteOutcome struct {
	// InvitationID is empty when the user was already a member.
	InvitationID  string
	AlreadyMember bool
	Reused        bool
}

// Provisioner drives organization creation and invitations with
// pattern-based retries on top of a Provider.
type Provisioner struct {
	provider      Provider
	metrics       *metrics.Metrics
	backoff       []time.Duration
	expiresInDays int
	sleep         func(ctx context.Context, d time.Duration) error
}

type ProvisionerOption func(*Provisioner)

// WithBackoff overrides the delays between transient retries. The number of
// attempts is len(delays)+1.
func WithBackoff(delays ...time.Duration) ProvisionerOption {
	return func(p *Provisioner) {
		p.backoff = delays
	}
}

func WithInviteExpiryDays(days int) ProvisionerOption {
	return func(p *Provisioner) {
		p.expiresInDays = days
	}
}

func NewProvisioner(provider Provider, m *metrics.Metrics, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		provider:      provider,
		metrics:       m,
		backoff:       []time.Duration{250 * time.Millisecond, time.Second},
		expiresInDays: 7,
		sleep:         sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureOrganization returns the company's organization ID, creating the
// organization when the company has none. The slug is the idempotency key
// so a repeated approval never creates a second organization.
func (p *Provisioner) EnsureOrganization(ctx context.Context, company *model.Company) (string, error) {
	if company.WorkOSOrganizationID != nil && *company.WorkOSOrganizationID != "" {
		return *company.WorkOSOrganizationID, nil
	}

	in := CreateOrganizationInput{
		Name:           company.Name,
		IdempotencyKey: "company-" + company.Slug,
		Domain:         WebsiteDomain(company.Website),
	}

	var org *Organization
	err := p.retry(ctx, "create_organization", func() error {
		var err error
		org, err = p.provider.CreateOrganization(ctx, in)
		if err != nil && in.Domain != "" && Classify(err) == KindDomainConflict {
			slog.WarnContext(ctx, "organization domain already claimed, retrying without domain",
				"domain", in.Domain,
				"company_slug", company.Slug,
			)
			in.Domain = ""
			in.IdempotencyKey += "-nodomain"
			org, err = p.provider.CreateOrganization(ctx, in)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: creating organization: %w", ErrProvisioning, err)
	}
	return org.ID, nil
}

// InviteAdmin invites email to the organization as an admin. Being already a
// member or already invited both count as success.
func (p *Provisioner) InviteAdmin(ctx context.Context, organizationID, email string) (*InviteOutcome, error) {
	var outcome *InviteOutcome
	err := p.retry(ctx, "send_invitation", func() error {
		inv, err := p.provider.SendInvitation(ctx, InviteInput{
			Email:          email,
			OrganizationID: organizationID,
			Role:           RoleAdmin,
			ExpiresInDays:  p.expiresInDays,
		})
		if err == nil {
			outcome = &InviteOutcome{InvitationID: inv.ID}
			return nil
		}

		switch Classify(err) {
		case KindAlreadyMember:
			slog.InfoContext(ctx, "claimant already a member of organization", "organization_id", organizationID)
			outcome = &InviteOutcome{AlreadyMember: true}
			return nil
		case KindAlreadyInvited:
			existing, findErr := p.provider.FindPendingInvitation(ctx, organizationID, email)
			if findErr != nil {
				return findErr
			}
			outcome = &InviteOutcome{Reused: true}
			if existing != nil {
				outcome.InvitationID = existing.ID
			}
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sending invitation: %w", ErrProvisioning, err)
	}
	return outcome, nil
}

func (p *Provisioner) retry(ctx context.Context, operation string, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			p.metrics.IncrementIdentityCall(operation, "ok")
			return nil
		}

		kind := Classify(err)
		p.metrics.IncrementIdentityCall(operation, kind.String())
		if kind != KindTransient || attempt >= len(p.backoff) {
			return err
		}

		slog.WarnContext(ctx, "transient identity provider error, retrying",
			"operation", operation,
			"attempt", attempt+1,
			"error", err,
		)
		if sleepErr := p.sleep(ctx, p.backoff[attempt]); sleepErr != nil {
			return errors.Join(err, sleepErr)
		}
	}
}

// WebsiteDomain extracts the bare host of a company website, without "www.".
func WebsiteDomain(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return ""
	}
	return host
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
