package identity_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/model"
)

type fakeProvider struct {
	createOrgFn  func(ctx context.Context, in identity.CreateOrganizationInput) (*identity.Organization, error)
	inviteFn     func(ctx context.Context, in identity.InviteInput) (*identity.Invitation, error)
	findFn       func(ctx context.Context, organizationID, email string) (*identity.Invitation, error)
	createInputs []identity.CreateOrganizationInput
	inviteCalls  int
}

func (f *fakeProvider) CreateOrganization(ctx context.Context, in identity.CreateOrganizationInput) (*identity.Organization, error) {
	f.createInputs = append(f.createInputs, in)
	if f.createOrgFn != nil {
		return f.createOrgFn(ctx, in)
	}
	return &identity.Organization{ID: "org_1", Name: in.Name}, nil
}

func (f *fakeProvider) SendInvitation(ctx context.Context, in identity.InviteInput) (*identity.Invitation, error) {
	f.inviteCalls++
	if f.inviteFn != nil {
		return f.inviteFn(ctx, in)
	}
	return &identity.Invitation{ID: "inv_1", Email: in.Email, State: "pending"}, nil
}

func (f *fakeProvider) FindPendingInvitation(ctx context.Context, organizationID, email string) (*identity.Invitation, error) {
	if f.findFn != nil {
		return f.findFn(ctx, organizationID, email)
	}
	return nil, nil
}

func (f *fakeProvider) AuthorizationURL(string) (string, error) { return "", nil }

func (f *fakeProvider) AuthenticateWithCode(context.Context, string) (*identity.AuthResult, error) {
	return nil, nil
}

func (f *fakeProvider) LogoutURL(string) (string, error) { return "", nil }

var _ = Describe("Provisioner", func() {
	var (
		ctx      context.Context
		provider *fakeProvider
		p        *identity.Provisioner
		company  *model.Company
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = &fakeProvider{}
		p = identity.NewProvisioner(provider, nil, identity.WithBackoff(0, 0), identity.WithInviteExpiryDays(14))
		company = &model.Company{ID: 1, Name: "Acme Plumbing", Slug: "acme-plumbing", Website: "https://www.acme.ca/contact"}
	})

	Describe("EnsureOrganization", func() {
		It("reuses an existing organization", func() {
			existing := "org_existing"
			company.WorkOSOrganizationID = &existing

			orgID, err := p.EnsureOrganization(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgID).To(Equal("org_existing"))
			Expect(provider.createInputs).To(BeEmpty())
		})

		It("creates an organization keyed by slug with the website domain", func() {
			orgID, err := p.EnsureOrganization(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgID).To(Equal("org_1"))
			Expect(provider.createInputs).To(HaveLen(1))
			Expect(provider.createInputs[0].IdempotencyKey).To(Equal("company-acme-plumbing"))
			Expect(provider.createInputs[0].Domain).To(Equal("acme.ca"))
		})

		It("retries without the domain on a domain conflict", func() {
			provider.createOrgFn = func(_ context.Context, in identity.CreateOrganizationInput) (*identity.Organization, error) {
				if in.Domain != "" {
					return nil, errors.New("domain acme.ca is already taken")
				}
				return &identity.Organization{ID: "org_2"}, nil
			}

			orgID, err := p.EnsureOrganization(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgID).To(Equal("org_2"))
			Expect(provider.createInputs).To(HaveLen(2))
			Expect(provider.createInputs[1].Domain).To(BeEmpty())
			Expect(provider.createInputs[1].IdempotencyKey).To(Equal("company-acme-plumbing-nodomain"))
		})

		It("retries transient failures until success", func() {
			calls := 0
			provider.createOrgFn = func(_ context.Context, _ identity.CreateOrganizationInput) (*identity.Organization, error) {
				calls++
				if calls < 3 {
					return nil, errors.New("request timed out")
				}
				return &identity.Organization{ID: "org_3"}, nil
			}

			orgID, err := p.EnsureOrganization(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgID).To(Equal("org_3"))
			Expect(calls).To(Equal(3))
		})

		It("gives up after the last transient attempt", func() {
			provider.createOrgFn = func(_ context.Context, _ identity.CreateOrganizationInput) (*identity.Organization, error) {
				return nil, errors.New("service temporarily unavailable")
			}

			_, err := p.EnsureOrganization(ctx, company)
			Expect(err).To(MatchError(identity.ErrProvisioning))
			Expect(provider.createInputs).To(HaveLen(3))
		})

		It("does not retry permanent failures", func() {
			provider.createOrgFn = func(_ context.Context, _ identity.CreateOrganizationInput) (*identity.Organization, error) {
				return nil, errors.New("invalid api key")
			}

			_, err := p.EnsureOrganization(ctx, company)
			Expect(err).To(MatchError(identity.ErrProvisioning))
			Expect(provider.createInputs).To(HaveLen(1))
		})
	})

	Describe("InviteAdmin", func() {
		It("sends an admin invitation", func() {
			provider.inviteFn = func(_ context.Context, in identity.InviteInput) (*identity.Invitation, error) {
				Expect(in.Role).To(Equal(identity.RoleAdmin))
				Expect(in.ExpiresInDays).To(Equal(14))
				Expect(in.OrganizationID).To(Equal("org_1"))
				return &identity.Invitation{ID: "inv_9"}, nil
			}

			out, err := p.InviteAdmin(ctx, "org_1", "owner@acme.ca")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.InvitationID).To(Equal("inv_9"))
			Expect(out.AlreadyMember).To(BeFalse())
		})

		It("treats an existing membership as success", func() {
			provider.inviteFn = func(context.Context, identity.InviteInput) (*identity.Invitation, error) {
				return nil, errors.New("user is already a member of the organization")
			}

			out, err := p.InviteAdmin(ctx, "org_1", "owner@acme.ca")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.AlreadyMember).To(BeTrue())
			Expect(out.InvitationID).To(BeEmpty())
			Expect(provider.inviteCalls).To(Equal(1))
		})

		It("reuses a pending invitation", func() {
			provider.inviteFn = func(context.Context, identity.InviteInput) (*identity.Invitation, error) {
				return nil, errors.New("email has already been invited")
			}
			provider.findFn = func(_ context.Context, orgID, email string) (*identity.Invitation, error) {
				Expect(orgID).To(Equal("org_1"))
				Expect(email).To(Equal("owner@acme.ca"))
				return &identity.Invitation{ID: "inv_old", State: "pending"}, nil
			}

			out, err := p.InviteAdmin(ctx, "org_1", "owner@acme.ca")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Reused).To(BeTrue())
			Expect(out.InvitationID).To(Equal("inv_old"))
		})

		It("wraps permanent failures", func() {
			provider.inviteFn = func(context.Context, identity.InviteInput) (*identity.Invitation, error) {
				return nil, errors.New("email is invalid")
			}

			_, err := p.InviteAdmin(ctx, "org_1", "nope")
			Expect(err).To(MatchError(identity.ErrProvisioning))
			Expect(provider.inviteCalls).To(Equal(1))
		})

		It("stops retrying when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			p = identity.NewProvisioner(provider, nil, identity.WithBackoff(0, 0))
			provider.inviteFn = func(context.Context, identity.InviteInput) (*identity.Invitation, error) {
				return nil, errors.New("connection refused")
			}

			_, err := p.InviteAdmin(cancelled, "org_1", "owner@acme.ca")
			Expect(err).To(HaveOccurred())
			Expect(provider.inviteCalls).To(BeNumerically("<=", 3))
		})
	})
})
