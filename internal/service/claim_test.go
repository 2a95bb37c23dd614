package service_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/service"
	"bizdir.app/directory/internal/store"
)

var _ = Describe("ClaimService", func() {
	var (
		ctx         context.Context
		companies   *mockCompanyStore
		claims      *mockClaimStore
		producer    *mockProducer
		provisioner *mockProvisioner
		svc         service.ClaimService
		company     *model.Company
		pending     *model.ClaimRequest
	)

	BeforeEach(func() {
		ctx = context.Background()
		company = &model.Company{ID: 10, Name: "Acme Plumbing", Slug: "acme-plumbing"}
		pending = &model.ClaimRequest{ID: 100, CompanyID: 10, RequesterEmail: "owner@acme.ca", Status: model.ClaimStatusPending}

		companies = &mockCompanyStore{
			getBySlugFn: func(_ context.Context, slug string) (*model.Company, error) {
				if slug == company.Slug {
					return company, nil
				}
				return nil, store.ErrNotFound
			},
			getByIDFn: func(_ context.Context, id int64) (*model.Company, error) {
				if id == company.ID {
					return company, nil
				}
				return nil, store.ErrNotFound
			},
		}
		claims = &mockClaimStore{
			getByIDFn: func(_ context.Context, id int64) (*model.ClaimRequest, error) {
				if id == pending.ID {
					return pending, nil
				}
				return nil, store.ErrNotFound
			},
		}
		producer = &mockProducer{}
		provisioner = &mockProvisioner{}
		sp := &mockStoreProvider{companies: companies, claims: claims}
		svc = service.NewClaimService(companies, claims, txOver(sp), provisioner, producer, nil)
	})

	Describe("Submit", func() {
		input := service.ClaimInput{RequesterName: "Sam Owner", RequesterEmail: "Owner@Acme.ca", JobTitle: "Owner"}

		It("creates a pending claim and notifies admins", func() {
			claims.createFn = func(_ context.Context, c *model.ClaimRequest) error {
				Expect(c.Status).To(Equal(model.ClaimStatusPending))
				Expect(c.RequesterEmail).To(Equal("owner@acme.ca"))
				return nil
			}

			c, err := svc.Submit(ctx, "acme-plumbing", input)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.CompanyID).To(Equal(int64(10)))
			Expect(producer.tasks).To(HaveLen(1))
			Expect(producer.tasks[0].Kind).To(Equal(queue.NotificationClaimSubmitted))
		})

		It("rejects claims on already claimed companies", func() {
			company.IsClaimed = true
			_, err := svc.Submit(ctx, "acme-plumbing", input)
			Expect(err).To(MatchError(service.ErrCompanyAlreadyClaimed))
			Expect(claims.createCalls).To(BeZero())
		})

		It("rejects a second pending claim from the same email", func() {
			claims.getPendingFn = func(_ context.Context, companyID int64, email string) (*model.ClaimRequest, error) {
				Expect(email).To(Equal("owner@acme.ca"))
				return pending, nil
			}
			_, err := svc.Submit(ctx, "acme-plumbing", input)
			Expect(err).To(MatchError(service.ErrDuplicateClaim))
		})

		It("returns not found for unknown companies", func() {
			_, err := svc.Submit(ctx, "unknown", input)
			Expect(err).To(MatchError(service.ErrCompanyNotFound))
		})
	})

	Describe("Approve", func() {
		It("provisions, invites and commits the approval", func() {
			provisioner.inviteFn = func(_ context.Context, orgID, email string) (*identity.InviteOutcome, error) {
				Expect(orgID).To(Equal("org_1"))
				Expect(email).To(Equal("owner@acme.ca"))
				return &identity.InviteOutcome{InvitationID: "inv_7"}, nil
			}
			claims.approveFn = func(_ context.Context, id int64, reviewer string, invitationID *string) (*model.ClaimRequest, error) {
				Expect(id).To(Equal(int64(100)))
				Expect(reviewer).To(Equal("admin@directory.example"))
				Expect(*invitationID).To(Equal("inv_7"))
				return &model.ClaimRequest{ID: id, CompanyID: 10, Status: model.ClaimStatusApproved}, nil
			}
			claims.rejectOtherFn = func(_ context.Context, companyID, keepID int64, _ string, reason string) ([]model.ClaimRequest, error) {
				Expect(companyID).To(Equal(int64(10)))
				Expect(keepID).To(Equal(int64(100)))
				Expect(reason).To(Equal(service.SupersededReason))
				return []model.ClaimRequest{{ID: 101}, {ID: 102}}, nil
			}

			res, err := svc.Approve(ctx, 100, "admin@directory.example")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Claim.Status).To(Equal(model.ClaimStatusApproved))
			Expect(res.Company.IsClaimed).To(BeTrue())
			Expect(res.RejectedOthers).To(Equal(2))
			Expect(companies.setOrgIDCalls).To(Equal(1))
			Expect(producer.taskTypes()).To(Equal([]queue.TaskType{
				queue.TaskTypeNotification,
				queue.TaskTypeNotification,
				queue.TaskTypeNotification,
				queue.TaskTypeCompanyIndex,
			}))
			Expect(producer.tasks[0].Kind).To(Equal(queue.NotificationClaimApproved))
			Expect(producer.tasks[1].Kind).To(Equal(queue.NotificationClaimRejected))
		})

		It("does not store the organization again when already linked", func() {
			company.WorkOSOrganizationID = strPtr("org_1")

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(companies.setOrgIDCalls).To(BeZero())
		})

		It("records no invitation when the claimant is already a member", func() {
			provisioner.inviteFn = func(context.Context, string, string) (*identity.InviteOutcome, error) {
				return &identity.InviteOutcome{AlreadyMember: true}, nil
			}
			claims.approveFn = func(_ context.Context, id int64, _ string, invitationID *string) (*model.ClaimRequest, error) {
				Expect(invitationID).To(BeNil())
				return &model.ClaimRequest{ID: id, Status: model.ClaimStatusApproved}, nil
			}

			res, err := svc.Approve(ctx, 100, "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Invite.AlreadyMember).To(BeTrue())
		})

		It("refuses claims that are no longer pending", func() {
			pending.Status = model.ClaimStatusRejected
			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(service.ErrClaimNotPending))
			Expect(provisioner.ensureCalls).To(BeZero())
		})

		It("refuses companies that are already claimed", func() {
			company.IsClaimed = true
			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(service.ErrCompanyAlreadyClaimed))
		})

		It("returns not found for unknown claims", func() {
			_, err := svc.Approve(ctx, 999, "admin")
			Expect(err).To(MatchError(service.ErrClaimNotFound))
		})

		It("stops before the transaction when provisioning fails", func() {
			provisioner.ensureOrgFn = func(context.Context, *model.Company) (string, error) {
				return "", fmt.Errorf("%w: creating organization: boom", identity.ErrProvisioning)
			}

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(identity.ErrProvisioning))
			Expect(provisioner.inviteCalls).To(BeZero())
			Expect(claims.approveCalls).To(BeZero())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("keeps the organization when the invitation fails", func() {
			provisioner.inviteFn = func(context.Context, string, string) (*identity.InviteOutcome, error) {
				return nil, identity.ErrProvisioning
			}

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(identity.ErrProvisioning))
			Expect(companies.setOrgIDCalls).To(Equal(1))
			Expect(claims.approveCalls).To(BeZero())
		})

		It("detects a concurrent approval inside the transaction", func() {
			claims.getForUpdateFn = func(_ context.Context, id int64) (*model.ClaimRequest, error) {
				return &model.ClaimRequest{ID: id, Status: model.ClaimStatusApproved}, nil
			}

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(service.ErrClaimNotPending))
			Expect(claims.approveCalls).To(BeZero())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("detects a company claimed concurrently", func() {
			companies.markClaimedFn = func(context.Context, int64, string) (*model.Company, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(service.ErrCompanyAlreadyClaimed))
		})

		It("propagates tx runner errors", func() {
			txErr := errors.New("tx failed")
			svc = service.NewClaimService(companies, claims, &mockTxRunner{
				withTxFn: func(context.Context, func(service.StoreProvider) error) error {
					return txErr
				},
			}, provisioner, producer, nil)

			_, err := svc.Approve(ctx, 100, "admin")
			Expect(err).To(MatchError(txErr))
		})
	})

	Describe("Reject", func() {
		It("rejects with a reason and notifies the requester", func() {
			claims.rejectFn = func(_ context.Context, id int64, reviewer, reason string) (*model.ClaimRequest, error) {
				Expect(reason).To(Equal("cannot verify"))
				return &model.ClaimRequest{ID: id, Status: model.ClaimStatusRejected, RejectionReason: &reason}, nil
			}

			c, err := svc.Reject(ctx, 100, "admin", "  cannot verify ")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Status).To(Equal(model.ClaimStatusRejected))
			Expect(producer.tasks).To(HaveLen(1))
			Expect(producer.tasks[0].Kind).To(Equal(queue.NotificationClaimRejected))
		})

		It("maps a lost race to not pending", func() {
			claims.rejectFn = func(context.Context, int64, string, string) (*model.ClaimRequest, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Reject(ctx, 100, "admin", "")
			Expect(err).To(MatchError(service.ErrClaimNotPending))
		})
	})

	It("validates the status filter when listing", func() {
		bad := model.ClaimStatus("archived")
		_, _, err := svc.List(ctx, &bad, 1, 20)
		Expect(err).To(MatchError(service.ErrInvalidClaimStatus))
	})
})
