package worker_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/worker"
)

var _ = Describe("Processor", func() {
	var (
		ctx       context.Context
		companies *fakeCompanies
		claims    *fakeClaims
		quotes    *fakeQuotes
		indexer   *fakeIndexer
		notifier  *fakeNotifier
		p         *worker.Processor
	)

	BeforeEach(func() {
		ctx = context.Background()
		companies = &fakeCompanies{byID: map[int64]*model.Company{
			1: {ID: 1, Name: "Acme Plumbing", Slug: "acme-plumbing", Email: "office@acme.ca"},
			2: {ID: 2, Name: "Beta Roofing", Slug: "beta-roofing"},
			3: {ID: 3, Name: "Gone Ltd", IsDeleted: true},
			4: {ID: 4, Name: "Delta Electric"},
		}}
		reason := "could not verify ownership"
		claims = &fakeClaims{byID: map[int64]*model.ClaimRequest{
			10: {ID: 10, CompanyID: 1, RequesterName: "Sam", RequesterEmail: "sam@acme.ca", Status: model.ClaimStatusPending},
			11: {ID: 11, CompanyID: 1, RequesterName: "Alex", RequesterEmail: "alex@example.com", Status: model.ClaimStatusRejected, RejectionReason: &reason},
		}}
		quotes = &fakeQuotes{byID: map[int64]*model.QuoteRequest{
			20: {ID: 20, CompanyID: 1, RequesterName: "Jo", RequesterEmail: "jo@example.com", Message: "Leaky faucet"},
			21: {ID: 21, CompanyID: 2, RequesterName: "Kim", RequesterEmail: "kim@example.com"},
		}}
		indexer = &fakeIndexer{enabled: true}
		notifier = &fakeNotifier{}
		p = worker.NewProcessor(companies, claims, quotes, indexer, notifier, worker.ProcessorConfig{
			AdminEmails: []string{"admin@directory.example"},
			BaseURL:     "https://directory.example",
			BatchSize:   2,
		})
	})

	Describe("company_index", func() {
		It("indexes live companies", func() {
			Expect(p.Handle(ctx, queue.CompanyIndexTask(1))).To(Succeed())
			Expect(indexer.indexed).To(Equal([]int64{1}))
		})

		It("removes deleted or missing companies", func() {
			Expect(p.Handle(ctx, queue.CompanyIndexTask(3))).To(Succeed())
			Expect(p.Handle(ctx, queue.CompanyIndexTask(99))).To(Succeed())
			Expect(indexer.removed).To(Equal([]int64{3, 99}))
			Expect(indexer.indexed).To(BeEmpty())
		})

		It("does nothing when the index is disabled", func() {
			indexer.enabled = false
			Expect(p.Handle(ctx, queue.CompanyIndexTask(1))).To(Succeed())
			Expect(indexer.indexed).To(BeEmpty())
		})

		It("returns index failures for retry", func() {
			indexer.indexErr = errBoom
			Expect(p.Handle(ctx, queue.CompanyIndexTask(1))).To(MatchError(errBoom))
		})

		It("rejects tasks without a company", func() {
			Expect(p.Handle(ctx, queue.Task{TaskType: queue.TaskTypeCompanyIndex})).To(HaveOccurred())
		})
	})

	Describe("reindex_all", func() {
		It("ensures the schema and pages through live companies", func() {
			Expect(p.Handle(ctx, queue.ReindexAllTask())).To(Succeed())
			Expect(indexer.ensureCalls).To(Equal(1))
			Expect(indexer.indexed).To(Equal([]int64{1, 2, 4}))
		})

		It("stops on listing errors", func() {
			companies.listErr = errBoom
			Expect(p.Handle(ctx, queue.ReindexAllTask())).To(MatchError(errBoom))
		})
	})

	Describe("notification", func() {
		It("emails the company about a new quote", func() {
			Expect(p.Handle(ctx, queue.QuoteNotificationTask(1, 20))).To(Succeed())
			Expect(notifier.sent).To(HaveLen(1))
			Expect(notifier.sent[0].To).To(Equal([]string{"office@acme.ca"}))
			Expect(notifier.sent[0].Body).To(ContainSubstring("Leaky faucet"))
		})

		It("emails admins about a new claim", func() {
			Expect(p.Handle(ctx, queue.ClaimNotificationTask(queue.NotificationClaimSubmitted, 1, 10))).To(Succeed())
			Expect(notifier.sent[0].To).To(Equal([]string{"admin@directory.example"}))
			Expect(notifier.sent[0].Body).To(ContainSubstring("https://directory.example/admin/claims"))
		})

		It("emails the claimant about the decision", func() {
			Expect(p.Handle(ctx, queue.ClaimNotificationTask(queue.NotificationClaimApproved, 1, 10))).To(Succeed())
			Expect(p.Handle(ctx, queue.ClaimNotificationTask(queue.NotificationClaimRejected, 1, 11))).To(Succeed())
			Expect(notifier.sent).To(HaveLen(2))
			Expect(notifier.sent[0].To).To(Equal([]string{"sam@acme.ca"}))
			Expect(notifier.sent[1].To).To(Equal([]string{"alex@example.com"}))
			Expect(notifier.sent[1].Body).To(ContainSubstring("could not verify ownership"))
		})

		It("drops notifications without recipients", func() {
			Expect(p.Handle(ctx, queue.QuoteNotificationTask(2, 21))).To(Succeed())
			Expect(notifier.sent).To(BeEmpty())
		})

		It("drops notifications whose subject is gone", func() {
			Expect(p.Handle(ctx, queue.QuoteNotificationTask(1, 21))).To(Succeed())
			Expect(p.Handle(ctx, queue.ClaimNotificationTask(queue.NotificationClaimApproved, 3, 10))).To(Succeed())
			Expect(notifier.sent).To(BeEmpty())
		})

		It("returns delivery failures for retry", func() {
			notifier.err = errBoom
			Expect(p.Handle(ctx, queue.QuoteNotificationTask(1, 20))).To(MatchError(errBoom))
		})
	})

	It("rejects unknown task types", func() {
		Expect(p.Handle(ctx, queue.Task{TaskType: "repo_sync"})).To(MatchError(worker.ErrUnknownTaskType))
	})
})
