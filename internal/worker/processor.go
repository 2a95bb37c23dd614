package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/notify"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

const defaultReindexBatch = 200

var ErrUnknownTaskType = errors.New("unknown task type")

type ProcessorConfig struct {
	// AdminEmails receive claim_submitted notifications.
	AdminEmails []string
	BaseURL     string
	BatchSize   int32
}

// Processor handles index and notification tasks.
type Processor struct {
	companies   store.CompanyStore
	claims      store.ClaimStore
	quotes      store.QuoteStore
	indexer     index.Indexer
	notifier    notify.Notifier
	renderer    notify.Renderer
	adminEmails []string
	batchSize   int32
}

func NewProcessor(
	companies store.CompanyStore,
	claims store.ClaimStore,
	quotes store.QuoteStore,
	indexer index.Indexer,
	notifier notify.Notifier,
	cfg ProcessorConfig,
) *Processor {
	if indexer == nil {
		indexer = index.NewNoopIndexer()
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultReindexBatch
	}
	return &Processor{
		companies:   companies,
		claims:      claims,
		quotes:      quotes,
		indexer:     indexer,
		notifier:    notifier,
		renderer:    notify.Renderer{BaseURL: cfg.BaseURL},
		adminEmails: cfg.AdminEmails,
		batchSize:   batch,
	}
}

func (p *Processor) Handle(ctx context.Context, task queue.Task) error {
	switch task.TaskType {
	case queue.TaskTypeCompanyIndex:
		if task.CompanyID == nil {
			return errMissing(task, "company_id")
		}
		return p.indexCompany(ctx, *task.CompanyID)
	case queue.TaskTypeReindexAll:
		return p.reindexAll(ctx)
	case queue.TaskTypeNotification:
		if task.CompanyID == nil {
			return errMissing(task, "company_id")
		}
		return p.sendNotification(ctx, task)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTaskType, task.TaskType)
	}
}

// indexCompany upserts the company document, or removes it when the company
// no longer exists or was deleted.
func (p *Processor) indexCompany(ctx context.Context, companyID int64) error {
	if !p.indexer.Enabled() {
		return nil
	}

	company, err := p.companies.GetByID(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		if err := p.indexer.Remove(ctx, companyID); err != nil {
			return fmt.Errorf("removing company from index: %w", err)
		}
		slog.InfoContext(ctx, "company removed from index")
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting company: %w", err)
	}

	if err := p.indexer.Index(ctx, company); err != nil {
		return fmt.Errorf("indexing company: %w", err)
	}
	slog.DebugContext(ctx, "company indexed")
	return nil
}

func (p *Processor) reindexAll(ctx context.Context) error {
	if !p.indexer.Enabled() {
		slog.InfoContext(ctx, "search index disabled, skipping reindex")
		return nil
	}

	if err := p.indexer.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring index schema: %w", err)
	}

	var after int64
	total := 0
	for {
		batch, err := p.companies.ListAfter(ctx, after, p.batchSize)
		if err != nil {
			return fmt.Errorf("listing companies after %d: %w", after, err)
		}
		for i := range batch {
			if err := p.indexer.Index(ctx, &batch[i]); err != nil {
				return fmt.Errorf("indexing company %d: %w", batch[i].ID, err)
			}
		}
		total += len(batch)
		if int32(len(batch)) < p.batchSize {
			break
		}
		after = batch[len(batch)-1].ID
	}

	slog.InfoContext(ctx, "search index rebuilt", "companies", total)
	return nil
}

func (p *Processor) sendNotification(ctx context.Context, task queue.Task) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{QuoteID: task.QuoteID, ClaimID: task.ClaimID})

	company, err := p.companies.GetByID(ctx, *task.CompanyID)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "company gone, dropping notification", "kind", task.Kind)
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting company: %w", err)
	}

	email, err := p.render(ctx, task, company)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "notification subject gone, dropping notification", "kind", task.Kind)
		return nil
	}
	if err != nil {
		return err
	}

	if len(email.To) == 0 {
		slog.WarnContext(ctx, "notification has no recipients", "kind", task.Kind)
		return nil
	}

	if err := p.notifier.Send(ctx, email); err != nil {
		return fmt.Errorf("sending %s notification: %w", task.Kind, err)
	}
	slog.InfoContext(ctx, "notification sent", "kind", task.Kind, "recipients", len(email.To))
	return nil
}

func (p *Processor) render(ctx context.Context, task queue.Task, company *model.Company) (notify.Email, error) {
	if task.Kind == queue.NotificationQuoteSubmitted {
		if task.QuoteID == nil {
			return notify.Email{}, errMissing(task, "quote_id")
		}
		quote, err := p.quotes.GetForCompany(ctx, *task.QuoteID, company.ID)
		if err != nil {
			return notify.Email{}, fmt.Errorf("getting quote request: %w", err)
		}
		return p.renderer.QuoteSubmitted(company, quote)
	}

	if task.ClaimID == nil {
		return notify.Email{}, errMissing(task, "claim_id")
	}
	claim, err := p.claims.GetByID(ctx, *task.ClaimID)
	if err != nil {
		return notify.Email{}, fmt.Errorf("getting claim request: %w", err)
	}

	switch task.Kind {
	case queue.NotificationClaimSubmitted:
		return p.renderer.ClaimSubmitted(company, claim, p.adminEmails)
	case queue.NotificationClaimApproved:
		return p.renderer.ClaimApproved(company, claim)
	case queue.NotificationClaimRejected:
		return p.renderer.ClaimRejected(company, claim)
	}
	return notify.Email{}, fmt.Errorf("unknown notification kind %q", task.Kind)
}

func errMissing(task queue.Task, field string) error {
	return fmt.Errorf("%s task without %s", task.TaskType, field)
}
