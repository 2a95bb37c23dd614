package worker_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"bizdir.app/directory/internal/model"
	"bizdir.app/directory/internal/notify"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/store"
)

type mockConsumer struct {
	mu       sync.Mutex
	readFn   func(ctx context.Context) ([]queue.Message, error)
	acked    []string
	requeued []string
	dlq      []string
	lastErr  string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg.ID)
	m.lastErr = errMsg
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	m.lastErr = errMsg
	return nil
}

type handlerFunc func(ctx context.Context, task queue.Task) error

func (f handlerFunc) Handle(ctx context.Context, task queue.Task) error { return f(ctx, task) }

type fakeCompanies struct {
	store.CompanyStore
	byID    map[int64]*model.Company
	getErr  error
	listErr error
}

func (f *fakeCompanies) GetByID(_ context.Context, id int64) (*model.Company, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byID[id]
	if !ok || c.IsDeleted {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanies) ListAfter(_ context.Context, afterID int64, limit int32) ([]model.Company, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.byID))
	for id, c := range f.byID {
		if id > afterID && !c.IsDeleted {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if int32(len(ids)) > limit {
		ids = ids[:limit]
	}
	out := make([]model.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

type fakeClaims struct {
	store.ClaimStore
	byID map[int64]*model.ClaimRequest
}

func (f *fakeClaims) GetByID(_ context.Context, id int64) (*model.ClaimRequest, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, store.ErrNotFound
}

type fakeQuotes struct {
	store.QuoteStore
	byID map[int64]*model.QuoteRequest
}

func (f *fakeQuotes) GetForCompany(_ context.Context, id, companyID int64) (*model.QuoteRequest, error) {
	if q, ok := f.byID[id]; ok && q.CompanyID == companyID {
		return q, nil
	}
	return nil, store.ErrNotFound
}

type fakeIndexer struct {
	enabled     bool
	indexed     []int64
	removed     []int64
	ensureCalls int
	indexErr    error
}

func (f *fakeIndexer) Enabled() bool { return f.enabled }

func (f *fakeIndexer) EnsureSchema(context.Context) error {
	f.ensureCalls++
	return nil
}

func (f *fakeIndexer) Index(_ context.Context, c *model.Company) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, c.ID)
	return nil
}

func (f *fakeIndexer) Remove(_ context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

type fakeNotifier struct {
	sent []notify.Email
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, email notify.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

var errBoom = errors.New("boom")
