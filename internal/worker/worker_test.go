package worker_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/worker"
)

func message(id string, attempt int) queue.Message {
	task := queue.CompanyIndexTask(42)
	task.TaskID = "task-" + id
	task.Attempt = attempt
	return queue.Message{ID: id, Task: task}
}

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		consumer *mockConsumer
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
	})

	It("acks messages that succeed", func() {
		var seen queue.Task
		w := worker.New(consumer, handlerFunc(func(_ context.Context, task queue.Task) error {
			seen = task
			return nil
		}), nil, worker.Config{MaxAttempts: 3})

		Expect(w.HandleMessage(ctx, message("1-0", 1))).To(Succeed())
		Expect(seen.TaskID).To(Equal("task-1-0"))
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("requeues failures below the attempt limit", func() {
		w := worker.New(consumer, handlerFunc(func(context.Context, queue.Task) error {
			return errBoom
		}), nil, worker.Config{MaxAttempts: 3})

		Expect(w.HandleMessage(ctx, message("2-0", 2))).To(MatchError(errBoom))
		Expect(consumer.requeued).To(Equal([]string{"2-0"}))
		Expect(consumer.lastErr).To(Equal("boom"))
		Expect(consumer.dlq).To(BeEmpty())
		Expect(consumer.acked).To(BeEmpty())
	})

	It("dead-letters failures at the attempt limit", func() {
		w := worker.New(consumer, handlerFunc(func(context.Context, queue.Task) error {
			return errBoom
		}), nil, worker.Config{MaxAttempts: 3})

		Expect(w.HandleMessage(ctx, message("3-0", 3))).To(HaveOccurred())
		Expect(consumer.dlq).To(Equal([]string{"3-0"}))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("turns handler panics into retries", func() {
		w := worker.New(consumer, handlerFunc(func(context.Context, queue.Task) error {
			panic("nil map")
		}), nil, worker.Config{MaxAttempts: 3})

		err := w.HandleMessage(ctx, message("4-0", 1))
		Expect(err).To(MatchError(ContainSubstring("panic: nil map")))
		Expect(consumer.requeued).To(Equal([]string{"4-0"}))
	})

	It("processes batches until stopped", func() {
		var reads atomic.Int32
		consumer.readFn = func(context.Context) ([]queue.Message, error) {
			if reads.Add(1) == 1 {
				return []queue.Message{message("5-0", 1), message("6-0", 1)}, nil
			}
			time.Sleep(5 * time.Millisecond)
			return nil, nil
		}
		var handled atomic.Int32
		w := worker.New(consumer, handlerFunc(func(context.Context, queue.Task) error {
			handled.Add(1)
			return nil
		}), nil, worker.Config{})

		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		Eventually(handled.Load).Should(Equal(int32(2)))
		w.Stop()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("returns when the context is cancelled", func() {
		consumer.readFn = func(context.Context) ([]queue.Message, error) {
			return nil, errBoom
		}
		w := worker.New(consumer, handlerFunc(func(context.Context, queue.Task) error { return nil }), nil,
			worker.Config{ErrorBackoff: time.Hour})

		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- w.Run(runCtx) }()

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})
