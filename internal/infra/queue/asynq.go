package queue

import (
	"context"
	"fmt"
	"time"

	"storemail/internal/domain/customer"

	"github.com/hibiken/asynq"
)

// EventsQueue carries store domain events.
const EventsQueue = "events"

var _ customer.Publisher = (*Publisher)(nil)

// RedisOpt builds the asynq redis connection options.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
}

// NewServer creates a new asynq server consuming the events queue.
func NewServer(opt asynq.RedisClientOpt, concurrency int) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			EventsQueue: 10, // priority weight
			"default":   1,
		},
		RetryDelayFunc: RetryDelay,
	})
}

// RetryDelay backs off exponentially: 30s, 60s, 120s, 240s, 480s.
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 1 {
		n = 1
	}
	return time.Duration(30*(1<<uint(n-1))) * time.Second
}

// NewMux routes customer events to the workflow.
func NewMux(wf *customer.Workflow) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(customer.TaskTypeRegistered, wf.ProcessTask)
	return mux
}

// Publisher enqueues customer events as asynq tasks.
type Publisher struct {
	client   *asynq.Client
	maxRetry int
}

// NewPublisher creates a Publisher connected to Redis.
func NewPublisher(opt asynq.RedisClientOpt, maxRetry int) *Publisher {
	return &Publisher{client: asynq.NewClient(opt), maxRetry: maxRetry}
}

// PublishCustomerRegistered enqueues a customer.registered task.
func (p *Publisher) PublishCustomerRegistered(ctx context.Context, id string) error {
	task, err := customer.NewRegisteredTask(id)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	_, err = p.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(p.maxRetry),
		asynq.Queue(EventsQueue),
	)
	if err != nil {
		return fmt.Errorf("enqueuing task: %w", err)
	}

	return nil
}

// Close closes the underlying redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
