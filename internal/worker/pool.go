package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReceipt = "jobs:receipt"
	QueueEmail   = "jobs:email"

	JobReceipt = "receipt"
	JobEmail   = "email"

	maxEmailAttempts = 3
)

// errorBackoff pauses a worker after a Redis error so an outage does not spin the loop.
var errorBackoff = 2 * time.Second

// popBackoff is zero for an empty-queue timeout and errorBackoff for anything else.
func popBackoff(err error) time.Duration {
	if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
		return 0
	}
	return errorBackoff
}

// maxAttempts per job type; types not listed get a single attempt.
var maxAttempts = map[string]int{
	JobEmail: maxEmailAttempts,
}

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error triggers a retry or,
// once attempts are exhausted, a move to the dead letter queue.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists and routes dequeued jobs to
// registered handlers. A nil Dispatcher, or one without Redis, drops every job.
type Dispatcher struct {
	rdb      *redis.Client
	handlers map[string]Handler
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb, handlers: make(map[string]Handler)}
}

// Enabled reports whether jobs are actually queued.
func (d *Dispatcher) Enabled() bool { return d != nil && d.rdb != nil }

// Handle registers the handler for a job type. Call before StartWorkerPool.
func (d *Dispatcher) Handle(jobType string, h Handler) {
	d.handlers[jobType] = h
}

// EnqueueReceipt queues PDF rendering and delivery of a payment receipt.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, paymentID, orderID uint, toEmail string) error {
	return d.enqueue(ctx, QueueReceipt, Job{Type: JobReceipt}, ReceiptJobPayload{
		PaymentID: paymentID,
		OrderID:   orderID,
		ToEmail:   toEmail,
	})
}

// EnqueueEmail queues an outbound e-mail.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, Job{Type: JobEmail}, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue string, job Job, payload interface{}) error {
	if !d.Enabled() {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job.Payload = data
	return d.push(ctx, queue, job)
}

func (d *Dispatcher) push(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP and exits when ctx is cancelled.
func StartWorkerPool(ctx context.Context, d *Dispatcher, numWorkers int) {
	if !d.Enabled() {
		log.Warn().Msg("worker pool disabled: redis not configured")
		return
	}
	for i := 0; i < numWorkers; i++ {
		go d.runWorker(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool started")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	queues := []string{QueueReceipt, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := d.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if wait := popBackoff(err); wait > 0 {
					log.Error().Err(err).Int("worker", id).Dur("backoff", wait).Msg("queue pop failed")
					select {
					case <-ctx.Done():
					case <-time.After(wait):
					}
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			d.processJob(ctx, result[0], result[1])
		}
	}
}

func (d *Dispatcher) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	h, ok := d.handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, d.rdb, queue, job.Type, job.Payload, "no handler registered", job.Attempts)
		return
	}

	err := h(ctx, job.Payload)
	if err == nil {
		return
	}

	job.Attempts++
	limit := maxAttempts[job.Type]
	if limit < 1 {
		limit = 1
	}
	if job.Attempts >= limit {
		SendToDLQ(ctx, d.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	log.Warn().
		Err(err).
		Str("queue", queue).
		Str("job_type", job.Type).
		Int("attempts", job.Attempts).
		Msg("job failed, requeued")
	if pushErr := d.push(ctx, queue, job); pushErr != nil {
		SendToDLQ(ctx, d.rdb, queue, job.Type, job.Payload, fmt.Sprintf("requeue failed: %v", pushErr), job.Attempts)
	}
}
