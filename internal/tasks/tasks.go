// Package tasks wires the asynq background worker that keeps payment statuses
// honest: pending bills past their due date get flagged overdue on a schedule.
package tasks

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"primero/rentdesk/internal/config"
	"primero/rentdesk/internal/services"
)

// TypeOverdueSweep is the task type for the overdue bill sweep.
const TypeOverdueSweep = "billing:overdue:sweep"

// NewOverdueSweepTask creates the sweep task. It carries no payload; the
// handler reads the clock itself.
func NewOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueSweep, nil)
}

// RedisOpt builds the asynq Redis connection options from config.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewClient creates an asynq client for enqueueing tasks.
func NewClient(cfg *config.Config) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// TaskProcessor handles background tasks.
type TaskProcessor struct {
	paymentService services.IPaymentService
}

// NewTaskProcessor creates a new TaskProcessor.
func NewTaskProcessor(paymentService services.IPaymentService) *TaskProcessor {
	return &TaskProcessor{paymentService: paymentService}
}

// HandleOverdueSweepTask flags pending bills past their due date as overdue.
func (p *TaskProcessor) HandleOverdueSweepTask(ctx context.Context, t *asynq.Task) error {
	flagged, err := p.paymentService.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Error: overdue sweep failed: %v", err)
		return err
	}
	if flagged > 0 {
		log.Printf("Overdue sweep flagged %d bill(s)", flagged)
	}
	return nil
}

// SetupServer creates and configures the asynq server and its mux.
func SetupServer(cfg *config.Config, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOverdueSweep, processor.HandleOverdueSweepTask)

	return srv, mux
}

// StartPeriodicEnqueuer enqueues the overdue sweep on the configured interval
// until ctx is cancelled. One sweep is enqueued immediately on startup.
func StartPeriodicEnqueuer(ctx context.Context, cfg *config.Config, client *asynq.Client) {
	enqueue := func() {
		if _, err := client.Enqueue(NewOverdueSweepTask()); err != nil {
			log.Printf("Warning: failed to enqueue overdue sweep: %v", err)
		}
	}

	go func() {
		enqueue()
		ticker := time.NewTicker(cfg.OverdueSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				enqueue()
			}
		}
	}()
}
