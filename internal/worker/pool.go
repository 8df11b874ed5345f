package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// maxJobAttempts bounds the in-process retries of a single job before it is
// handed to the dead letter queue.
const maxJobAttempts = 3

// WorkerHandlers holds the per-queue job processors, wired at the
// composition root so they have full access to infrastructure deps.
type WorkerHandlers struct {
	InvoicePDF *InvoicePDFWorker
	Email      *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueInvoicePDF, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", json.RawMessage(raw), "unmarshal failure", 1)
		return
	}

	var procErr error
	switch queue {
	case QueueInvoicePDF:
		procErr = handlers.InvoicePDF.Process(ctx, job.Payload)
	case QueueEmail:
		procErr = handlers.Email.Process(ctx, job.Payload)
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}
	if procErr != nil {
		log.Error().Err(procErr).Str("queue", queue).Str("type", job.Type).Msg("job failed, moving to DLQ")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, procErr.Error(), maxJobAttempts)
	}
}
