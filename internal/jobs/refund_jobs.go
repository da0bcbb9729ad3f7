package jobs

import (
	"context"
	"time"

	"partyhub-backend/internal/logger"
)

// RetryPendingRefunds drains the refund intents recorded by cancellation
// cascades. Each intent is handed to the external payment provider; failures
// stay pending until the attempt budget runs out, then the intent is marked
// failed for manual follow-up.
func (j *JobRunner) RetryPendingRefunds() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	intents, err := j.refundRepo.ListPending(ctx, j.cfg.Refund.BatchSize)
	if err != nil {
		logger.Error("failed to list pending refunds", "error", err)
		return
	}
	if len(intents) == 0 {
		return
	}
	logger.Info("processing pending refunds", "count", len(intents))

	for _, intent := range intents {
		err := j.payments.RefundTicket(ctx, intent.GuestID, intent.PartyID, intent.AmountCents)
		if err == nil {
			if err := j.refundRepo.MarkCompleted(ctx, intent.ID); err != nil {
				logger.Error("failed to mark refund completed", "refund_id", intent.ID, "error", err)
			}
			continue
		}

		attempts := intent.Attempts + 1
		logger.Warn("refund attempt failed", "refund_id", intent.ID, "attempt", attempts, "error", err)
		if attempts >= j.cfg.Refund.MaxAttempts {
			if err := j.refundRepo.MarkFailed(ctx, intent.ID); err != nil {
				logger.Error("failed to mark refund failed", "refund_id", intent.ID, "error", err)
			}
			continue
		}
		if err := j.refundRepo.RecordAttempt(ctx, intent.ID, attempts); err != nil {
			logger.Error("failed to record refund attempt", "refund_id", intent.ID, "error", err)
		}
	}
}
