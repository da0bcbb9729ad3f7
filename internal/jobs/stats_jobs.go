package jobs

import (
	"context"
	"time"

	"partyhub-backend/internal/logger"
)

const statsBatchSize = 100

// ProcessEndedPartyStats folds collected ratings into ended party documents
// that have not been processed yet. Parties become immutable after ending
// except for these stat fields.
func (j *JobRunner) ProcessEndedPartyStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	parties, err := j.partyRepo.ListEndedUnprocessed(ctx, statsBatchSize)
	if err != nil {
		logger.Error("failed to list ended parties", "error", err)
		return
	}
	if len(parties) == 0 {
		return
	}
	logger.Info("processing ended party stats", "count", len(parties))

	for _, party := range parties {
		// Only fold stats once every confirmed guest has had a day to rate.
		if party.EndedAt != nil && time.Since(*party.EndedAt) < 24*time.Hour {
			continue
		}
		summary, err := j.ratings.AggregateForParty(ctx, party.ID)
		if err != nil {
			logger.Error("failed to aggregate party ratings", "party_id", party.ID, "error", err)
			continue
		}
		if err := j.partyRepo.MarkStatsProcessed(ctx, party.ID, summary); err != nil {
			logger.Error("failed to mark party stats processed", "party_id", party.ID, "error", err)
		}
	}
}
