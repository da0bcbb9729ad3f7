package jobs

import (
	"partyhub-backend/internal/config"
	"partyhub-backend/internal/repository"
	"partyhub-backend/internal/service"
)

// JobRunner holds the dependencies the scheduled jobs need.
type JobRunner struct {
	partyRepo  repository.PartyRepository
	refundRepo repository.RefundRepository
	ratings    service.RatingService
	payments   service.PaymentProvider
	cfg        *config.Config
}

func NewJobRunner(
	partyRepo repository.PartyRepository,
	refundRepo repository.RefundRepository,
	ratings service.RatingService,
	payments service.PaymentProvider,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		partyRepo:  partyRepo,
		refundRepo: refundRepo,
		ratings:    ratings,
		payments:   payments,
		cfg:        cfg,
	}
}

// Config exposes the loaded configuration for schedule registration.
func (j *JobRunner) Config() *config.Config {
	return j.cfg
}
