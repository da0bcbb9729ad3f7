package service

import (
	"context"
	"errors"
	"time"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

var ErrInvalidRating = errors.New("rating scores must be between 1 and 5")

type ratingService struct {
	ratingRepo repository.RatingRepository
	partyRepo  repository.PartyRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, partyRepo repository.PartyRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, partyRepo: partyRepo}
}

// RecordRating upserts the guest's rating for an ended party. Only confirmed
// guests may rate, and re-submission overwrites the previous rating instead
// of accumulating a duplicate.
func (s *ratingService) RecordRating(ctx context.Context, guestID string, rating *domain.PartyRating) error {
	if rating.PartyScore < 1 || rating.PartyScore > 5 || rating.HostScore < 1 || rating.HostScore > 5 {
		return ErrInvalidRating
	}

	party, err := s.partyRepo.GetByID(ctx, rating.PartyID)
	if err != nil {
		return err
	}
	if party.Status == domain.PartyStatusCancelled {
		return domain.ErrPartyUnavailable
	}
	if party.Status != domain.PartyStatusEnded {
		return domain.ErrInvalidTransition
	}
	if !party.IsConfirmedGuest(guestID) {
		return domain.ErrUnauthorized
	}

	rating.GuestID = guestID
	rating.HostID = party.HostID
	rating.CreatedAt = time.Now()
	return s.ratingRepo.Upsert(ctx, rating)
}

func (s *ratingService) AggregateForHost(ctx context.Context, hostID string) (*domain.RatingSummary, error) {
	ratings, err := s.ratingRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return summarize(ratings), nil
}

func (s *ratingService) AggregateForParty(ctx context.Context, partyID string) (*domain.RatingSummary, error) {
	ratings, err := s.ratingRepo.ListByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return summarize(ratings), nil
}

// Ratings are low-frequency relative to reads, so aggregates are recomputed
// on demand rather than maintained incrementally.
func summarize(ratings []domain.PartyRating) *domain.RatingSummary {
	summary := &domain.RatingSummary{Count: len(ratings)}
	if len(ratings) == 0 {
		return summary
	}
	var partyTotal, hostTotal int
	for _, rating := range ratings {
		partyTotal += rating.PartyScore
		hostTotal += rating.HostScore
	}
	summary.AvgPartyRating = float64(partyTotal) / float64(len(ratings))
	summary.AvgHostRating = float64(hostTotal) / float64(len(ratings))
	return summary
}
