package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"partyhub-backend/internal/admission"
	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/logger"
	"partyhub-backend/internal/repository"
)

var ErrInvalidDraft = errors.New("invalid party draft")

const (
	refundCompensationAttempts = 3
	refundCompensationBackoff  = 200 * time.Millisecond
)

// PartyConfig carries the policy knobs for the lifecycle manager.
type PartyConfig struct {
	// ListingFeeSubcredits is deducted from the host's prepaid balance when
	// creating a paid listing.
	ListingFeeSubcredits int64
	// CountUnknownGenders controls whether confirmed guests without a
	// gender on file count toward the ratio-cap denominator.
	CountUnknownGenders bool
}

type partyService struct {
	partyRepo  repository.PartyRepository
	userRepo   repository.UserRepository
	ledger     LedgerService
	dispatcher NotificationDispatcher
	cfg        PartyConfig
}

func NewPartyService(
	partyRepo repository.PartyRepository,
	userRepo repository.UserRepository,
	ledger LedgerService,
	dispatcher NotificationDispatcher,
	cfg PartyConfig,
) PartyService {
	return &partyService{
		partyRepo:  partyRepo,
		userRepo:   userRepo,
		ledger:     ledger,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *partyService) Create(ctx context.Context, hostID string, draft *domain.PartyDraft) (*domain.Party, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// Cheap pre-check for the common case; the authoritative check runs
	// inside the creation transaction.
	active, err := s.partyRepo.HasActiveParty(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.ErrActivePartyExists
	}

	party := &domain.Party{
		ID:               uuid.NewString(),
		HostID:           hostID,
		Title:            draft.Title,
		City:             draft.City,
		Latitude:         draft.Latitude,
		Longitude:        draft.Longitude,
		RadiusMeters:     draft.RadiusMeters,
		StartTime:        draft.StartTime,
		EndTime:          draft.EndTime,
		CreatedAt:        time.Now(),
		TicketPriceCents: draft.TicketPriceCents,
		MaxGuestCount:    draft.MaxGuestCount,
		MaxGenderRatio:   draft.MaxGenderRatio,
		Status:           domain.PartyStatusActive,
	}

	// The listing fee is taken before the party is persisted: creation must
	// not go through unless the deduction succeeds.
	if draft.PaidListing {
		err := s.ledger.DeductSubcredits(ctx, hostID, s.cfg.ListingFeeSubcredits, "Party listing fee", party.ID)
		if err != nil {
			return nil, err
		}
		party.ListingFeePaid = true
	}

	if err := s.partyRepo.Create(ctx, party); err != nil {
		if party.ListingFeePaid {
			// The ledger and the party store share no transaction, so a
			// failed persist after a successful deduction is compensated
			// by refunding the fee.
			if compErr := s.compensateListingFee(ctx, hostID, party.ID); compErr != nil {
				return nil, fmt.Errorf("%w: party creation failed (%v) and listing fee refund did not complete", domain.ErrRefundPending, err)
			}
		}
		return nil, err
	}

	logger.Info("party created", "party_id", party.ID, "host_id", hostID, "paid_listing", party.ListingFeePaid)
	return party, nil
}

func (s *partyService) compensateListingFee(ctx context.Context, hostID, partyID string) error {
	var err error
	for attempt := 1; attempt <= refundCompensationAttempts; attempt++ {
		err = s.ledger.CreditRefund(ctx, hostID, s.cfg.ListingFeeSubcredits, "Listing fee refund (party creation failed)", partyID)
		if err == nil {
			return nil
		}
		logger.Warn("listing fee compensation failed", "host_id", hostID, "party_id", partyID, "attempt", attempt, "error", err)
		select {
		case <-time.After(refundCompensationBackoff * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (s *partyService) Cancel(ctx context.Context, partyID, actorID string) error {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return err
	}
	if party.HostID != actorID {
		return domain.ErrUnauthorized
	}

	requests, alreadyCancelled, err := s.partyRepo.CancelTxn(ctx, partyID)
	if err != nil {
		return err
	}
	if alreadyCancelled {
		// Second cancel is a no-op: no new refunds, no second fanout.
		return nil
	}

	logger.Info("party cancelled", "party_id", partyID, "request_count", len(requests))
	s.dispatcher.Dispatch(ctx, Fanout(party, requests, domain.EventPartyCancelled, ""))
	return nil
}

func (s *partyService) End(ctx context.Context, partyID, actorID string, skipRating bool) error {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return err
	}

	if party.HostID != actorID {
		// A confirmed guest's "I'm done" never mutates the shared party
		// document; it only drives that guest's own rating prompt.
		if !party.IsConfirmedGuest(actorID) {
			return domain.ErrUnauthorized
		}
		if !skipRating {
			s.dispatcher.Dispatch(ctx, Fanout(party, nil, domain.EventRatingRequested, actorID))
		}
		return nil
	}

	ended, err := s.partyRepo.UpdatePartyTxn(ctx, partyID, func(p *domain.Party) error {
		switch p.Status {
		case domain.PartyStatusCancelled, domain.PartyStatusEnded:
			return domain.ErrPartyUnavailable
		}
		now := time.Now()
		p.Status = domain.PartyStatusEnded
		p.EndedAt = &now
		p.EndedBy = actorID
		p.ChatEnded = true
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("party ended", "party_id", partyID, "ended_by", actorID)
	if !skipRating {
		s.dispatcher.Dispatch(ctx, Fanout(ended, nil, domain.EventRatingRequested, ""))
	}
	return nil
}

func (s *partyService) RequestToJoin(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error) {
	gender := domain.GenderUnknown
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		gender = user.Gender
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	req := &domain.GuestRequest{
		UserID:         userID,
		PartyID:        partyID,
		Gender:         gender,
		ApprovalStatus: domain.ApprovalStatusPending,
		PaymentStatus:  domain.PaymentStatusPending,
		RequestedAt:    time.Now(),
	}
	return s.partyRepo.CreateRequest(ctx, req)
}

func (s *partyService) Approve(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error) {
	party, req, err := s.partyRepo.UpdateRequestTxn(ctx, partyID, guestID,
		func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error {
			if party.HostID != hostID {
				return domain.ErrUnauthorized
			}
			if !party.IsOpen(time.Now()) {
				return domain.ErrPartyUnavailable
			}
			if err := admission.CanDecide(req); err != nil {
				return err
			}
			if err := s.gateFor(party).CanAdmit(confirmedGenders(all), req.Gender); err != nil {
				return err
			}
			now := time.Now()
			req.ApprovalStatus = domain.ApprovalStatusApproved
			req.DecidedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, Fanout(party, nil, domain.EventGuestApproved, guestID))
	return req, nil
}

func (s *partyService) Deny(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error) {
	_, req, err := s.partyRepo.UpdateRequestTxn(ctx, partyID, guestID,
		func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error {
			if party.HostID != hostID {
				return domain.ErrUnauthorized
			}
			if !party.IsOpen(time.Now()) {
				return domain.ErrPartyUnavailable
			}
			if err := admission.CanDecide(req); err != nil {
				return err
			}
			now := time.Now()
			req.ApprovalStatus = domain.ApprovalStatusDenied
			req.DecidedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *partyService) SubmitPaymentProof(ctx context.Context, partyID, guestID string) (*domain.GuestRequest, error) {
	_, req, err := s.partyRepo.UpdateRequestTxn(ctx, partyID, guestID,
		func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error {
			if !party.IsOpen(time.Now()) {
				return domain.ErrPartyUnavailable
			}
			if err := admission.CanSubmitProof(req, party.TicketPriceCents); err != nil {
				return err
			}
			now := time.Now()
			req.PaymentStatus = domain.PaymentStatusProofSubmitted
			req.ProofSubmittedAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *partyService) VerifyPayment(ctx context.Context, partyID, actorID, guestID string) (*domain.GuestRequest, error) {
	party, req, err := s.partyRepo.UpdateRequestTxn(ctx, partyID, guestID,
		func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error {
			if actorID != party.HostID && actorID != domain.SystemActorID {
				return domain.ErrUnauthorized
			}
			if !party.IsOpen(time.Now()) {
				return domain.ErrPartyUnavailable
			}
			if err := admission.CanMarkPaid(req); err != nil {
				return err
			}
			// Capacity is re-checked at confirmation time, before earnings
			// are touched: an approval from when there was room does not
			// guarantee a spot.
			if err := s.gateFor(party).CanAdmit(confirmedGenders(all), req.Gender); err != nil {
				return err
			}

			now := time.Now()
			req.PaymentStatus = domain.PaymentStatusPaid
			req.PaidAt = &now
			if !party.IsConfirmedGuest(guestID) {
				party.ActiveUserIDs = append(party.ActiveUserIDs, guestID)
			}
			party.EarningsCents += party.TicketNetCents()
			party.PlatformFeeCents += party.TicketFeeCents()
			return nil
		})
	if err != nil {
		return nil, err
	}

	logger.Info("guest payment verified", "party_id", partyID, "guest_id", guestID, "verified_by", actorID)
	s.dispatcher.Dispatch(ctx, Fanout(party, nil, domain.EventPaymentReceived, guestID))
	return req, nil
}

func (s *partyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.GetByID(ctx, partyID)
}

func (s *partyService) VisibleGuestStatus(ctx context.Context, partyID, userID string) (domain.GuestVisibleStatus, error) {
	req, err := s.partyRepo.GetRequest(ctx, partyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return admission.VisibleStatus(nil), nil
	}
	if err != nil {
		return "", err
	}
	return admission.VisibleStatus(req), nil
}

func (s *partyService) CanCreateParty(ctx context.Context, hostID string) (bool, error) {
	active, err := s.partyRepo.HasActiveParty(ctx, hostID)
	if err != nil {
		return false, err
	}
	return !active, nil
}

func (s *partyService) PendingRequestCount(ctx context.Context, partyID, hostID string) (int, error) {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return 0, err
	}
	if party.HostID != hostID {
		return 0, domain.ErrUnauthorized
	}
	requests, err := s.partyRepo.ListRequests(ctx, partyID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, req := range requests {
		if req.ApprovalStatus == domain.ApprovalStatusPending {
			count++
		}
	}
	return count, nil
}

func (s *partyService) HostEarnings(ctx context.Context, partyID, hostID string) (int64, error) {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return 0, err
	}
	if party.HostID != hostID {
		return 0, domain.ErrUnauthorized
	}
	return party.EarningsCents, nil
}

func (s *partyService) ListGuestRequests(ctx context.Context, partyID, hostID string) ([]domain.GuestRequest, error) {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.HostID != hostID {
		return nil, domain.ErrUnauthorized
	}
	return s.partyRepo.ListRequests(ctx, partyID)
}

func (s *partyService) gateFor(party *domain.Party) admission.Gate {
	return admission.Gate{
		MaxGuestCount:       party.MaxGuestCount,
		MaxGenderRatio:      party.MaxGenderRatio,
		CountUnknownGenders: s.cfg.CountUnknownGenders,
	}
}

// confirmedGenders collects the genders of every paid guest, the population
// the capacity gate measures against.
func confirmedGenders(requests []domain.GuestRequest) []domain.Gender {
	var genders []domain.Gender
	for _, req := range requests {
		if req.ApprovalStatus == domain.ApprovalStatusApproved && req.PaymentStatus == domain.PaymentStatusPaid {
			genders = append(genders, req.Gender)
		}
	}
	return genders
}

func validateDraft(draft *domain.PartyDraft) error {
	switch {
	case draft == nil:
		return fmt.Errorf("%w: missing body", ErrInvalidDraft)
	case draft.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	case draft.MaxGuestCount <= 0:
		return fmt.Errorf("%w: max guest count must be positive", ErrInvalidDraft)
	case draft.TicketPriceCents < 0:
		return fmt.Errorf("%w: ticket price cannot be negative", ErrInvalidDraft)
	case draft.MaxGenderRatio < 0 || draft.MaxGenderRatio > 1:
		return fmt.Errorf("%w: gender ratio must be within [0, 1]", ErrInvalidDraft)
	case !draft.EndTime.After(draft.StartTime):
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidDraft)
	}
	return nil
}
