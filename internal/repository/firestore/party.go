package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

type partyRepository struct {
	client *firestore.Client
}

func NewPartyRepository(client *firestore.Client) repository.PartyRepository {
	return &partyRepository{client: client}
}

func (r *partyRepository) partyRef(partyID string) *firestore.DocumentRef {
	return r.client.Collection(collParties).Doc(partyID)
}

func (r *partyRepository) requestRef(partyID, userID string) *firestore.DocumentRef {
	return r.partyRef(partyID).Collection(collRequests).Doc(userID)
}

func (r *partyRepository) refundRef(partyID, guestID string) *firestore.DocumentRef {
	return r.client.Collection(collRefunds).Doc(partyID + "_" + guestID)
}

// activePartyQuery matches parties of hostID that still block creating a new
// one: not terminated and not yet over. A future start time still blocks.
func (r *partyRepository) activePartyQuery(hostID string, now time.Time) firestore.Query {
	return r.client.Collection(collParties).
		Where("hostId", "==", hostID).
		Where("status", "==", string(domain.PartyStatusActive)).
		Where("endTime", ">", now).
		Limit(1)
}

func (r *partyRepository) Create(ctx context.Context, party *domain.Party) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		it := tx.Documents(r.activePartyQuery(party.HostID, time.Now()))
		defer it.Stop()
		_, err := it.Next()
		if err == nil {
			return domain.ErrActivePartyExists
		}
		if err != iterator.Done {
			return err
		}
		return tx.Create(r.partyRef(party.ID), party)
	})
	return classify(err)
}

func (r *partyRepository) GetByID(ctx context.Context, partyID string) (*domain.Party, error) {
	snap, err := r.partyRef(partyID).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	var party domain.Party
	if err := snap.DataTo(&party); err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *partyRepository) HasActiveParty(ctx context.Context, hostID string) (bool, error) {
	it := r.activePartyQuery(hostID, time.Now()).Documents(ctx)
	defer it.Stop()
	_, err := it.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, classify(err)
	}
	return true, nil
}

func (r *partyRepository) GetRequest(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error) {
	snap, err := r.requestRef(partyID, userID).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	var req domain.GuestRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *partyRepository) ListRequests(ctx context.Context, partyID string) ([]domain.GuestRequest, error) {
	it := r.partyRef(partyID).Collection(collRequests).Documents(ctx)
	defer it.Stop()
	return collectRequests(it)
}

func (r *partyRepository) CreateRequest(ctx context.Context, req *domain.GuestRequest) (*domain.GuestRequest, error) {
	result := req
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		party, err := r.getPartyTx(tx, req.PartyID)
		if err != nil {
			return err
		}
		if !party.IsOpen(time.Now()) {
			return domain.ErrPartyUnavailable
		}
		snap, err := tx.Get(r.requestRef(req.PartyID, req.UserID))
		if err == nil && snap.Exists() {
			var existing domain.GuestRequest
			if err := snap.DataTo(&existing); err != nil {
				return err
			}
			result = &existing
			return nil
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Create(r.requestRef(req.PartyID, req.UserID), req)
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

func (r *partyRepository) UpdateRequestTxn(ctx context.Context, partyID, userID string,
	mutate func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error,
) (*domain.Party, *domain.GuestRequest, error) {
	var (
		party *domain.Party
		req   *domain.GuestRequest
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var err error
		party, err = r.getPartyTx(tx, partyID)
		if err != nil {
			return err
		}
		snap, err := tx.Get(r.requestRef(partyID, userID))
		if err != nil {
			return err
		}
		req = &domain.GuestRequest{}
		if err := snap.DataTo(req); err != nil {
			return err
		}
		it := tx.Documents(r.partyRef(partyID).Collection(collRequests))
		defer it.Stop()
		all, err := collectRequests(it)
		if err != nil {
			return err
		}
		if err := mutate(party, req, all); err != nil {
			return err
		}
		if err := tx.Set(r.partyRef(partyID), party); err != nil {
			return err
		}
		return tx.Set(r.requestRef(partyID, userID), req)
	})
	if err != nil {
		return nil, nil, classify(err)
	}
	return party, req, nil
}

func (r *partyRepository) UpdatePartyTxn(ctx context.Context, partyID string,
	mutate func(party *domain.Party) error,
) (*domain.Party, error) {
	var party *domain.Party
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var err error
		party, err = r.getPartyTx(tx, partyID)
		if err != nil {
			return err
		}
		if err := mutate(party); err != nil {
			return err
		}
		return tx.Set(r.partyRef(partyID), party)
	})
	if err != nil {
		return nil, classify(err)
	}
	return party, nil
}

func (r *partyRepository) CancelTxn(ctx context.Context, partyID string) ([]domain.GuestRequest, bool, error) {
	var (
		requests []domain.GuestRequest
		already  bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		requests, already = nil, false
		party, err := r.getPartyTx(tx, partyID)
		if err != nil {
			return err
		}
		if party.Status == domain.PartyStatusCancelled {
			already = true
			return nil
		}
		if party.Status == domain.PartyStatusEnded {
			return domain.ErrPartyUnavailable
		}
		it := tx.Documents(r.partyRef(partyID).Collection(collRequests))
		defer it.Stop()
		requests, err = collectRequests(it)
		if err != nil {
			return err
		}

		party.Status = domain.PartyStatusCancelled
		party.ChatEnded = true
		if err := tx.Set(r.partyRef(partyID), party); err != nil {
			return err
		}
		for _, req := range requests {
			if req.PaymentStatus != domain.PaymentStatusPaid {
				continue
			}
			intent := &domain.RefundIntent{
				ID:          partyID + "_" + req.UserID,
				PartyID:     partyID,
				GuestID:     req.UserID,
				AmountCents: party.TicketPriceCents,
				Status:      domain.RefundStatusPending,
				CreatedAt:   time.Now(),
			}
			if err := tx.Create(r.refundRef(partyID, req.UserID), intent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, classify(err)
	}
	return requests, already, nil
}

func (r *partyRepository) ListEndedUnprocessed(ctx context.Context, limit int) ([]domain.Party, error) {
	it := r.client.Collection(collParties).
		Where("status", "==", string(domain.PartyStatusEnded)).
		Where("statsProcessed", "==", false).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var parties []domain.Party
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err)
		}
		var party domain.Party
		if err := snap.DataTo(&party); err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, nil
}

func (r *partyRepository) MarkStatsProcessed(ctx context.Context, partyID string, summary *domain.RatingSummary) error {
	_, err := r.partyRef(partyID).Update(ctx, []firestore.Update{
		{Path: "avgPartyRating", Value: summary.AvgPartyRating},
		{Path: "avgHostRating", Value: summary.AvgHostRating},
		{Path: "ratingCount", Value: summary.Count},
		{Path: "statsProcessed", Value: true},
	})
	return classify(err)
}

func (r *partyRepository) getPartyTx(tx *firestore.Transaction, partyID string) (*domain.Party, error) {
	snap, err := tx.Get(r.partyRef(partyID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var party domain.Party
	if err := snap.DataTo(&party); err != nil {
		return nil, err
	}
	return &party, nil
}

func collectRequests(it *firestore.DocumentIterator) ([]domain.GuestRequest, error) {
	var requests []domain.GuestRequest
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return requests, nil
		}
		if err != nil {
			return nil, err
		}
		var req domain.GuestRequest
		if err := snap.DataTo(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
}
