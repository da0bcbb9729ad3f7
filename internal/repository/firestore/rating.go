package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

type ratingRepository struct {
	client *firestore.Client
}

func NewRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &ratingRepository{client: client}
}

// Upsert writes the rating under the deterministic id "{party}_{guest}", so a
// guest re-submitting overwrites their earlier rating instead of adding a
// second one.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.PartyRating) error {
	ref := r.client.Collection(collRatings).Doc(rating.PartyID + "_" + rating.GuestID)
	_, err := ref.Set(ctx, rating)
	return classify(err)
}

func (r *ratingRepository) ListByHost(ctx context.Context, hostID string) ([]domain.PartyRating, error) {
	q := r.client.Collection(collRatings).Where("hostId", "==", hostID)
	return r.collect(ctx, q)
}

func (r *ratingRepository) ListByParty(ctx context.Context, partyID string) ([]domain.PartyRating, error) {
	q := r.client.Collection(collRatings).Where("partyId", "==", partyID)
	return r.collect(ctx, q)
}

func (r *ratingRepository) collect(ctx context.Context, q firestore.Query) ([]domain.PartyRating, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var ratings []domain.PartyRating
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return ratings, nil
		}
		if err != nil {
			return nil, classify(err)
		}
		var rating domain.PartyRating
		if err := snap.DataTo(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
}
