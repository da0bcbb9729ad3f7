package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

type refundRepository struct {
	client *firestore.Client
}

func NewRefundRepository(client *firestore.Client) repository.RefundRepository {
	return &refundRepository{client: client}
}

func (r *refundRepository) ListPending(ctx context.Context, limit int) ([]domain.RefundIntent, error) {
	it := r.client.Collection(collRefunds).
		Where("status", "==", string(domain.RefundStatusPending)).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var intents []domain.RefundIntent
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return intents, nil
		}
		if err != nil {
			return nil, classify(err)
		}
		var intent domain.RefundIntent
		if err := snap.DataTo(&intent); err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}
}

func (r *refundRepository) MarkCompleted(ctx context.Context, refundID string) error {
	_, err := r.client.Collection(collRefunds).Doc(refundID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(domain.RefundStatusCompleted)},
		{Path: "completedAt", Value: time.Now()},
	})
	return classify(err)
}

func (r *refundRepository) MarkFailed(ctx context.Context, refundID string) error {
	_, err := r.client.Collection(collRefunds).Doc(refundID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(domain.RefundStatusFailed)},
	})
	return classify(err)
}

func (r *refundRepository) RecordAttempt(ctx context.Context, refundID string, attempts int) error {
	_, err := r.client.Collection(collRefunds).Doc(refundID).Update(ctx, []firestore.Update{
		{Path: "attempts", Value: attempts},
	})
	return classify(err)
}
