package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	snap, err := r.client.Collection(collUsers).Doc(userID).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type productRepository struct {
	client *firestore.Client
}

func NewProductRepository(client *firestore.Client) repository.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context) ([]domain.CreditBundle, error) {
	it := r.client.Collection(collProducts).Documents(ctx)
	defer it.Stop()

	var bundles []domain.CreditBundle
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return bundles, nil
		}
		if err != nil {
			return nil, classify(err)
		}
		var bundle domain.CreditBundle
		if err := snap.DataTo(&bundle); err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}
}

func (r *productRepository) GetByID(ctx context.Context, productID string) (*domain.CreditBundle, error) {
	snap, err := r.client.Collection(collProducts).Doc(productID).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	var bundle domain.CreditBundle
	if err := snap.DataTo(&bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}
