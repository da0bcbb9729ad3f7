package service

import (
	"context"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/logger"
	"partyhub-backend/internal/repository"
)

type purchaseService struct {
	productRepo repository.ProductRepository
	ledger      LedgerService
}

func NewPurchaseService(productRepo repository.ProductRepository, ledger LedgerService) PurchaseService {
	return &purchaseService{productRepo: productRepo, ledger: ledger}
}

func (s *purchaseService) ListBundles(ctx context.Context) ([]domain.CreditBundle, error) {
	return s.productRepo.List(ctx)
}

// CompletePurchase handles the purchase-completion callback from the store
// layer: it resolves the bundle and credits the buyer. The ledger makes the
// credit idempotent per receipt, so replayed callbacks are harmless.
func (s *purchaseService) CompletePurchase(ctx context.Context, userID, productID, receiptID string) (*domain.CreditBundle, error) {
	bundle, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CreditFromPurchase(ctx, userID, bundle.Subcredits, receiptID); err != nil {
		return nil, err
	}
	logger.Info("purchase completed", "user_id", userID, "product_id", productID, "subcredits", bundle.Subcredits)
	return bundle, nil
}
