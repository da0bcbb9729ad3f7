package service

import (
	"context"
	"errors"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/logger"
	"partyhub-backend/internal/repository"
)

var ErrInvalidAmount = errors.New("amount must be positive")

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	acct, err := s.ledgerRepo.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acct.BalanceSubcredits, nil
}

// CreditFromPurchase applies a confirmed external purchase. The receipt id
// is consumed at most once: the purchase layer re-delivering a confirmation
// is a no-op, not a double credit.
func (s *ledgerService) CreditFromPurchase(ctx context.Context, userID string, subcredits int64, receiptID string) error {
	if subcredits <= 0 {
		return ErrInvalidAmount
	}
	if receiptID == "" {
		return errors.New("receipt id is required")
	}
	applied, err := s.ledgerRepo.UpdateAccountTxn(ctx, userID, receiptID,
		func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error) {
			acct.BalanceSubcredits += subcredits
			return &domain.LedgerEntry{
				Amount:      subcredits,
				Type:        domain.EntryTypePurchaseCredit,
				Description: "Subcredit purchase " + receiptID,
			}, nil
		})
	if err != nil {
		return err
	}
	if !applied {
		logger.Info("duplicate purchase receipt ignored", "user_id", userID, "receipt_id", receiptID)
	}
	return nil
}

// DeductSubcredits atomically takes amount from the balance. Two deductions
// racing on one account serialize in the store transaction; the one that no
// longer fits fails with ErrInsufficientBalance.
func (s *ledgerService) DeductSubcredits(ctx context.Context, userID string, amount int64, description, partyID string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	_, err := s.ledgerRepo.UpdateAccountTxn(ctx, userID, "",
		func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error) {
			if acct.BalanceSubcredits < amount {
				return nil, domain.ErrInsufficientBalance
			}
			acct.BalanceSubcredits -= amount
			return &domain.LedgerEntry{
				Amount:         -amount,
				Type:           domain.EntryTypeListingFeeDebit,
				Description:    description,
				RelatedPartyID: partyID,
			}, nil
		})
	return err
}

func (s *ledgerService) CreditRefund(ctx context.Context, userID string, amount int64, description, partyID string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	_, err := s.ledgerRepo.UpdateAccountTxn(ctx, userID, "",
		func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error) {
			acct.BalanceSubcredits += amount
			return &domain.LedgerEntry{
				Amount:         amount,
				Type:           domain.EntryTypeRefundCredit,
				Description:    description,
				RelatedPartyID: partyID,
			}, nil
		})
	return err
}

func (s *ledgerService) ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ledgerRepo.ListEntries(ctx, userID, limit)
}
