package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"partyhub-backend/internal/domain"
)

func TestLedgerService_CreditFromPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("CreditsBalance", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewLedgerService(repo)

		err := svc.CreditFromPurchase(ctx, "user-1", 1000, "receipt-1")
		assert.NoError(t, err)

		balance, err := svc.GetBalance(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), balance)

		entries, err := svc.ListEntries(ctx, "user-1", 10)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, domain.EntryTypePurchaseCredit, entries[0].Type)
		assert.Equal(t, int64(1000), entries[0].Amount)
	})

	t.Run("DuplicateReceiptCreditedOnce", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewLedgerService(repo)

		assert.NoError(t, svc.CreditFromPurchase(ctx, "user-1", 1000, "receipt-1"))
		assert.NoError(t, svc.CreditFromPurchase(ctx, "user-1", 1000, "receipt-1"))

		balance, _ := svc.GetBalance(ctx, "user-1")
		assert.Equal(t, int64(1000), balance)

		entries, _ := svc.ListEntries(ctx, "user-1", 10)
		assert.Len(t, entries, 1)
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		svc := NewLedgerService(newFakeLedgerRepo())

		assert.ErrorIs(t, svc.CreditFromPurchase(ctx, "user-1", 0, "receipt-1"), ErrInvalidAmount)
		assert.ErrorIs(t, svc.CreditFromPurchase(ctx, "user-1", -5, "receipt-1"), ErrInvalidAmount)
		assert.Error(t, svc.CreditFromPurchase(ctx, "user-1", 100, ""))
	})
}

func TestLedgerService_DeductSubcredits(t *testing.T) {
	ctx := context.Background()

	t.Run("DeductsWithinBalance", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		repo.setBalance("user-1", 500)
		svc := NewLedgerService(repo)

		err := svc.DeductSubcredits(ctx, "user-1", 500, "Party listing fee", "p1")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), repo.balance("user-1"))

		entries, _ := svc.ListEntries(ctx, "user-1", 10)
		assert.Len(t, entries, 1)
		assert.Equal(t, int64(-500), entries[0].Amount)
		assert.Equal(t, "p1", entries[0].RelatedPartyID)
	})

	t.Run("OverdraftRejected", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		repo.setBalance("user-1", 499)
		svc := NewLedgerService(repo)

		err := svc.DeductSubcredits(ctx, "user-1", 500, "Party listing fee", "p1")
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		assert.Equal(t, int64(499), repo.balance("user-1"))

		entries, _ := svc.ListEntries(ctx, "user-1", 10)
		assert.Empty(t, entries)
	})

	t.Run("ConcurrentDeductionsNeverOverdraw", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		repo.setBalance("user-1", 1000)
		svc := NewLedgerService(repo)

		const workers = 20
		results := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = svc.DeductSubcredits(ctx, "user-1", 100, "fee", "p1")
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
			}
		}
		assert.Equal(t, 10, succeeded)
		assert.Equal(t, int64(0), repo.balance("user-1"))
	})
}

func TestLedgerService_CreditRefund(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	err := svc.CreditRefund(ctx, "user-1", 500, "Listing fee refund", "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(500), repo.balance("user-1"))

	entries, _ := svc.ListEntries(ctx, "user-1", 10)
	assert.Len(t, entries, 1)
	assert.Equal(t, domain.EntryTypeRefundCredit, entries[0].Type)
}
