package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

type ledgerRepository struct {
	client *firestore.Client
}

func NewLedgerRepository(client *firestore.Client) repository.LedgerRepository {
	return &ledgerRepository{client: client}
}

func (r *ledgerRepository) accountRef(userID string) *firestore.DocumentRef {
	return r.client.Collection(collLedgers).Doc(userID)
}

func (r *ledgerRepository) GetAccount(ctx context.Context, userID string) (*domain.LedgerAccount, error) {
	snap, err := r.accountRef(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Accounts are created lazily on first touch.
			acct := newAccount(userID)
			if err := r.createZeroAccount(ctx, acct); err != nil {
				return nil, err
			}
			return acct, nil
		}
		return nil, classify(err)
	}
	var acct domain.LedgerAccount
	if err := snap.DataTo(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *ledgerRepository) createZeroAccount(ctx context.Context, acct *domain.LedgerAccount) error {
	_, err := r.accountRef(acct.UserID).Create(ctx, acct)
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return classify(err)
	}
	return nil
}

func (r *ledgerRepository) UpdateAccountTxn(ctx context.Context, userID, receiptID string,
	mutate func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error),
) (bool, error) {
	applied := false
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		applied = false
		var receiptRef *firestore.DocumentRef
		if receiptID != "" {
			receiptRef = r.accountRef(userID).Collection(collReceipts).Doc(receiptID)
			snap, err := tx.Get(receiptRef)
			if err == nil && snap.Exists() {
				// Receipt already consumed: duplicate confirmation, no-op.
				return nil
			}
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
		}

		acct := newAccount(userID)
		snap, err := tx.Get(r.accountRef(userID))
		if err == nil {
			if err := snap.DataTo(acct); err != nil {
				return err
			}
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		entry, err := mutate(acct)
		if err != nil {
			return err
		}
		if acct.BalanceSubcredits < 0 {
			return fmt.Errorf("ledger mutation for %s would leave negative balance %d", userID, acct.BalanceSubcredits)
		}
		acct.UpdatedAt = time.Now()
		if err := tx.Set(r.accountRef(userID), acct); err != nil {
			return err
		}
		if receiptRef != nil {
			if err := tx.Create(receiptRef, map[string]interface{}{"appliedAt": time.Now()}); err != nil {
				return err
			}
		}
		if entry != nil {
			entry.ID = uuid.NewString()
			entry.UserID = userID
			entry.CreatedAt = time.Now()
			entryRef := r.accountRef(userID).Collection(collEntries).Doc(entry.ID)
			if err := tx.Create(entryRef, entry); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, classify(err)
	}
	return applied, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	it := r.accountRef(userID).Collection(collEntries).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var entries []domain.LedgerEntry
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return entries, nil
		}
		if err != nil {
			return nil, classify(err)
		}
		var entry domain.LedgerEntry
		if err := snap.DataTo(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

func newAccount(userID string) *domain.LedgerAccount {
	now := time.Now()
	return &domain.LedgerAccount{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
