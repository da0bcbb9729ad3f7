// Package firestore implements the repository interfaces on Cloud Firestore.
// Every invariant-bearing mutation runs in a Firestore transaction, which
// gives the serializable read-modify-write semantics the party and ledger
// invariants require; the client retries conflicting transactions a bounded
// number of times before the commit surfaces as aborted.
package firestore

import (
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/repository"
)

const (
	collParties  = "parties"
	collRequests = "requests"
	collLedgers  = "ledgers"
	collReceipts = "receipts"
	collEntries  = "entries"
	collRefunds  = "refunds"
	collRatings  = "ratings"
	collUsers    = "users"
	collProducts = "products"
)

type Store struct {
	client *firestore.Client
	repository.PartyRepository
	repository.LedgerRepository
	repository.RatingRepository
	repository.RefundRepository
	repository.UserRepository
	repository.ProductRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:            client,
		PartyRepository:   NewPartyRepository(client),
		LedgerRepository:  NewLedgerRepository(client),
		RatingRepository:  NewRatingRepository(client),
		RefundRepository:  NewRefundRepository(client),
		UserRepository:    NewUserRepository(client),
		ProductRepository: NewProductRepository(client),
	}
}

// classify maps Firestore RPC failures onto the domain error taxonomy.
// Domain sentinels returned from transaction callbacks pass through
// untouched (they carry no gRPC status and fall into codes.Unknown).
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isDomainErr(err) {
		return err
	}
	switch status.Code(err) {
	case codes.NotFound:
		return domain.ErrNotFound
	case codes.Aborted:
		return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

func isDomainErr(err error) bool {
	for _, sentinel := range []error{
		domain.ErrActivePartyExists,
		domain.ErrInsufficientBalance,
		domain.ErrPartyUnavailable,
		domain.ErrInvalidTransition,
		domain.ErrPartyFull,
		domain.ErrUnauthorized,
		domain.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
