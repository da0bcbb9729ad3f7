package repository

import (
	"context"

	"partyhub-backend/internal/domain"
)

// PartyRepository persists parties and their guest-request rows. The *Txn
// methods run their callback inside a store transaction: the callback sees
// the current documents, validates against them, and mutates them in place;
// the write only commits if nothing changed underneath. Callbacks must be
// side-effect free since the store may run them more than once.
type PartyRepository interface {
	// Create persists a new party, failing with ErrActivePartyExists if the
	// host already has a party that is neither over nor terminated. The
	// check and the insert are one transaction.
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, partyID string) (*domain.Party, error)
	HasActiveParty(ctx context.Context, hostID string) (bool, error)

	GetRequest(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error)
	ListRequests(ctx context.Context, partyID string) ([]domain.GuestRequest, error)

	// CreateRequest inserts the pending request row unless one already
	// exists for (party, user); re-requests return the existing row.
	CreateRequest(ctx context.Context, req *domain.GuestRequest) (*domain.GuestRequest, error)

	// UpdateRequestTxn applies a guest-request transition. mutate receives
	// the party, the request, and every request row of the party (for
	// capacity decisions) as they exist at transaction time.
	UpdateRequestTxn(ctx context.Context, partyID, userID string,
		mutate func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error,
	) (*domain.Party, *domain.GuestRequest, error)

	// UpdatePartyTxn applies a party-document transition (cancel, end).
	UpdatePartyTxn(ctx context.Context, partyID string,
		mutate func(party *domain.Party) error,
	) (*domain.Party, error)

	// CancelTxn marks the party cancelled and creates one refund intent per
	// paid guest, all in one transaction. A party that is already cancelled
	// yields alreadyCancelled=true and no writes. The returned requests are
	// the party's full request set at commit time, for notification fanout.
	CancelTxn(ctx context.Context, partyID string) (requests []domain.GuestRequest, alreadyCancelled bool, err error)

	// ListEndedUnprocessed returns ended parties whose post-party stats have
	// not been folded in yet.
	ListEndedUnprocessed(ctx context.Context, limit int) ([]domain.Party, error)
	MarkStatsProcessed(ctx context.Context, partyID string, summary *domain.RatingSummary) error
}

// LedgerRepository persists subcredit accounts. UpdateAccountTxn is the
// single mutation primitive: it reads (lazily creating) the account in a
// transaction, has mutate adjust the balance, and appends the returned entry
// to the audit trail. A non-empty receiptID makes the mutation idempotent:
// if the receipt was applied before, nothing runs and applied is false.
type LedgerRepository interface {
	GetAccount(ctx context.Context, userID string) (*domain.LedgerAccount, error)
	UpdateAccountTxn(ctx context.Context, userID, receiptID string,
		mutate func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error),
	) (applied bool, err error)
	ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

type RatingRepository interface {
	// Upsert writes the rating keyed by (party, guest); last write wins.
	Upsert(ctx context.Context, rating *domain.PartyRating) error
	ListByHost(ctx context.Context, hostID string) ([]domain.PartyRating, error)
	ListByParty(ctx context.Context, partyID string) ([]domain.PartyRating, error)
}

// RefundRepository reads and settles the refund intents created by the
// cancellation cascade.
type RefundRepository interface {
	ListPending(ctx context.Context, limit int) ([]domain.RefundIntent, error)
	MarkCompleted(ctx context.Context, refundID string) error
	MarkFailed(ctx context.Context, refundID string) error
	RecordAttempt(ctx context.Context, refundID string, attempts int) error
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

type ProductRepository interface {
	List(ctx context.Context) ([]domain.CreditBundle, error)
	GetByID(ctx context.Context, productID string) (*domain.CreditBundle, error)
}
