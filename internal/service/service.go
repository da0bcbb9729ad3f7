package service

import (
	"context"

	"partyhub-backend/internal/domain"
)

type PartyService interface {
	Create(ctx context.Context, hostID string, draft *domain.PartyDraft) (*domain.Party, error)
	Cancel(ctx context.Context, partyID, actorID string) error
	End(ctx context.Context, partyID, actorID string, skipRating bool) error

	RequestToJoin(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error)
	Approve(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error)
	Deny(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error)
	SubmitPaymentProof(ctx context.Context, partyID, guestID string) (*domain.GuestRequest, error)
	VerifyPayment(ctx context.Context, partyID, actorID, guestID string) (*domain.GuestRequest, error)

	GetParty(ctx context.Context, partyID string) (*domain.Party, error)
	VisibleGuestStatus(ctx context.Context, partyID, userID string) (domain.GuestVisibleStatus, error)
	CanCreateParty(ctx context.Context, hostID string) (bool, error)
	PendingRequestCount(ctx context.Context, partyID, hostID string) (int, error)
	HostEarnings(ctx context.Context, partyID, hostID string) (int64, error)
	ListGuestRequests(ctx context.Context, partyID, hostID string) ([]domain.GuestRequest, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	CreditFromPurchase(ctx context.Context, userID string, subcredits int64, receiptID string) error
	DeductSubcredits(ctx context.Context, userID string, amount int64, description, partyID string) error
	CreditRefund(ctx context.Context, userID string, amount int64, description, partyID string) error
	ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

type PurchaseService interface {
	ListBundles(ctx context.Context) ([]domain.CreditBundle, error)
	CompletePurchase(ctx context.Context, userID, productID, receiptID string) (*domain.CreditBundle, error)
}

type RatingService interface {
	RecordRating(ctx context.Context, guestID string, rating *domain.PartyRating) error
	AggregateForHost(ctx context.Context, hostID string) (*domain.RatingSummary, error)
	AggregateForParty(ctx context.Context, partyID string) (*domain.RatingSummary, error)
}

// Notifier is the delivery transport behind notification fanout. Delivery is
// best effort: failures are logged by the dispatcher and never block a
// committed state transition.
type Notifier interface {
	Send(ctx context.Context, user *domain.User, title, body string) error
}

// NotificationDispatcher resolves recipients and pushes fanout output
// through the configured transport.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notes []domain.Notification)
}

// PaymentProvider is the external payment collaborator. It executes the
// refunds the cancellation cascade records as intents.
type PaymentProvider interface {
	RefundTicket(ctx context.Context, guestID, partyID string, amountCents int64) error
}
