package domain

import "time"

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusCompleted RefundStatus = "COMPLETED"
	RefundStatusFailed    RefundStatus = "FAILED"
)

// RefundIntent records that a paid guest is owed their ticket price back
// after a cancellation. Execution is delegated to the external payment
// collaborator; the intent document is keyed (partyID, guestID) so a second
// cancel cannot schedule a duplicate.
type RefundIntent struct {
	ID          string       `json:"id" firestore:"id"`
	PartyID     string       `json:"party_id" firestore:"partyId"`
	GuestID     string       `json:"guest_id" firestore:"guestId"`
	AmountCents int64        `json:"amount_cents" firestore:"amountCents"`
	Status      RefundStatus `json:"status" firestore:"status"`
	Attempts    int          `json:"attempts" firestore:"attempts"`
	CreatedAt   time.Time    `json:"created_at" firestore:"createdAt"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" firestore:"completedAt"`
}
