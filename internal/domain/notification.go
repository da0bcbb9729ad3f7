package domain

type EventKind string

const (
	EventPartyCancelled  EventKind = "PARTY_CANCELLED"
	EventGuestApproved   EventKind = "GUEST_APPROVED"
	EventPaymentReceived EventKind = "PAYMENT_RECEIVED"
	EventRatingRequested EventKind = "RATING_REQUESTED"
)

type Notification struct {
	RecipientID string            `json:"recipient_id"`
	Kind        EventKind         `json:"kind"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
