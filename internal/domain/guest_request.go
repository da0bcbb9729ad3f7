package domain

import "time"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusDenied   ApprovalStatus = "DENIED"
)

type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "PENDING"
	PaymentStatusProofSubmitted PaymentStatus = "PROOF_SUBMITTED"
	PaymentStatusPaid           PaymentStatus = "PAID"
)

// GuestVisibleStatus is the single status the presentation layer shows for a
// guest's relationship to a party. It is derived from the underlying
// (ApprovalStatus, PaymentStatus) pair by admission.VisibleStatus and never
// stored.
type GuestVisibleStatus string

const (
	GuestStatusNotRequested   GuestVisibleStatus = "NOT_REQUESTED"
	GuestStatusPending        GuestVisibleStatus = "PENDING"
	GuestStatusApproved       GuestVisibleStatus = "APPROVED"
	GuestStatusProofSubmitted GuestVisibleStatus = "PROOF_SUBMITTED"
	GuestStatusPaid           GuestVisibleStatus = "PAID"
	GuestStatusDenied         GuestVisibleStatus = "DENIED"
)

type Gender string

const (
	GenderUnknown   Gender = ""
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderNonBinary Gender = "NON_BINARY"
)

// GuestRequest is a single user's join request for a single party. Rows are
// never deleted: denial and party cancellation are terminal states, not
// removals.
type GuestRequest struct {
	UserID           string         `json:"user_id" firestore:"userId"`
	PartyID          string         `json:"party_id" firestore:"partyId"`
	Gender           Gender         `json:"gender,omitempty" firestore:"gender"`
	ApprovalStatus   ApprovalStatus `json:"approval_status" firestore:"approvalStatus"`
	PaymentStatus    PaymentStatus  `json:"payment_status" firestore:"paymentStatus"`
	RequestedAt      time.Time      `json:"requested_at" firestore:"requestedAt"`
	DecidedAt        *time.Time     `json:"decided_at,omitempty" firestore:"decidedAt"`
	ProofSubmittedAt *time.Time     `json:"proof_submitted_at,omitempty" firestore:"proofSubmittedAt"`
	PaidAt           *time.Time     `json:"paid_at,omitempty" firestore:"paidAt"`
}
