// Package admission holds the pure guest-admission logic: the single mapping
// from a request's (approval, payment) pair to the status the app shows, the
// transition predicates the lifecycle manager validates before persisting,
// and the capacity/gender-ratio gate.
package admission

import (
	"partyhub-backend/internal/domain"
)

// VisibleStatus derives the externally visible status for a guest request.
// A nil request means the user never asked to join. This is the only place
// the derivation exists; every surface that shows a status goes through it.
func VisibleStatus(req *domain.GuestRequest) domain.GuestVisibleStatus {
	if req == nil {
		return domain.GuestStatusNotRequested
	}
	switch req.ApprovalStatus {
	case domain.ApprovalStatusPending:
		return domain.GuestStatusPending
	case domain.ApprovalStatusDenied:
		return domain.GuestStatusDenied
	case domain.ApprovalStatusApproved:
		switch req.PaymentStatus {
		case domain.PaymentStatusProofSubmitted:
			return domain.GuestStatusProofSubmitted
		case domain.PaymentStatusPaid:
			return domain.GuestStatusPaid
		default:
			return domain.GuestStatusApproved
		}
	}
	return domain.GuestStatusPending
}

// CanDecide validates a host decision (approve or deny) on a pending request.
func CanDecide(req *domain.GuestRequest) error {
	if req.ApprovalStatus != domain.ApprovalStatusPending {
		return domain.ErrInvalidTransition
	}
	return nil
}

// CanSubmitProof validates a guest submitting payment proof: the request must
// be approved, payment untouched, and the party must actually charge for
// tickets.
func CanSubmitProof(req *domain.GuestRequest, ticketPriceCents int64) error {
	if req.ApprovalStatus != domain.ApprovalStatusApproved {
		return domain.ErrInvalidTransition
	}
	if req.PaymentStatus != domain.PaymentStatusPending {
		return domain.ErrInvalidTransition
	}
	if ticketPriceCents <= 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// CanMarkPaid validates marking a request paid after payment verification.
func CanMarkPaid(req *domain.GuestRequest) error {
	if req.ApprovalStatus != domain.ApprovalStatusApproved {
		return domain.ErrInvalidTransition
	}
	if req.PaymentStatus != domain.PaymentStatusProofSubmitted {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Gate applies the capacity and gender-ratio caps for one prospective
// admission. CountUnknownGenders controls whether confirmed guests with no
// gender on file count toward the ratio denominator.
type Gate struct {
	MaxGuestCount       int
	MaxGenderRatio      float64 // 0 disables the ratio cap
	CountUnknownGenders bool
}

// CanAdmit decides whether one more guest fits. The ratio check projects the
// post-admission share of the candidate's gender category, so the admission
// that would cross the cap is the one rejected. Candidates with unknown
// gender skip the ratio check entirely.
func (g Gate) CanAdmit(confirmed []domain.Gender, candidate domain.Gender) error {
	if len(confirmed) >= g.MaxGuestCount {
		return domain.ErrPartyFull
	}
	if g.MaxGenderRatio <= 0 || candidate == domain.GenderUnknown {
		return nil
	}

	same := 1 // the candidate
	total := 1
	for _, gender := range confirmed {
		if gender == domain.GenderUnknown {
			if g.CountUnknownGenders {
				total++
			}
			continue
		}
		total++
		if gender == candidate {
			same++
		}
	}
	if float64(same)/float64(total) > g.MaxGenderRatio {
		return domain.ErrPartyFull
	}
	return nil
}
