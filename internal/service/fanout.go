package service

import (
	"fmt"

	"partyhub-backend/internal/domain"
)

// Fanout computes the recipient set and message for a notifiable party event.
// It is deterministic and side-effect free: identical inputs always yield the
// identical notification sequence, and no recipient appears twice within one
// call. Delivery is the dispatcher's problem.
//
// subjectID scopes events about a single guest: the approved guest for
// GuestApproved, the paying guest for PaymentReceived, and (optionally) a
// single self-ended guest for RatingRequested.
func Fanout(party *domain.Party, requests []domain.GuestRequest, kind domain.EventKind, subjectID string) []domain.Notification {
	switch kind {
	case domain.EventPartyCancelled:
		return fanoutCancelled(party, requests)
	case domain.EventGuestApproved:
		return []domain.Notification{{
			RecipientID: subjectID,
			Kind:        kind,
			Title:       "Request approved",
			Body:        fmt.Sprintf("Your request to join %q was approved by the host.", party.Title),
			Attributes:  map[string]string{"party_id": party.ID},
		}}
	case domain.EventPaymentReceived:
		return []domain.Notification{{
			RecipientID: party.HostID,
			Kind:        kind,
			Title:       "Payment received",
			Body:        fmt.Sprintf("A guest's payment for %q was confirmed.", party.Title),
			Attributes:  map[string]string{"party_id": party.ID, "guest_id": subjectID},
		}}
	case domain.EventRatingRequested:
		return fanoutRatingRequested(party, subjectID)
	}
	return nil
}

// fanoutCancelled notifies every distinct user who ever requested to join,
// exactly once each. Paid guests are told a refund is coming; everyone else
// is told the party no longer exists.
func fanoutCancelled(party *domain.Party, requests []domain.GuestRequest) []domain.Notification {
	var notes []domain.Notification
	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		if seen[req.UserID] {
			continue
		}
		seen[req.UserID] = true

		body := fmt.Sprintf("%q was cancelled by the host and no longer exists.", party.Title)
		if req.PaymentStatus == domain.PaymentStatusPaid {
			body = fmt.Sprintf("%q was cancelled by the host. Your ticket will be refunded in full.", party.Title)
		}
		notes = append(notes, domain.Notification{
			RecipientID: req.UserID,
			Kind:        domain.EventPartyCancelled,
			Title:       "Party cancelled",
			Body:        body,
			Attributes:  map[string]string{"party_id": party.ID},
		})
	}
	return notes
}

func fanoutRatingRequested(party *domain.Party, subjectID string) []domain.Notification {
	recipients := party.ActiveUserIDs
	if subjectID != "" {
		recipients = []string{subjectID}
	}
	var notes []domain.Notification
	seen := make(map[string]bool, len(recipients))
	for _, userID := range recipients {
		if seen[userID] || userID == party.HostID {
			continue
		}
		seen[userID] = true
		notes = append(notes, domain.Notification{
			RecipientID: userID,
			Kind:        domain.EventRatingRequested,
			Title:       "How was the party?",
			Body:        fmt.Sprintf("%q has ended. Rate the party and your host.", party.Title),
			Attributes:  map[string]string{"party_id": party.ID},
		})
	}
	return notes
}
