package domain

import "time"

// PartyRating is one guest's scores for a party and its host, collected after
// the party ends. There is at most one per (party, guest) pair; a
// re-submission overwrites the previous one.
type PartyRating struct {
	PartyID    string    `json:"party_id" firestore:"partyId"`
	HostID     string    `json:"host_id" firestore:"hostId"`
	GuestID    string    `json:"guest_id" firestore:"guestId"`
	PartyScore int       `json:"party_score" firestore:"partyScore"` // 1-5
	HostScore  int       `json:"host_score" firestore:"hostScore"`   // 1-5
	Comment    string    `json:"comment,omitempty" firestore:"comment"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

// RatingSummary is an on-demand aggregate over ratings.
type RatingSummary struct {
	AvgPartyRating float64 `json:"avg_party_rating"`
	AvgHostRating  float64 `json:"avg_host_rating"`
	Count          int     `json:"count"`
}
