package domain

import "time"

type PartyStatus string

const (
	PartyStatusActive    PartyStatus = "ACTIVE"
	PartyStatusCancelled PartyStatus = "CANCELLED"
	PartyStatusEnded     PartyStatus = "ENDED"
)

// PlatformFeeBasisPoints is the platform's cut of every ticket sale (12%).
const PlatformFeeBasisPoints int64 = 1200

type Party struct {
	ID               string      `json:"id" firestore:"id"`
	HostID           string      `json:"host_id" firestore:"hostId"`
	Title            string      `json:"title" firestore:"title"`
	City             string      `json:"city" firestore:"city"`
	Latitude         float64     `json:"latitude" firestore:"latitude"`
	Longitude        float64     `json:"longitude" firestore:"longitude"`
	RadiusMeters     float64     `json:"radius_meters" firestore:"radiusMeters"`
	StartTime        time.Time   `json:"start_time" firestore:"startTime"`
	EndTime          time.Time   `json:"end_time" firestore:"endTime"`
	CreatedAt        time.Time   `json:"created_at" firestore:"createdAt"`
	EndedAt          *time.Time  `json:"ended_at,omitempty" firestore:"endedAt"`
	TicketPriceCents int64       `json:"ticket_price_cents" firestore:"ticketPriceCents"`
	EarningsCents    int64       `json:"earnings_cents" firestore:"earningsCents"`
	PlatformFeeCents int64       `json:"platform_fee_cents" firestore:"platformFeeCents"`
	ListingFeePaid   bool        `json:"listing_fee_paid" firestore:"listingFeePaid"`
	MaxGuestCount    int         `json:"max_guest_count" firestore:"maxGuestCount"`
	MaxGenderRatio   float64     `json:"max_gender_ratio" firestore:"maxGenderRatio"` // 0 disables the cap
	Status           PartyStatus `json:"status" firestore:"status"`
	EndedBy          string      `json:"ended_by,omitempty" firestore:"endedBy"`
	ChatEnded        bool        `json:"chat_ended" firestore:"chatEnded"`
	StatsProcessed   bool        `json:"stats_processed" firestore:"statsProcessed"`
	AvgPartyRating   float64     `json:"avg_party_rating" firestore:"avgPartyRating"`
	AvgHostRating    float64     `json:"avg_host_rating" firestore:"avgHostRating"`
	RatingCount      int         `json:"rating_count" firestore:"ratingCount"`
	ActiveUserIDs    []string    `json:"active_user_ids" firestore:"activeUserIds"`
}

// IsOpen reports whether the party still accepts admission activity:
// neither cancelled nor ended, and not yet past its end time. A scheduled
// party that has not started is open, so guests can request, be approved
// and pay ahead of the start.
func (p *Party) IsOpen(now time.Time) bool {
	return p.Status == PartyStatusActive && now.Before(p.EndTime)
}

// IsConfirmedGuest reports whether userID has paid and joined the party.
func (p *Party) IsConfirmedGuest(userID string) bool {
	for _, id := range p.ActiveUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// TicketFeeCents returns the platform's cut of one ticket.
func (p *Party) TicketFeeCents() int64 {
	return p.TicketPriceCents * PlatformFeeBasisPoints / 10000
}

// TicketNetCents returns the host's share of one ticket.
func (p *Party) TicketNetCents() int64 {
	return p.TicketPriceCents - p.TicketFeeCents()
}

// PartyDraft carries the host-supplied fields for party creation. The
// location fields come from the device's location service and are stored
// as-is.
type PartyDraft struct {
	Title            string    `json:"title"`
	City             string    `json:"city"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	RadiusMeters     float64   `json:"radius_meters"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TicketPriceCents int64     `json:"ticket_price_cents"`
	MaxGuestCount    int       `json:"max_guest_count"`
	MaxGenderRatio   float64   `json:"max_gender_ratio"`
	PaidListing      bool      `json:"paid_listing"`
}
