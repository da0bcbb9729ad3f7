package domain

import "time"

type EntryType string

const (
	EntryTypePurchaseCredit  EntryType = "PURCHASE_CREDIT"
	EntryTypeListingFeeDebit EntryType = "LISTING_FEE_DEBIT"
	EntryTypeRefundCredit    EntryType = "REFUND_CREDIT"
	EntryTypeAdjustment      EntryType = "ADJUSTMENT"
)

// LedgerAccount is a user's prepaid subcredit balance (1 subcredit = $0.01).
// The balance never goes negative; all mutations are transactional against
// the store.
type LedgerAccount struct {
	UserID            string    `json:"user_id" firestore:"userId"`
	BalanceSubcredits int64     `json:"balance_subcredits" firestore:"balanceSubcredits"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

type LedgerEntry struct {
	ID             string    `json:"id" firestore:"id"`
	UserID         string    `json:"user_id" firestore:"userId"`
	Amount         int64     `json:"amount" firestore:"amount"` // positive for credit, negative for debit
	Type           EntryType `json:"type" firestore:"type"`
	Description    string    `json:"description" firestore:"description"`
	RelatedPartyID string    `json:"related_party_id,omitempty" firestore:"relatedPartyId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

// CreditBundle is a purchasable top-up product from the external catalog.
type CreditBundle struct {
	ID         string `json:"id" firestore:"id"`
	Name       string `json:"name" firestore:"name"`
	Subcredits int64  `json:"subcredits" firestore:"subcredits"`
	PriceCents int64  `json:"price_cents" firestore:"priceCents"`
}
