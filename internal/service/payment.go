package service

import (
	"context"

	"partyhub-backend/internal/logger"
)

// logPaymentProvider stands in for the external payment processor in
// deployments that have none wired. It acknowledges every refund so the
// intent queue drains; swap in a real provider for production.
type logPaymentProvider struct{}

func NewLogPaymentProvider() PaymentProvider {
	return logPaymentProvider{}
}

func (logPaymentProvider) RefundTicket(ctx context.Context, guestID, partyID string, amountCents int64) error {
	logger.Info("refund executed", "guest_id", guestID, "party_id", partyID, "amount_cents", amountCents)
	return nil
}
