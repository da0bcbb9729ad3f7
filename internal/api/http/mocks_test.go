package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partyhub-backend/internal/domain"
)

// MockPartyService
type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) Create(ctx context.Context, hostID string, draft *domain.PartyDraft) (*domain.Party, error) {
	args := m.Called(ctx, hostID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) Cancel(ctx context.Context, partyID, actorID string) error {
	args := m.Called(ctx, partyID, actorID)
	return args.Error(0)
}
func (m *MockPartyService) End(ctx context.Context, partyID, actorID string, skipRating bool) error {
	args := m.Called(ctx, partyID, actorID, skipRating)
	return args.Error(0)
}
func (m *MockPartyService) RequestToJoin(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestRequest), args.Error(1)
}
func (m *MockPartyService) Approve(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, hostID, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestRequest), args.Error(1)
}
func (m *MockPartyService) Deny(ctx context.Context, partyID, hostID, guestID string) (*domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, hostID, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestRequest), args.Error(1)
}
func (m *MockPartyService) SubmitPaymentProof(ctx context.Context, partyID, guestID string) (*domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestRequest), args.Error(1)
}
func (m *MockPartyService) VerifyPayment(ctx context.Context, partyID, actorID, guestID string) (*domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, actorID, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestRequest), args.Error(1)
}
func (m *MockPartyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) VisibleGuestStatus(ctx context.Context, partyID, userID string) (domain.GuestVisibleStatus, error) {
	args := m.Called(ctx, partyID, userID)
	return args.Get(0).(domain.GuestVisibleStatus), args.Error(1)
}
func (m *MockPartyService) CanCreateParty(ctx context.Context, hostID string) (bool, error) {
	args := m.Called(ctx, hostID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPartyService) PendingRequestCount(ctx context.Context, partyID, hostID string) (int, error) {
	args := m.Called(ctx, partyID, hostID)
	return args.Int(0), args.Error(1)
}
func (m *MockPartyService) HostEarnings(ctx context.Context, partyID, hostID string) (int64, error) {
	args := m.Called(ctx, partyID, hostID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPartyService) ListGuestRequests(ctx context.Context, partyID, hostID string) ([]domain.GuestRequest, error) {
	args := m.Called(ctx, partyID, hostID)
	return args.Get(0).([]domain.GuestRequest), args.Error(1)
}

// MockRatingService
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) RecordRating(ctx context.Context, guestID string, rating *domain.PartyRating) error {
	args := m.Called(ctx, guestID, rating)
	return args.Error(0)
}
func (m *MockRatingService) AggregateForHost(ctx context.Context, hostID string) (*domain.RatingSummary, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}
func (m *MockRatingService) AggregateForParty(ctx context.Context, partyID string) (*domain.RatingSummary, error) {
	args := m.Called(ctx, partyID)
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerService) CreditFromPurchase(ctx context.Context, userID string, subcredits int64, receiptID string) error {
	args := m.Called(ctx, userID, subcredits, receiptID)
	return args.Error(0)
}
func (m *MockLedgerService) DeductSubcredits(ctx context.Context, userID string, amount int64, description, partyID string) error {
	args := m.Called(ctx, userID, amount, description, partyID)
	return args.Error(0)
}
func (m *MockLedgerService) CreditRefund(ctx context.Context, userID string, amount int64, description, partyID string) error {
	args := m.Called(ctx, userID, amount, description, partyID)
	return args.Error(0)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockPurchaseService
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) ListBundles(ctx context.Context) ([]domain.CreditBundle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CreditBundle), args.Error(1)
}
func (m *MockPurchaseService) CompletePurchase(ctx context.Context, userID, productID, receiptID string) (*domain.CreditBundle, error) {
	args := m.Called(ctx, userID, productID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditBundle), args.Error(1)
}

// stubVerifier accepts any token of the form "token-<uid>".
type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, token string) (string, error) {
	if len(token) > 6 && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", domain.ErrUnauthorized
}
