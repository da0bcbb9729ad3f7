package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"partyhub-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRatingRepo
type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) Upsert(ctx context.Context, rating *domain.PartyRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}
func (m *MockRatingRepo) ListByHost(ctx context.Context, hostID string) ([]domain.PartyRating, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.PartyRating), args.Error(1)
}
func (m *MockRatingRepo) ListByParty(ctx context.Context, partyID string) ([]domain.PartyRating, error) {
	args := m.Called(ctx, partyID)
	return args.Get(0).([]domain.PartyRating), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context) ([]domain.CreditBundle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CreditBundle), args.Error(1)
}
func (m *MockProductRepo) GetByID(ctx context.Context, productID string) (*domain.CreditBundle, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditBundle), args.Error(1)
}

// captureDispatcher records every notification handed to it, in order.
type captureDispatcher struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (d *captureDispatcher) Dispatch(ctx context.Context, notes []domain.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, notes...)
}

func (d *captureDispatcher) all() []domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Notification(nil), d.notes...)
}

func (d *captureDispatcher) byKind(kind domain.EventKind) []domain.Notification {
	var out []domain.Notification
	for _, n := range d.all() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// fakeLedgerRepo is an in-memory LedgerRepository with the same transactional
// contract as the store-backed one: UpdateAccountTxn runs its callback under
// a lock, so racing mutations serialize and the balance invariant holds.
type fakeLedgerRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.LedgerAccount
	receipts map[string]bool
	entries  map[string][]domain.LedgerEntry
	calls    int
	failAt   int // 1-based UpdateAccountTxn call that returns failErr
	failErr  error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		accounts: make(map[string]*domain.LedgerAccount),
		receipts: make(map[string]bool),
		entries:  make(map[string][]domain.LedgerEntry),
	}
}

func (r *fakeLedgerRepo) accountLocked(userID string) *domain.LedgerAccount {
	acct, ok := r.accounts[userID]
	if !ok {
		acct = &domain.LedgerAccount{UserID: userID, CreatedAt: time.Now()}
		r.accounts[userID] = acct
	}
	return acct
}

func (r *fakeLedgerRepo) setBalance(userID string, balance int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accountLocked(userID).BalanceSubcredits = balance
}

func (r *fakeLedgerRepo) balance(userID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accountLocked(userID).BalanceSubcredits
}

func (r *fakeLedgerRepo) GetAccount(ctx context.Context, userID string) (*domain.LedgerAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *r.accountLocked(userID)
	return &copy, nil
}

func (r *fakeLedgerRepo) UpdateAccountTxn(ctx context.Context, userID, receiptID string,
	mutate func(acct *domain.LedgerAccount) (*domain.LedgerEntry, error),
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.failErr != nil && r.calls == r.failAt {
		return false, r.failErr
	}

	receiptKey := userID + "/" + receiptID
	if receiptID != "" && r.receipts[receiptKey] {
		return false, nil
	}

	acct := *r.accountLocked(userID)
	entry, err := mutate(&acct)
	if err != nil {
		return false, err
	}
	if acct.BalanceSubcredits < 0 {
		return false, domain.ErrInsufficientBalance
	}
	acct.UpdatedAt = time.Now()
	r.accounts[userID] = &acct

	entry.UserID = userID
	entry.CreatedAt = time.Now()
	r.entries[userID] = append(r.entries[userID], *entry)
	if receiptID != "" {
		r.receipts[receiptKey] = true
	}
	return true, nil
}

func (r *fakeLedgerRepo) ListEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.entries[userID]
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return append([]domain.LedgerEntry(nil), entries...), nil
}

// fakePartyRepo is an in-memory PartyRepository. All mutations run under one
// lock, mirroring the store's transactional isolation.
type fakePartyRepo struct {
	mu        sync.Mutex
	parties   map[string]*domain.Party
	requests  map[string]map[string]*domain.GuestRequest
	refunds   []domain.RefundIntent
	createErr error
}

func newFakePartyRepo() *fakePartyRepo {
	return &fakePartyRepo{
		parties:  make(map[string]*domain.Party),
		requests: make(map[string]map[string]*domain.GuestRequest),
	}
}

func (r *fakePartyRepo) put(party *domain.Party) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *party
	r.parties[party.ID] = &copy
}

func (r *fakePartyRepo) putRequest(req *domain.GuestRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.requests[req.PartyID] == nil {
		r.requests[req.PartyID] = make(map[string]*domain.GuestRequest)
	}
	copy := *req
	r.requests[req.PartyID][req.UserID] = &copy
}

func (r *fakePartyRepo) hasActiveLocked(hostID string, now time.Time) bool {
	for _, p := range r.parties {
		if p.HostID == hostID && p.Status == domain.PartyStatusActive && p.EndTime.After(now) {
			return true
		}
	}
	return false
}

func (r *fakePartyRepo) Create(ctx context.Context, party *domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if r.hasActiveLocked(party.HostID, time.Now()) {
		return domain.ErrActivePartyExists
	}
	copy := *party
	r.parties[party.ID] = &copy
	return nil
}

func (r *fakePartyRepo) GetByID(ctx context.Context, partyID string) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[partyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *party
	return &copy, nil
}

func (r *fakePartyRepo) HasActiveParty(ctx context.Context, hostID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasActiveLocked(hostID, time.Now()), nil
}

func (r *fakePartyRepo) GetRequest(ctx context.Context, partyID, userID string) (*domain.GuestRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[partyID][userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *req
	return &copy, nil
}

func (r *fakePartyRepo) ListRequests(ctx context.Context, partyID string) ([]domain.GuestRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listRequestsLocked(partyID), nil
}

func (r *fakePartyRepo) listRequestsLocked(partyID string) []domain.GuestRequest {
	var out []domain.GuestRequest
	for _, req := range r.requests[partyID] {
		out = append(out, *req)
	}
	return out
}

func (r *fakePartyRepo) CreateRequest(ctx context.Context, req *domain.GuestRequest) (*domain.GuestRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[req.PartyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !party.IsOpen(time.Now()) {
		return nil, domain.ErrPartyUnavailable
	}
	if existing, ok := r.requests[req.PartyID][req.UserID]; ok {
		copy := *existing
		return &copy, nil
	}
	if r.requests[req.PartyID] == nil {
		r.requests[req.PartyID] = make(map[string]*domain.GuestRequest)
	}
	copy := *req
	r.requests[req.PartyID][req.UserID] = &copy
	result := copy
	return &result, nil
}

func (r *fakePartyRepo) UpdateRequestTxn(ctx context.Context, partyID, userID string,
	mutate func(party *domain.Party, req *domain.GuestRequest, all []domain.GuestRequest) error,
) (*domain.Party, *domain.GuestRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[partyID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	req, ok := r.requests[partyID][userID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}

	partyCopy := *party
	reqCopy := *req
	if err := mutate(&partyCopy, &reqCopy, r.listRequestsLocked(partyID)); err != nil {
		return nil, nil, err
	}
	r.parties[partyID] = &partyCopy
	r.requests[partyID][userID] = &reqCopy
	partyOut, reqOut := partyCopy, reqCopy
	return &partyOut, &reqOut, nil
}

func (r *fakePartyRepo) UpdatePartyTxn(ctx context.Context, partyID string,
	mutate func(party *domain.Party) error,
) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[partyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *party
	if err := mutate(&copy); err != nil {
		return nil, err
	}
	r.parties[partyID] = &copy
	out := copy
	return &out, nil
}

func (r *fakePartyRepo) CancelTxn(ctx context.Context, partyID string) ([]domain.GuestRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[partyID]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	if party.Status == domain.PartyStatusCancelled {
		return r.listRequestsLocked(partyID), true, nil
	}
	if party.Status == domain.PartyStatusEnded {
		return nil, false, domain.ErrPartyUnavailable
	}

	party.Status = domain.PartyStatusCancelled
	party.ChatEnded = true
	for _, req := range r.requests[partyID] {
		if req.PaymentStatus == domain.PaymentStatusPaid {
			r.refunds = append(r.refunds, domain.RefundIntent{
				ID:          fmt.Sprintf("%s_%s", partyID, req.UserID),
				PartyID:     partyID,
				GuestID:     req.UserID,
				AmountCents: party.TicketPriceCents,
				Status:      domain.RefundStatusPending,
				CreatedAt:   time.Now(),
			})
		}
	}
	return r.listRequestsLocked(partyID), false, nil
}

func (r *fakePartyRepo) ListEndedUnprocessed(ctx context.Context, limit int) ([]domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Party
	for _, p := range r.parties {
		if p.Status == domain.PartyStatusEnded && !p.StatsProcessed && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePartyRepo) MarkStatsProcessed(ctx context.Context, partyID string, summary *domain.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[partyID]
	if !ok {
		return domain.ErrNotFound
	}
	party.StatsProcessed = true
	party.AvgPartyRating = summary.AvgPartyRating
	party.AvgHostRating = summary.AvgHostRating
	party.RatingCount = summary.Count
	return nil
}
