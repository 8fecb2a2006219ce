package services

import (
	"context"
	"sync"
	"time"

	"github.com/fitcenter/backend/internal/models"
	"github.com/google/uuid"
)

// pointsBook is the in-memory ledger: per-member balance plus its
// append-only transaction log. Callers hold the owning MemoryStore lock.
type pointsBook struct {
	accounts     map[string]*models.Account
	transactions map[string][]models.Transaction // chronological
}

func newPointsBook() *pointsBook {
	return &pointsBook{
		accounts:     make(map[string]*models.Account),
		transactions: make(map[string][]models.Transaction),
	}
}

func (b *pointsBook) account(memberID string, now time.Time) *models.Account {
	acct, ok := b.accounts[memberID]
	if !ok {
		acct = &models.Account{MemberID: memberID, CreatedAt: now, UpdatedAt: now}
		b.accounts[memberID] = acct
	}
	return acct
}

func (b *pointsBook) balance(memberID string) int64 {
	if acct, ok := b.accounts[memberID]; ok {
		return acct.Balance
	}
	return 0
}

func (b *pointsBook) earn(memberID string, amount int64, description string, now time.Time) models.Transaction {
	acct := b.account(memberID, now)
	txn := models.Transaction{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		Type:        models.TransactionEarn,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}
	b.transactions[memberID] = append(b.transactions[memberID], txn)
	acct.Balance += amount
	acct.Version++
	acct.UpdatedAt = now
	return txn
}

// spend is reachable only from the confirm path.
func (b *pointsBook) spend(memberID string, amount int64, description, requestID string, now time.Time) (models.Transaction, error) {
	acct := b.account(memberID, now)
	if amount > acct.Balance {
		return models.Transaction{}, ErrInsufficientBalance
	}
	related := requestID
	txn := models.Transaction{
		ID:               uuid.NewString(),
		MemberID:         memberID,
		Type:             models.TransactionSpend,
		Amount:           amount,
		Description:      description,
		RelatedRequestID: &related,
		CreatedAt:        now,
	}
	b.transactions[memberID] = append(b.transactions[memberID], txn)
	acct.Balance -= amount
	acct.Version++
	acct.UpdatedAt = now
	return txn, nil
}

// MemoryStore keeps all state in process memory behind one mutex.
type MemoryStore struct {
	mu            sync.Mutex
	book          *pointsBook
	requests      map[string]*models.RedemptionRequest
	pendingByCode map[string]string   // code -> id, pending requests only
	lastByCode    map[string]string   // code -> id of the latest holder
	byMember      map[string][]string // member -> request ids, chronological
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		book:          newPointsBook(),
		requests:      make(map[string]*models.RedemptionRequest),
		pendingByCode: make(map[string]string),
		lastByCode:    make(map[string]string),
		byMember:      make(map[string][]string),
	}
}

func (s *MemoryStore) Earn(ctx context.Context, memberID string, amount int64, description string, now time.Time) (*models.Transaction, int64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.book.earn(memberID, amount, description, now)
	return &txn, s.book.balance(memberID), nil
}

func (s *MemoryStore) Balance(ctx context.Context, memberID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.balance(memberID), nil
}

func (s *MemoryStore) Transactions(ctx context.Context, memberID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.book.transactions[memberID]
	out := make([]models.Transaction, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		out = append(out, log[i])
	}
	return out, nil
}

func (s *MemoryStore) CreateRequest(ctx context.Context, memberID string, amount int64, now time.Time, window time.Duration, codes *CodeGenerator) (*models.RedemptionRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount > s.book.balance(memberID) {
		return nil, ErrInsufficientBalance
	}

	code, err := codes.Generate(func(code string) bool {
		id, ok := s.pendingByCode[code]
		if !ok {
			return false
		}
		// A holder whose window elapsed no longer blocks its code.
		if held := s.requests[id]; refreshStatus(held, now) {
			delete(s.pendingByCode, code)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	req := &models.RedemptionRequest{
		ID:               uuid.NewString(),
		MemberID:         memberID,
		Amount:           amount,
		VerificationCode: code,
		Status:           models.RedemptionPending,
		CreatedAt:        now,
		ExpiresAt:        now.Add(window),
	}
	s.requests[req.ID] = req
	s.pendingByCode[code] = req.ID
	s.lastByCode[code] = req.ID
	s.byMember[memberID] = append(s.byMember[memberID], req.ID)

	out := *req
	return &out, nil
}

// resolveCode returns the request currently or most recently holding code.
// Callers hold s.mu.
func (s *MemoryStore) resolveCode(code string) (*models.RedemptionRequest, bool) {
	code = NormalizeCode(code)
	if id, ok := s.pendingByCode[code]; ok {
		return s.requests[id], true
	}
	if id, ok := s.lastByCode[code]; ok {
		return s.requests[id], true
	}
	return nil, false
}

// settle applies checkPending and persists a lazy expiry. Callers hold s.mu.
func (s *MemoryStore) settle(req *models.RedemptionRequest, now time.Time) error {
	expireNow, err := checkPending(req, now)
	if expireNow {
		req.Status = models.RedemptionExpired
		s.dropPending(req)
	}
	return err
}

func (s *MemoryStore) dropPending(req *models.RedemptionRequest) {
	if id, ok := s.pendingByCode[req.VerificationCode]; ok && id == req.ID {
		delete(s.pendingByCode, req.VerificationCode)
	}
}

func (s *MemoryStore) RequestByCode(ctx context.Context, code string, now time.Time) (*models.RedemptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.resolveCode(code)
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.settle(req, now); err != nil {
		return nil, err
	}
	out := *req
	return &out, nil
}

func (s *MemoryStore) RequestByID(ctx context.Context, id string, now time.Time) (*models.RedemptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if refreshStatus(req, now) {
		s.dropPending(req)
	}
	out := *req
	return &out, nil
}

func (s *MemoryStore) ListRequests(ctx context.Context, memberID string, now time.Time) ([]models.RedemptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.byMember[memberID]
	out := make([]models.RedemptionRequest, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		req := s.requests[ids[i]]
		if refreshStatus(req, now) {
			s.dropPending(req)
		}
		out = append(out, *req)
	}
	return out, nil
}

func (s *MemoryStore) Confirm(ctx context.Context, code, staffID string, now time.Time, description string) (*models.RedemptionRequest, *models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.resolveCode(code)
	if !ok {
		return nil, nil, ErrNotFound
	}
	if err := s.settle(req, now); err != nil {
		return nil, nil, err
	}

	txn, err := s.book.spend(req.MemberID, req.Amount, description, req.ID, now)
	if err != nil {
		return nil, nil, err
	}

	confirmedAt := now
	req.Status = models.RedemptionConfirmed
	req.ConfirmedBy = staffID
	req.ConfirmedAt = &confirmedAt
	s.dropPending(req)

	out := *req
	return &out, &txn, nil
}

func (s *MemoryStore) Cancel(ctx context.Context, requestID, actorID string, now time.Time) (*models.RedemptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.settle(req, now); err != nil {
		return nil, err
	}

	cancelledAt := now
	req.Status = models.RedemptionCancelled
	req.CancelledBy = actorID
	req.CancelledAt = &cancelledAt
	s.dropPending(req)

	out := *req
	return &out, nil
}

func (s *MemoryStore) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for code, id := range s.pendingByCode {
		req := s.requests[id]
		if refreshStatus(req, now) {
			delete(s.pendingByCode, code)
			expired++
		}
	}
	return expired, nil
}
