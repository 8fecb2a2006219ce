package services

import (
	"context"
	"time"

	"github.com/fitcenter/backend/internal/models"
)

// Store is the single consistency domain for accounts, ledger transactions and
// redemption requests. Implementations serialize every mutation per affected
// record and apply a confirm's state transition and debit atomically.
type Store interface {
	// Earn appends an earn transaction and returns it with the new balance.
	Earn(ctx context.Context, memberID string, amount int64, description string, now time.Time) (*models.Transaction, int64, error)
	// Balance returns the member's balance; unknown members have zero.
	Balance(ctx context.Context, memberID string) (int64, error)
	// Transactions returns the member's ledger, newest first.
	Transactions(ctx context.Context, memberID string) ([]models.Transaction, error)

	// CreateRequest stores a new pending request holding a code that no other
	// pending request holds. It fails with ErrInsufficientBalance when amount
	// exceeds the current balance.
	CreateRequest(ctx context.Context, memberID string, amount int64, now time.Time, window time.Duration, codes *CodeGenerator) (*models.RedemptionRequest, error)
	// RequestByCode resolves a pending request by its verification code,
	// expiring it lazily when its window elapsed.
	RequestByCode(ctx context.Context, code string, now time.Time) (*models.RedemptionRequest, error)
	// RequestByID returns a request in any status, expiring it lazily.
	RequestByID(ctx context.Context, id string, now time.Time) (*models.RedemptionRequest, error)
	// ListRequests returns the member's requests, newest first.
	ListRequests(ctx context.Context, memberID string, now time.Time) ([]models.RedemptionRequest, error)
	// Confirm moves a pending request to confirmed and debits its amount.
	// Exactly one of any number of concurrent Confirm/Cancel calls succeeds.
	Confirm(ctx context.Context, code, staffID string, now time.Time, description string) (*models.RedemptionRequest, *models.Transaction, error)
	// Cancel moves a pending request to cancelled without touching the balance.
	Cancel(ctx context.Context, requestID, actorID string, now time.Time) (*models.RedemptionRequest, error)
	// ExpireStale converts pending requests whose window elapsed to expired.
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}
