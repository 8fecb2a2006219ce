package services

import (
	"context"
	"strings"
	"time"

	"github.com/fitcenter/backend/internal/audit"
	"github.com/fitcenter/backend/internal/logger"
	"github.com/fitcenter/backend/internal/metrics"
	"github.com/fitcenter/backend/internal/models"
)

// LedgerService is the member-facing view of the points ledger. It can only
// credit points; debits happen through RedemptionService.ConfirmUsage.
type LedgerService struct {
	store    Store
	notifier *Notifier
	metrics  *metrics.PointsMetrics
	audit    *audit.Logger
	log      *logger.Logger
	now      func() time.Time
}

func NewLedgerService(store Store, notifier *Notifier, m *metrics.PointsMetrics, auditLog *audit.Logger, log *logger.Logger) *LedgerService {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		audit:    auditLog,
		log:      log,
		now:      time.Now,
	}
}

// EarnPoints credits amount to the member. source labels the award trigger
// in metrics ("attendance", "workout", ...).
func (s *LedgerService) EarnPoints(ctx context.Context, memberID string, amount int64, description, source string) (*models.Transaction, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, ErrInvalidMember
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	txn, balance, err := s.store.Earn(ctx, memberID, amount, description, now)
	if err != nil {
		s.log.Error(ctx, "earn points failed", err)
		return nil, err
	}

	s.metrics.AddEarned(source, amount)
	s.audit.LogEarn(txn.ID, memberID, amount, source)
	s.notifier.Publish(ctx, models.LedgerEvent{
		Type:        models.EventPointsEarned,
		MemberID:    memberID,
		Balance:     balance,
		Transaction: txn,
		At:          now,
	})
	return txn, nil
}

func (s *LedgerService) GetBalance(ctx context.Context, memberID string) (int64, error) {
	return s.store.Balance(ctx, memberID)
}

// GetTransactions returns the member's ledger, newest first.
func (s *LedgerService) GetTransactions(ctx context.Context, memberID string) ([]models.Transaction, error) {
	return s.store.Transactions(ctx, memberID)
}
