package services

import (
	"context"
	"strings"
	"time"

	"github.com/fitcenter/backend/internal/audit"
	"github.com/fitcenter/backend/internal/config"
	"github.com/fitcenter/backend/internal/logger"
	"github.com/fitcenter/backend/internal/metrics"
	"github.com/fitcenter/backend/internal/models"
)

// Actor identifies who performs a member- or staff-side operation.
type Actor struct {
	ID    string
	Staff bool
}

// RedemptionService turns points into single-use, time-bounded codes and
// redeems them exactly once at a staff terminal.
type RedemptionService struct {
	store    Store
	codes    *CodeGenerator
	config   *config.RedemptionConfig
	limiter  *RateLimiter
	notifier *Notifier
	metrics  *metrics.PointsMetrics
	audit    *audit.Logger
	log      *logger.Logger
	now      func() time.Time
}

type RedemptionDeps struct {
	Store    Store
	Codes    *CodeGenerator
	Config   *config.RedemptionConfig
	Limiter  *RateLimiter
	Notifier *Notifier
	Metrics  *metrics.PointsMetrics
	Audit    *audit.Logger
	Logger   *logger.Logger
}

func NewRedemptionService(deps RedemptionDeps) *RedemptionService {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.RedemptionConfig{CodeTimeout: config.DefaultCodeTimeout}
	}
	return &RedemptionService{
		store:    deps.Store,
		codes:    deps.Codes,
		config:   cfg,
		limiter:  deps.Limiter,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		audit:    deps.Audit,
		log:      log,
		now:      time.Now,
	}
}

// Window is the confirmation window of new requests.
func (s *RedemptionService) Window() time.Duration {
	if s.config.CodeTimeout <= 0 {
		return config.DefaultCodeTimeout
	}
	return s.config.CodeTimeout
}

// CreateUsageRequest issues a pending request for amount points. The balance
// is not touched until staff confirms.
func (s *RedemptionService) CreateUsageRequest(ctx context.Context, memberID string, amount int64) (*models.RedemptionRequest, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, ErrInvalidMember
	}
	if amount <= 0 {
		s.metrics.IncRequest(outcomeLabel(ErrInvalidAmount))
		return nil, ErrInvalidAmount
	}

	if err := s.limiter.Check(ctx, memberID); err != nil {
		s.metrics.IncRequest(outcomeLabel(err))
		return nil, err
	}

	now := s.now()
	req, err := s.store.CreateRequest(ctx, memberID, amount, now, s.Window(), s.codes)
	if err != nil {
		s.metrics.IncRequest(outcomeLabel(err))
		s.log.Zerolog(ctx).Warn().Err(err).Str("member_id", memberID).Int64("amount", amount).Msg("redemption request rejected")
		return nil, err
	}

	if err := s.limiter.Increment(ctx, memberID); err != nil {
		s.log.Warn(ctx, "increment rate limit: "+err.Error())
	}

	s.metrics.IncRequest("created")
	s.log.Zerolog(ctx).Info().Str("request_id", req.ID).Str("member_id", memberID).Int64("amount", amount).
		Time("expires_at", req.ExpiresAt).Msg("redemption request created")
	s.notifier.Publish(ctx, models.LedgerEvent{
		Type:      models.EventRedemptionCreated,
		MemberID:  memberID,
		RequestID: req.ID,
		Status:    req.Status,
		At:        now,
	})
	return req, nil
}

// GetPendingRequest previews a pending request for staff. It never changes
// the balance; the only state change it may cause is a lazy expiry.
func (s *RedemptionService) GetPendingRequest(ctx context.Context, code string) (*models.RedemptionRequest, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrNotFound
	}
	return s.store.RequestByCode(ctx, code, s.now())
}

// ConfirmUsage redeems code on behalf of staffID. It reports true only when
// the debit occurred; every failure carries its reason.
func (s *RedemptionService) ConfirmUsage(ctx context.Context, code, staffID string) (bool, error) {
	code = NormalizeCode(code)
	if code == "" {
		s.metrics.IncConfirmation(outcomeLabel(ErrNotFound))
		return false, ErrNotFound
	}

	now := s.now()
	req, txn, err := s.store.Confirm(ctx, code, staffID, now, s.config.SpendDescription)
	if err != nil {
		s.metrics.IncConfirmation(outcomeLabel(err))
		s.audit.LogError(code, staffID, err)
		s.log.Zerolog(ctx).Warn().Err(err).Str("staff_id", staffID).Msg("redemption confirm rejected")
		return false, err
	}

	s.metrics.IncConfirmation("success")
	s.metrics.AddSpent(req.Amount)
	s.audit.LogRedemption(req.ID, req.MemberID, staffID, req.Amount, "CONFIRMED")
	s.log.Zerolog(ctx).Info().Str("request_id", req.ID).Str("member_id", req.MemberID).Str("staff_id", staffID).
		Int64("amount", req.Amount).Msg("redemption confirmed")

	balance, err := s.store.Balance(ctx, req.MemberID)
	if err != nil {
		s.log.Error(ctx, "read balance after confirm", err)
	}
	s.notifier.Publish(ctx, models.LedgerEvent{
		Type:        models.EventPointsSpent,
		MemberID:    req.MemberID,
		Balance:     balance,
		Transaction: txn,
		RequestID:   req.ID,
		Status:      req.Status,
		At:          now,
	})
	return true, nil
}

// CancelRequest withdraws a pending request. Members may cancel only their
// own requests; staff may cancel any. It loses cleanly to a prior confirm.
func (s *RedemptionService) CancelRequest(ctx context.Context, requestID string, actor Actor) (*models.RedemptionRequest, error) {
	now := s.now()
	current, err := s.store.RequestByID(ctx, requestID, now)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && current.MemberID != actor.ID {
		return nil, ErrForbidden
	}

	req, err := s.store.Cancel(ctx, requestID, actor.ID, now)
	if err != nil {
		return nil, err
	}

	s.audit.LogRedemption(req.ID, req.MemberID, actor.ID, req.Amount, "CANCELLED")
	s.notifier.Publish(ctx, models.LedgerEvent{
		Type:      models.EventRedemptionCancelled,
		MemberID:  req.MemberID,
		RequestID: req.ID,
		Status:    req.Status,
		At:        now,
	})
	return req, nil
}

// GetRequest returns a request in any status for its owner, e.g. to drive the
// member's countdown screen.
func (s *RedemptionService) GetRequest(ctx context.Context, requestID string, actor Actor) (*models.RedemptionRequest, error) {
	req, err := s.store.RequestByID(ctx, requestID, s.now())
	if err != nil {
		return nil, err
	}
	if !actor.Staff && req.MemberID != actor.ID {
		// Do not reveal request ids of other members.
		return nil, ErrNotFound
	}
	return req, nil
}

// ListRequests returns the member's history with codes of requests that can
// no longer be redeemed masked.
func (s *RedemptionService) ListRequests(ctx context.Context, memberID string) ([]models.RedemptionRequest, error) {
	reqs, err := s.store.ListRequests(ctx, memberID, s.now())
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		reqs[i] = reqs[i].Masked()
	}
	return reqs, nil
}

func outcomeLabel(err error) string {
	return strings.ToLower(ErrorCode(err))
}
