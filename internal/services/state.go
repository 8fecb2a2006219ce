package services

import (
	"time"

	"github.com/fitcenter/backend/internal/models"
)

// checkPending applies the redemption state machine to a read of req at now.
// expireNow is true when req is pending but its window has elapsed; the
// caller must persist the pending -> expired transition before returning.
func checkPending(req *models.RedemptionRequest, now time.Time) (expireNow bool, err error) {
	switch req.Status {
	case models.RedemptionPending:
		if req.Expired(now) {
			return true, ErrExpired
		}
		return false, nil
	case models.RedemptionConfirmed:
		return false, ErrAlreadyConfirmed
	case models.RedemptionCancelled:
		return false, ErrCancelled
	case models.RedemptionExpired:
		return false, ErrExpired
	default:
		return false, ErrNotFound
	}
}

// refreshStatus lazily expires req in place. It never touches a terminal request.
func refreshStatus(req *models.RedemptionRequest, now time.Time) bool {
	if req.Status == models.RedemptionPending && req.Expired(now) {
		req.Status = models.RedemptionExpired
		return true
	}
	return false
}
