package models

import "time"

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionConfirmed RedemptionStatus = "confirmed"
	RedemptionCancelled RedemptionStatus = "cancelled"
	RedemptionExpired   RedemptionStatus = "expired"
)

// IsTerminal reports whether no further transition may leave the status.
func (s RedemptionStatus) IsTerminal() bool {
	return s == RedemptionConfirmed || s == RedemptionCancelled || s == RedemptionExpired
}

// RedemptionRequest is a single-use authorization to spend Amount points,
// redeemable by staff with VerificationCode until ExpiresAt.
type RedemptionRequest struct {
	ID               string           `json:"id" db:"id"`
	MemberID         string           `json:"memberId" db:"member_id"`
	Amount           int64            `json:"amount" db:"amount"`
	VerificationCode string           `json:"verificationCode" db:"verification_code"`
	Status           RedemptionStatus `json:"status" db:"status"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	ExpiresAt        time.Time        `json:"expiresAt" db:"expires_at"`
	ConfirmedBy      string           `json:"confirmedBy,omitempty" db:"confirmed_by"`
	ConfirmedAt      *time.Time       `json:"confirmedAt,omitempty" db:"confirmed_at"`
	CancelledBy      string           `json:"cancelledBy,omitempty" db:"cancelled_by"`
	CancelledAt      *time.Time       `json:"cancelledAt,omitempty" db:"cancelled_at"`
}

// Expired reports whether the confirmation window has elapsed at now.
// A request is still valid at exactly ExpiresAt.
func (r *RedemptionRequest) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Masked returns a copy safe for history listings: the code of a request that
// can no longer be redeemed is hidden.
func (r RedemptionRequest) Masked() RedemptionRequest {
	if r.Status.IsTerminal() {
		r.VerificationCode = "***"
	}
	return r
}
