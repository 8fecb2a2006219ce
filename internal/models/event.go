package models

import "time"

type LedgerEventType string

const (
	EventPointsEarned        LedgerEventType = "points.earned"
	EventPointsSpent         LedgerEventType = "points.spent"
	EventRedemptionCreated   LedgerEventType = "redemption.created"
	EventRedemptionCancelled LedgerEventType = "redemption.cancelled"
)

// LedgerEvent is published after a mutation commits so dependent views can
// refresh. Delivery is best effort.
type LedgerEvent struct {
	Type        LedgerEventType  `json:"type"`
	MemberID    string           `json:"memberId"`
	Balance     int64            `json:"balance"`
	Transaction *Transaction     `json:"transaction,omitempty"`
	RequestID   string           `json:"requestId,omitempty"`
	Status      RedemptionStatus `json:"status,omitempty"`
	At          time.Time        `json:"at"`
}
