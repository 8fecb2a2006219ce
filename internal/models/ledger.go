package models

import (
	"time"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionEarn  TransactionType = "earn"
	TransactionSpend TransactionType = "spend"
)

// Account holds the current point balance of a member.
type Account struct {
	MemberID  string    `json:"memberId" db:"member_id"`
	Balance   int64     `json:"balance" db:"balance"`
	Version   int       `json:"version" db:"version"` // for optimistic locking
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Transaction is an immutable ledger entry. Entries are never edited or removed.
type Transaction struct {
	ID               string          `json:"id" db:"id"`
	MemberID         string          `json:"memberId" db:"member_id"`
	Type             TransactionType `json:"type" db:"type"`
	Amount           int64           `json:"amount" db:"amount"` // always positive
	Description      string          `json:"description" db:"description"`
	RelatedRequestID *string         `json:"relatedRequestId,omitempty" db:"related_request_id"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
}

// Signed returns the amount with the sign of its effect on the balance.
func (t Transaction) Signed() int64 {
	if t.Type == TransactionSpend {
		return -t.Amount
	}
	return t.Amount
}
