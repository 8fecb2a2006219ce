package services

import (
	"errors"
	"fmt"
)

// Expected, recoverable outcomes. Callers distinguish them with errors.Is.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient points")
	ErrNotFound            = errors.New("redemption request not found")
	ErrExpired             = errors.New("redemption request expired")
	ErrAlreadyConfirmed    = errors.New("redemption request already confirmed")
	ErrCancelled           = errors.New("redemption request cancelled")
	ErrCodeSpaceExhausted  = errors.New("no free verification code available")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrForbidden           = errors.New("not allowed to act on this redemption request")
	ErrInvalidMember       = errors.New("member id is required")
)

// ErrStorage marks a failure of the durability layer. The operation it
// wraps was not applied.
var ErrStorage = errors.New("storage failure")

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// ErrorCode returns a stable machine-readable code for err.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrExpired):
		return "EXPIRED"
	case errors.Is(err, ErrAlreadyConfirmed):
		return "ALREADY_CONFIRMED"
	case errors.Is(err, ErrCancelled):
		return "CANCELLED"
	case errors.Is(err, ErrCodeSpaceExhausted):
		return "CODE_SPACE_EXHAUSTED"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrInvalidMember):
		return "INVALID_MEMBER"
	case errors.Is(err, ErrStorage):
		return "STORAGE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
