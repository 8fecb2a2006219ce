package services

import (
	"context"

	"github.com/fitcenter/backend/internal/config"
	"github.com/fitcenter/backend/internal/models"
)

const (
	SourceAttendance = "attendance"
	SourceWorkout    = "workout"
	SourceSignup     = "signup"
	SourceManual     = "manual"
)

// AwardService credits points for events reported by the attendance, workout
// and registration subsystems.
type AwardService struct {
	ledger *LedgerService
	config *config.AwardConfig
}

func NewAwardService(ledger *LedgerService, cfg *config.AwardConfig) *AwardService {
	if cfg == nil {
		cfg = &config.AwardConfig{Attendance: 10, Workout: 20, Signup: 100}
	}
	return &AwardService{ledger: ledger, config: cfg}
}

func (s *AwardService) AttendanceConfirmed(ctx context.Context, memberID string) (*models.Transaction, error) {
	return s.ledger.EarnPoints(ctx, memberID, s.config.Attendance, "Attendance check-in", SourceAttendance)
}

func (s *AwardService) WorkoutVerified(ctx context.Context, memberID string) (*models.Transaction, error) {
	return s.ledger.EarnPoints(ctx, memberID, s.config.Workout, "Verified workout", SourceWorkout)
}

func (s *AwardService) AccountCreated(ctx context.Context, memberID string) (*models.Transaction, error) {
	return s.ledger.EarnPoints(ctx, memberID, s.config.Signup, "Welcome bonus", SourceSignup)
}
