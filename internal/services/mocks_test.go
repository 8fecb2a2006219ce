package services

import (
	"context"
	"time"

	"github.com/fitcenter/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Earn(ctx context.Context, memberID string, amount int64, description string, now time.Time) (*models.Transaction, int64, error) {
	args := m.Called(ctx, memberID, amount, description, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) Balance(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Transactions(ctx context.Context, memberID string) ([]models.Transaction, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockStore) CreateRequest(ctx context.Context, memberID string, amount int64, now time.Time, window time.Duration, codes *CodeGenerator) (*models.RedemptionRequest, error) {
	args := m.Called(ctx, memberID, amount, now, window, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionRequest), args.Error(1)
}

func (m *MockStore) RequestByCode(ctx context.Context, code string, now time.Time) (*models.RedemptionRequest, error) {
	args := m.Called(ctx, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionRequest), args.Error(1)
}

func (m *MockStore) RequestByID(ctx context.Context, id string, now time.Time) (*models.RedemptionRequest, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionRequest), args.Error(1)
}

func (m *MockStore) ListRequests(ctx context.Context, memberID string, now time.Time) ([]models.RedemptionRequest, error) {
	args := m.Called(ctx, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RedemptionRequest), args.Error(1)
}

func (m *MockStore) Confirm(ctx context.Context, code, staffID string, now time.Time, description string) (*models.RedemptionRequest, *models.Transaction, error) {
	args := m.Called(ctx, code, staffID, now, description)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.RedemptionRequest), args.Get(1).(*models.Transaction), args.Error(2)
}

func (m *MockStore) Cancel(ctx context.Context, requestID, actorID string, now time.Time) (*models.RedemptionRequest, error) {
	args := m.Called(ctx, requestID, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionRequest), args.Error(1)
}

func (m *MockStore) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

var _ Store = (*MockStore)(nil)
