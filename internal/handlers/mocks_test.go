package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMemberDirectory struct {
	mock.Mock
}

func (m *MockMemberDirectory) MemberName(ctx context.Context, memberID string) (string, error) {
	args := m.Called(ctx, memberID)
	return args.String(0), args.Error(1)
}
