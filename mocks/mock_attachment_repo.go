package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
)

// MockAttachmentRepo is a mock implementation of port.AttachmentRepository.
type MockAttachmentRepo struct {
	mock.Mock
}

func (m *MockAttachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttachmentRepo) ListByOwner(ctx context.Context, owner domain.AttachmentOwner, ownerID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, owner, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}
