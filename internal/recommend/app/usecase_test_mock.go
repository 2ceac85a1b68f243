package app

import (
	"context"
	"time"

	"learning_platform_service/internal/recommend/domain"

	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository Mock CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

// ListAll moke list the whole catalog
func (m *MockCatalogRepository) ListAll(ctx context.Context) ([]domain.ContentItem, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ContentItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindItem moke find one content item
func (m *MockCatalogRepository) FindItem(ctx context.Context, contentID string) (*domain.ContentItem, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ContentItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindBySubject moke list one subject's items
func (m *MockCatalogRepository) FindBySubject(ctx context.Context, subjectID string) ([]domain.ContentItem, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ContentItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// IncrementViewCount moke bump view count
func (m *MockCatalogRepository) IncrementViewCount(ctx context.Context, subjectID, contentID string) error {
	args := m.Called(ctx, subjectID, contentID)
	return args.Error(0)
}

// MockProfileRepository Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// FindByUserID moke load learner profile
func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.LearnerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.LearnerProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockObjectStore Mock ObjectStoreRepo
type MockObjectStore struct {
	mock.Mock
}

// PresignGetURL moke presign
func (m *MockObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

// MockEventRepo Mock EventRepo
type MockEventRepo struct {
	mock.Mock
}

// Publish moke event publish
func (m *MockEventRepo) Publish(ctx context.Context, key string, event interface{}) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}
