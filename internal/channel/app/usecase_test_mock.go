package app

import (
	"context"

	"learning_platform_service/internal/channel/domain"

	"github.com/stretchr/testify/mock"
)

// MockChannelRepository Mock ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

// ApplySend moke upsert channel metadata
func (m *MockChannelRepository) ApplySend(ctx context.Context, channel *domain.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

// FindByID moke find channel by id
func (m *MockChannelRepository) FindByID(ctx context.Context, channelID string) (*domain.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByMember moke list channels for one member
func (m *MockChannelRepository) FindByMember(ctx context.Context, userID string) ([]domain.Channel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

// ResetUnread moke reset unread count
func (m *MockChannelRepository) ResetUnread(ctx context.Context, channelID, viewerID string) error {
	args := m.Called(ctx, channelID, viewerID)
	return args.Error(0)
}

// MockMessageLog Mock MessageLog
type MockMessageLog struct {
	mock.Mock
}

// Append moke append message
func (m *MockMessageLog) Append(ctx context.Context, msg *domain.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// History moke load channel history
func (m *MockMessageLog) History(ctx context.Context, channelID string) ([]domain.Message, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPubSub Mock PubSubRepo
type MockPubSub struct {
	mock.Mock
}

// Publish moke publisher
func (m *MockPubSub) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}

// Subscribe moke subscriber
func (m *MockPubSub) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	args := m.Called(channel, handler)
	return args.Error(0)
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
