package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"learning_platform_service/internal/member/domain"
	"learning_platform_service/internal/member/repository"
	"learning_platform_service/pkg/encrypt"
	"learning_platform_service/pkg/logger"
	token "learning_platform_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepo Mock MemberRepository
type MockMemberRepo struct {
	mock.Mock
}

// CreateMember moke create member
func (m *MockMemberRepo) CreateMember(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// UpdateMemberStatus moke update member status
func (m *MockMemberRepo) UpdateMemberStatus(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// FindByMember moke find member
func (m *MockMemberRepo) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	args := m.Called(ctx, memberQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRedisRepo Mock RedisRepository for MemberSession
type MockRedisRepo struct {
	mock.Mock
}

// Set moke redis Set
func (m *MockRedisRepo) Set(ctx context.Context, key string, value domain.MemberSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get moke redis Get
func (m *MockRedisRepo) Get(ctx context.Context, key string) (domain.MemberSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(domain.MemberSession), args.Error(1)
	}
	return domain.MemberSession{}, args.Error(1)
}

// Del moke redis Del
func (m *MockRedisRepo) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ExtendTTL moke redis ExtendTTL
func (m *MockRedisRepo) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

// GetTTL moke redis GetTTL
func (m *MockRedisRepo) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func TestMemberUseCase_Register(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "!!Securepassword111"

	logger.SetNewNop()

	t.Run("register success", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, repository.ErrMemberNotFound).Once()

		var created *domain.Member
		mockRepo.On("CreateMember", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Member)
		}).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, password, "Amy", string(token.RoleStudent))

		assert.NoError(t, err)
		assert.NotEmpty(t, created.MemberID)
		assert.Equal(t, "Amy", created.DisplayName)
		assert.Equal(t, string(token.RoleStudent), created.Role)
		assert.NotEqual(t, password, created.Password)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email already exists", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		existing := &domain.Member{MemberID: "AAA", Email: email}
		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(existing, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, password, "Amy", string(token.RoleStudent))

		assert.Error(t, err)
		assert.Equal(t, "email already exists", err.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, repository.ErrMemberNotFound).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, password, "Amy", "admin")

		assert.Error(t, err)
		assert.Equal(t, "unknown role", err.Error())
		mockRepo.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, repository.ErrMemberNotFound).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, "weak", "Amy", string(token.RoleStudent))

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure aborts the register", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		// a dead database is not a free email
		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, errors.New("connection refused")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, password, "Amy", string(token.RoleStudent))

		assert.Error(t, err)
		assert.Equal(t, "connection refused", err.Error())
		mockRepo.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
	})

	t.Run("create member failure", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, repository.ErrMemberNotFound).Once()
		mockRepo.On("CreateMember", ctx, mock.Anything).Return(errors.New("db error")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Register(ctx, email, password, "Amy", string(token.RoleStudent))

		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestMemberUseCase_Login(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "!!Securepassword111"
	hashedPassword, _ := encrypt.HashPassword(password)

	logger.SetNewNop()

	t.Run("login success", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		existing := &domain.Member{
			MemberID:    "AAA",
			Email:       email,
			Password:    hashedPassword,
			DisplayName: "Amy",
			Role:        string(token.RoleStudent),
			Status:      domain.MemberStatusOffLine,
		}

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(existing, nil).Once()
		mockRepo.On("UpdateMemberStatus", ctx, existing).Return(nil).Once()
		mockRedis.On("Set", mock.Anything, existing.MemberID, mock.Anything, mock.Anything).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		tok, err := uc.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, tok)

		claims, err := token.ParseJWT(tok)
		assert.NoError(t, err)
		assert.Equal(t, "AAA", claims.MemberID)
		assert.Equal(t, "Amy", claims.DisplayName)
		assert.Equal(t, string(token.RoleStudent), claims.Role)

		mockRepo.AssertExpectations(t)
		mockRedis.AssertExpectations(t)
	})

	t.Run("member not found", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(nil, repository.ErrMemberNotFound).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		tok, err := uc.Login(ctx, email, password)

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		existing := &domain.Member{
			MemberID: "AAA",
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(existing, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		tok, err := uc.Login(ctx, email, "wrong_password")

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertNotCalled(t, "UpdateMemberStatus", mock.Anything, mock.Anything)
	})

	t.Run("update status failure", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		existing := &domain.Member{
			MemberID: "AAA",
			Email:    email,
			Password: hashedPassword,
			Role:     string(token.RoleStudent),
		}

		mockRepo.On("FindByMember", ctx, &domain.MemberQuery{Email: &email}).Return(existing, nil).Once()
		mockRepo.On("UpdateMemberStatus", ctx, existing).Return(errors.New("failed to update status")).Once()
		mockRedis.On("Set", mock.Anything, existing.MemberID, mock.Anything, mock.Anything).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		tok, err := uc.Login(ctx, email, password)

		assert.Error(t, err)
		assert.Equal(t, "failed to update status", err.Error())
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})
}

func TestMemberUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	memberID := "AAA"

	logger.SetNewNop()

	validToken, _ := token.GenerateJWT(memberID, "Amy", string(token.RoleStudent), "test")

	t.Run("invalid token", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Logout(ctx, "not-a-token")

		assert.Error(t, err)
		mockRedis.AssertNotCalled(t, "Del", mock.Anything, mock.Anything)
	})

	t.Run("update status failure", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("Del", mock.Anything, memberID).Return(nil).Once()
		mockRepo.On("UpdateMemberStatus", ctx, &domain.Member{
			MemberID: memberID,
			Status:   domain.MemberStatusOffLine,
		}).Return(errors.New("db error")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Logout(ctx, validToken)

		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
		mockRedis.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("logout success", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("Del", mock.Anything, memberID).Return(nil).Once()
		mockRepo.On("UpdateMemberStatus", ctx, &domain.Member{
			MemberID: memberID,
			Status:   domain.MemberStatusOffLine,
		}).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.Logout(ctx, validToken)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})
}

func TestMemberUseCase_CheckSessionTimeout(t *testing.T) {
	ctx := context.Background()
	memberID := "AAA"

	logger.SetNewNop()

	validToken, _ := token.GenerateJWT(memberID, "Amy", string(token.RoleStudent), "test")

	t.Run("invalid token counts as timed out", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		timedOut, err := uc.CheckSessionTimeout(ctx, "not-a-token")

		assert.Error(t, err)
		assert.True(t, timedOut)
	})

	t.Run("session still alive", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("GetTTL", mock.Anything, memberID).Return(60, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		timedOut, err := uc.CheckSessionTimeout(ctx, validToken)

		assert.NoError(t, err)
		assert.False(t, timedOut)
		mockRedis.AssertExpectations(t)
	})

	t.Run("session expired", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("GetTTL", mock.Anything, memberID).Return(0, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		timedOut, err := uc.CheckSessionTimeout(ctx, validToken)

		assert.NoError(t, err)
		assert.True(t, timedOut)
		mockRedis.AssertExpectations(t)
	})
}

func TestMemberUseCase_ReconnectSession(t *testing.T) {
	ctx := context.Background()
	memberID := "AAA"

	logger.SetNewNop()

	validToken, _ := token.GenerateJWT(memberID, "Amy", string(token.RoleStudent), "test")

	t.Run("invalid token", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.ReconnectSession(ctx, "not-a-token")

		assert.Error(t, err)
		mockRedis.AssertNotCalled(t, "ExtendTTL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("session extended", func(t *testing.T) {
		mockRepo := new(MockMemberRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("ExtendTTL", mock.Anything, memberID, time.Hour).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis)
		err := uc.ReconnectSession(ctx, validToken)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
	})
}
