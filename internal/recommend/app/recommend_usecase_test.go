package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"learning_platform_service/internal/recommend/domain"
	"learning_platform_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecommendUseCase_GetRecommendations(t *testing.T) {
	ctx := context.Background()
	userID := "student-1"

	logger.SetNewNop()

	catalog := []domain.ContentItem{
		{ID: "v1", Tags: []string{"visual", "kinesthetic"}, SubjectID: "math"},
		{ID: "v2", Tags: []string{"auditory"}, SubjectID: "math"},
	}

	t.Run("missing profile degrades to an empty list", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockProfile.On("FindByUserID", ctx, userID).Return(nil, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		recs, err := uc.GetRecommendations(ctx, userID)

		assert.NoError(t, err)
		assert.Empty(t, recs)
		assert.NotNil(t, recs)
		mockCatalog.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("profile with no tags degrades the same way", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockProfile.On("FindByUserID", ctx, userID).Return(&domain.LearnerProfile{UserID: userID}, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		recs, err := uc.GetRecommendations(ctx, userID)

		assert.NoError(t, err)
		assert.Empty(t, recs)
		mockCatalog.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("matching items come back ranked", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		profile := &domain.LearnerProfile{UserID: userID, Tags: []string{"visual", "auditory"}}
		mockProfile.On("FindByUserID", ctx, userID).Return(profile, nil).Once()
		mockCatalog.On("ListAll", ctx).Return(catalog, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		recs, err := uc.GetRecommendations(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.Equal(t, 50, recs[0].MatchPercentage)
		mockProfile.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("profile load failure is an error", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockProfile.On("FindByUserID", ctx, userID).Return(nil, errors.New("db error")).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		_, err := uc.GetRecommendations(ctx, userID)

		assert.Error(t, err)
	})
}

func TestRecommendUseCase_GetSimilar(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	t.Run("unknown content is an error", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockCatalog.On("FindItem", ctx, "missing").Return(nil, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		_, err := uc.GetSimilar(ctx, "missing")

		assert.Error(t, err)
		mockCatalog.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("the item itself never appears in its own list", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		item := &domain.ContentItem{ID: "v1", Tags: []string{"algebra"}, SubjectID: "math"}
		catalog := []domain.ContentItem{
			{ID: "v1", Tags: []string{"algebra"}, SubjectID: "math"},
			{ID: "v2", Tags: []string{"algebra"}, SubjectID: "math"},
		}
		mockCatalog.On("FindItem", ctx, "v1").Return(item, nil).Once()
		mockCatalog.On("ListAll", ctx).Return(catalog, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		similar, err := uc.GetSimilar(ctx, "v1")

		assert.NoError(t, err)
		assert.Len(t, similar, 1)
		assert.Equal(t, "v2", similar[0].Item.ID)
		mockCatalog.AssertExpectations(t)
	})
}

func TestRecommendUseCase_Watch(t *testing.T) {
	ctx := context.Background()
	userID := "student-1"

	logger.SetNewNop()

	item := &domain.ContentItem{ID: "v1", Name: "intro", SubjectID: "math", ObjectKey: "videos/v1.mp4"}

	t.Run("presign failure fails the watch", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockCatalog.On("FindItem", ctx, "v1").Return(item, nil).Once()
		mockStore.On("PresignGetURL", ctx, "videos/v1.mp4", time.Hour).Return("", errors.New("minio down")).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		_, err := uc.Watch(ctx, userID, "v1")

		assert.Error(t, err)
		mockCatalog.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("counter and event failures are best effort", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockCatalog.On("FindItem", ctx, "v1").Return(item, nil).Once()
		mockStore.On("PresignGetURL", ctx, "videos/v1.mp4", time.Hour).Return("https://store/v1", nil).Once()
		mockCatalog.On("IncrementViewCount", ctx, "math", "v1").Return(errors.New("db error")).Once()
		mockEvents.On("Publish", ctx, "v1", mock.Anything).Return(errors.New("kafka down")).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		res, err := uc.Watch(ctx, userID, "v1")

		assert.NoError(t, err)
		assert.Equal(t, "https://store/v1", res.WatchURL)
		assert.Equal(t, "intro", res.Name)
		mockCatalog.AssertExpectations(t)
		mockEvents.AssertExpectations(t)
	})

	t.Run("successful watch emits the view event", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		mockCatalog.On("FindItem", ctx, "v1").Return(item, nil).Once()
		mockStore.On("PresignGetURL", ctx, "videos/v1.mp4", time.Hour).Return("https://store/v1", nil).Once()
		mockCatalog.On("IncrementViewCount", ctx, "math", "v1").Return(nil).Once()

		var event domain.ContentViewedEvent
		mockEvents.On("Publish", ctx, "v1", mock.Anything).Run(func(args mock.Arguments) {
			event = args.Get(2).(domain.ContentViewedEvent)
		}).Return(nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		res, err := uc.Watch(ctx, userID, "v1")

		assert.NoError(t, err)
		assert.Equal(t, "v1", res.ContentID)
		assert.Equal(t, userID, event.UserID)
		assert.Equal(t, "math", event.SubjectID)
		assert.NotEmpty(t, event.EventID)
		mockEvents.AssertExpectations(t)
	})
}

func TestRecommendUseCase_ListSubjectContents(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	t.Run("subject slice is handed through", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockProfile := new(MockProfileRepository)
		mockStore := new(MockObjectStore)
		mockEvents := new(MockEventRepo)

		items := []domain.ContentItem{{ID: "v1", SubjectID: "math"}}
		mockCatalog.On("FindBySubject", ctx, "math").Return(items, nil).Once()

		uc := NewRecommendUseCase(mockCatalog, mockProfile, mockStore, mockEvents, time.Hour)
		got, err := uc.ListSubjectContents(ctx, "math")

		assert.NoError(t, err)
		assert.Equal(t, items, got)
		mockCatalog.AssertExpectations(t)
	})
}
