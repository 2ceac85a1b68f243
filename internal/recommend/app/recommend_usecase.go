package app

import (
	"context"
	"fmt"
	"time"

	"learning_platform_service/internal/recommend/domain"
	"learning_platform_service/internal/recommend/repository"
	"learning_platform_service/pkg/database"
	errprocess "learning_platform_service/pkg/err"
	"learning_platform_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimilarLimit fixed top-N for the similar-items ranking
const SimilarLimit = 10

// RecommendUseCase application services around the tag matcher
type RecommendUseCase interface {
	GetRecommendations(ctx context.Context, userID string) ([]domain.Recommendation, error)
	GetSimilar(ctx context.Context, contentID string) ([]domain.SimilarItem, error)
	Watch(ctx context.Context, userID, contentID string) (*domain.WatchRes, error)
	ListSubjectContents(ctx context.Context, subjectID string) ([]domain.ContentItem, error)
}

type recommendUseCase struct {
	catalogRepo repository.CatalogRepository
	profileRepo repository.ProfileRepository
	objectStore database.ObjectStoreRepo
	events      database.EventRepo
	watchURLTTL time.Duration
}

// NewRecommendUseCase create a new RecommendUseCase
func NewRecommendUseCase(
	catalogRepo repository.CatalogRepository,
	profileRepo repository.ProfileRepository,
	objectStore database.ObjectStoreRepo,
	events database.EventRepo,
	watchURLTTL time.Duration,
) RecommendUseCase {
	return &recommendUseCase{
		catalogRepo: catalogRepo,
		profileRepo: profileRepo,
		objectStore: objectStore,
		events:      events,
		watchURLTTL: watchURLTTL,
	}
}

// GetRecommendations fetch the profile and the catalog, run the matcher.
// A missing profile degrades to an empty list, it is not a failure.
func (r *recommendUseCase) GetRecommendations(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	profile, err := r.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		errMsg := fmt.Sprintf("userID[%s] load profile err : %v", userID, err)
		return nil, errprocess.Set(errMsg)
	}
	if profile == nil || len(profile.Tags) == 0 {
		return []domain.Recommendation{}, nil
	}

	catalog, err := r.catalogRepo.ListAll(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("userID[%s] load catalog err : %v", userID, err)
		return nil, errprocess.Set(errMsg)
	}

	return domain.MatchRecommendations(*profile, catalog), nil
}

// GetSimilar rank the rest of the catalog against one item's tags, same-subject first
func (r *recommendUseCase) GetSimilar(ctx context.Context, contentID string) ([]domain.SimilarItem, error) {
	item, err := r.catalogRepo.FindItem(ctx, contentID)
	if err != nil {
		errMsg := fmt.Sprintf("contentID[%s] find item err : %v", contentID, err)
		return nil, errprocess.Set(errMsg)
	}
	if item == nil {
		errMsg := fmt.Sprintf("contentID[%s] content not found", contentID)
		return nil, errprocess.Set(errMsg)
	}

	catalog, err := r.catalogRepo.ListAll(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("contentID[%s] load catalog err : %v", contentID, err)
		return nil, errprocess.Set(errMsg)
	}

	return domain.MatchSimilar(item.ID, item.Tags, item.SubjectID, catalog, SimilarLimit), nil
}

// Watch presign the item's object URL, bump its view count and emit the view event.
// Only the presign can fail the request; the counter and the event are best effort.
func (r *recommendUseCase) Watch(ctx context.Context, userID, contentID string) (*domain.WatchRes, error) {
	item, err := r.catalogRepo.FindItem(ctx, contentID)
	if err != nil {
		errMsg := fmt.Sprintf("contentID[%s] find item err : %v", contentID, err)
		return nil, errprocess.Set(errMsg)
	}
	if item == nil {
		errMsg := fmt.Sprintf("contentID[%s] content not found", contentID)
		return nil, errprocess.Set(errMsg)
	}

	watchURL, err := r.objectStore.PresignGetURL(ctx, item.ObjectKey, r.watchURLTTL)
	if err != nil {
		errMsg := fmt.Sprintf("contentID[%s] presign watch URL err : %v", contentID, err)
		return nil, errprocess.Set(errMsg)
	}

	if err := r.catalogRepo.IncrementViewCount(ctx, item.SubjectID, item.ID); err != nil {
		logger.Log.Error("increment view count err",
			zap.String("contentID", contentID), zap.Error(err))
	}

	if r.events != nil {
		event := domain.ContentViewedEvent{
			EventID:   uuid.New().String(),
			UserID:    userID,
			ContentID: item.ID,
			SubjectID: item.SubjectID,
			ViewedAt:  time.Now().UnixMilli(),
		}
		if err := r.events.Publish(ctx, item.ID, event); err != nil {
			logger.Log.Error("publish content viewed event err",
				zap.String("contentID", contentID), zap.Error(err))
		}
	}

	return &domain.WatchRes{
		ContentID: item.ID,
		Name:      item.Name,
		WatchURL:  watchURL,
	}, nil
}

// ListSubjectContents list one subject's catalog slice
func (r *recommendUseCase) ListSubjectContents(ctx context.Context, subjectID string) ([]domain.ContentItem, error) {
	items, err := r.catalogRepo.FindBySubject(ctx, subjectID)
	if err != nil {
		errMsg := fmt.Sprintf("subjectID[%s] list contents err : %v", subjectID, err)
		return nil, errprocess.Set(errMsg)
	}
	return items, nil
}
