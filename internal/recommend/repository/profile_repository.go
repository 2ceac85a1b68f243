package repository

import (
	"context"

	"learning_platform_service/internal/recommend/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileRepository definition learner profile reads. Profiles are written by the
// assessment workflow, never here.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.LearnerProfile, error)
}

type profileRepository struct {
	coll *mongo.Collection
}

// NewMongoProfileRepository create a ProfileRepository
func NewMongoProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{
		coll: db.Collection("learner_profiles"),
	}
}

// FindByUserID a missing profile document is returned as nil, not an error
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*domain.LearnerProfile, error) {
	var profile domain.LearnerProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
