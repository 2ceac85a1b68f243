package repository

import (
	"context"

	"learning_platform_service/internal/recommend/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository definition content catalog reads plus the view-count increment,
// the only mutation this service performs on catalog data
type CatalogRepository interface {
	ListAll(ctx context.Context) ([]domain.ContentItem, error)
	FindItem(ctx context.Context, contentID string) (*domain.ContentItem, error)
	FindBySubject(ctx context.Context, subjectID string) ([]domain.ContentItem, error)
	IncrementViewCount(ctx context.Context, subjectID, contentID string) error
}

type catalogRepository struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepository create a CatalogRepository over the subjects collection
func NewMongoCatalogRepository(db *mongo.Database) CatalogRepository {
	return &catalogRepository{
		coll: db.Collection("subjects"),
	}
}

// ListAll flatten every subject document into one catalog slice.
// Embedded items get their owning subject id filled in, so callers never
// depend on the documents being stored with it.
func (r *catalogRepository) ListAll(ctx context.Context) ([]domain.ContentItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var subjects []domain.Subject
	if err := cur.All(ctx, &subjects); err != nil {
		return nil, err
	}

	var items []domain.ContentItem
	for _, subject := range subjects {
		for _, item := range subject.Contents {
			item.SubjectID = subject.ID
			items = append(items, item)
		}
	}
	return items, nil
}

// FindItem locate one item by id inside its subject document
func (r *catalogRepository) FindItem(ctx context.Context, contentID string) (*domain.ContentItem, error) {
	filter := bson.M{"contents.id": contentID}
	var subject domain.Subject
	err := r.coll.FindOne(ctx, filter).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	for _, item := range subject.Contents {
		if item.ID == contentID {
			item.SubjectID = subject.ID
			return &item, nil
		}
	}
	return nil, nil
}

// FindBySubject return the items of one subject
func (r *catalogRepository) FindBySubject(ctx context.Context, subjectID string) ([]domain.ContentItem, error) {
	var subject domain.Subject
	err := r.coll.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	items := make([]domain.ContentItem, 0, len(subject.Contents))
	for _, item := range subject.Contents {
		item.SubjectID = subject.ID
		items = append(items, item)
	}
	return items, nil
}

// IncrementViewCount bump the embedded item's view_count by one
func (r *catalogRepository) IncrementViewCount(ctx context.Context, subjectID, contentID string) error {
	filter := bson.M{"_id": subjectID, "contents.id": contentID}
	update := bson.M{"$inc": bson.M{"contents.$.view_count": 1}}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}
