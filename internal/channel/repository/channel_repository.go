package repository

import (
	"context"

	"learning_platform_service/internal/channel/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChannelRepository definition channel metadata store
type ChannelRepository interface {
	// ApplySend upsert the metadata for one send: preview fields are replaced,
	// unread_count is incremented, the document is created on first use.
	ApplySend(ctx context.Context, channel *domain.Channel) error
	FindByID(ctx context.Context, channelID string) (*domain.Channel, error)
	FindByMember(ctx context.Context, userID string) ([]domain.Channel, error)
	// ResetUnread zero unread_count only when the viewer is not the last sender
	ResetUnread(ctx context.Context, channelID, viewerID string) error
}

type channelRepository struct {
	coll *mongo.Collection
}

// NewMongoChannelRepository create a ChannelRepository
func NewMongoChannelRepository(db *mongo.Database) ChannelRepository {
	return &channelRepository{
		coll: db.Collection("channels"),
	}
}

// ApplySend last-writer-wins at field level, no version token
func (r *channelRepository) ApplySend(ctx context.Context, channel *domain.Channel) error {
	filter := bson.M{"_id": channel.ChannelID}
	update := bson.M{
		"$set": bson.M{
			"guider_id":         channel.GuiderID,
			"student_id":        channel.StudentID,
			"members":           channel.Members,
			"last_message":      channel.LastMessage,
			"last_message_time": channel.LastMessageTime,
			"last_sender_id":    channel.LastSenderID,
		},
		"$inc": bson.M{"unread_count": 1},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID find channel metadata by id
func (r *channelRepository) FindByID(ctx context.Context, channelID string) (*domain.Channel, error) {
	var channel domain.Channel
	err := r.coll.FindOne(ctx, bson.M{"_id": channelID}).Decode(&channel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// FindByMember conversation list for one user, newest first
func (r *channelRepository) FindByMember(ctx context.Context, userID string) ([]domain.Channel, error) {
	filter := bson.M{"members": userID}
	opts := options.Find().SetSort(bson.M{"last_message_time": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var channels []domain.Channel
	if err := cur.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// ResetUnread the filter carries the last-sender condition so a viewer who sent
// the last message leaves the count untouched
func (r *channelRepository) ResetUnread(ctx context.Context, channelID, viewerID string) error {
	filter := bson.M{
		"_id":            channelID,
		"last_sender_id": bson.M{"$ne": viewerID},
	}
	update := bson.M{"$set": bson.M{"unread_count": 0}}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}
