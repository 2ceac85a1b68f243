package repository

import (
	"context"

	"learning_platform_service/internal/channel/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MessageLog definition append-only message storage. Records are never updated
// or deleted here, only appended and read back whole per channel.
type MessageLog interface {
	Append(ctx context.Context, msg *domain.Message) (string, error)
	History(ctx context.Context, channelID string) ([]domain.Message, error)
}

type messageLog struct {
	coll *mongo.Collection
}

// NewMongoMessageLog create a MessageLog
func NewMongoMessageLog(db *mongo.Database) MessageLog {
	return &messageLog{
		coll: db.Collection("channel_messages"),
	}
}

// Append insert one message, assigning its id
func (l *messageLog) Append(ctx context.Context, msg *domain.Message) (string, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if _, err := l.coll.InsertOne(ctx, msg); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// History read the full message list of one channel. No sort option on purpose:
// delivery order is storage order, callers sort by timestamp before presenting.
func (l *messageLog) History(ctx context.Context, channelID string) ([]domain.Message, error) {
	cur, err := l.coll.Find(ctx, bson.M{"channel_id": channelID})
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
