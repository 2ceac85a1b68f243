package domain

import (
	"sort"
	"strings"
)

// MaxMessageLen upper bound for message text, in runes
const MaxMessageLen = 500

// Channel metadata document for one student/guider pair.
// Created lazily by the first send, keyed by the derived channel id.
type Channel struct {
	ChannelID       string   `bson:"_id" json:"channel_id"`
	GuiderID        string   `bson:"guider_id,omitempty" json:"guider_id,omitempty"`
	StudentID       string   `bson:"student_id,omitempty" json:"student_id,omitempty"`
	Members         []string `bson:"members" json:"members"`
	LastMessage     string   `bson:"last_message" json:"last_message"`
	LastMessageTime int64    `bson:"last_message_time" json:"last_message_time"`
	LastSenderID    string   `bson:"last_sender_id" json:"last_sender_id"`
	UnreadCount     int      `bson:"unread_count" json:"unread_count"`
}

// Message one chat message, append-only, never edited
type Message struct {
	ID         string `bson:"id" json:"id"`
	ChannelID  string `bson:"channel_id" json:"channel_id"`
	SenderID   string `bson:"sender_id" json:"sender_id"`
	SenderName string `bson:"sender_name" json:"sender_name"`
	Text       string `bson:"text" json:"text"`
	Timestamp  int64  `bson:"timestamp" json:"timestamp"`
	IsGuider   bool   `bson:"is_guider" json:"is_guider"`
}

// MessageSentEvent emitted for the push-notification delivery service
type MessageSentEvent struct {
	EventID     string `bson:"-" json:"event_id"`
	ChannelID   string `json:"channel_id"`
	MessageID   string `json:"message_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Preview     string `json:"preview"`
	SentAt      int64  `json:"sent_at"`
}

// DeriveChannelID derive the channel id from the unordered participant pair.
// Both sides compute the same id with no lookup, so the pair is sorted first.
func DeriveChannelID(userA, userB string) string {
	if strings.Compare(userB, userA) < 0 {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// SortMessages sort ascending by timestamp, stable. The log may hand back
// messages in storage-key order, so this runs before every delivery.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}
