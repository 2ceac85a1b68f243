package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"learning_platform_service/internal/channel/domain"
	"learning_platform_service/internal/channel/repository"
	"learning_platform_service/pkg"
	"learning_platform_service/pkg/database"
	errprocess "learning_platform_service/pkg/err"
	"learning_platform_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// topicPrefix redis topic per channel
const topicPrefix = "channel:"

// SendReq usecase send message request
type SendReq struct {
	SenderID   string
	SenderName string
	IsGuider   bool
	PartnerID  string
	Text       string
}

// SendRes usecase send message response. Skipped is set when the trimmed text
// was empty and nothing was written.
type SendRes struct {
	ChannelID string
	MessageID string
	Skipped   bool
}

// ChannelUseCase two-party messaging over the channel metadata store and the
// append-only message log
type ChannelUseCase struct {
	chanRepo repository.ChannelRepository
	msgLog   repository.MessageLog
	pubSub   repository.PubSubRepo
	events   database.EventRepo

	// send timestamps must keep increasing even when the wall clock does not
	mu     sync.Mutex
	lastTS int64
}

// NewChannelUseCase init channel use case
func NewChannelUseCase(
	chanRepo repository.ChannelRepository,
	msgLog repository.MessageLog,
	pubSub repository.PubSubRepo,
	events database.EventRepo,
) *ChannelUseCase {
	return &ChannelUseCase{
		chanRepo: chanRepo,
		msgLog:   msgLog,
		pubSub:   pubSub,
		events:   events,
	}
}

// nextTimestamp wall-clock milliseconds, bumped past the previous value when
// the clock stalls or steps back
func (uc *ChannelUseCase) nextTimestamp() int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	ts := time.Now().UnixMilli()
	if ts <= uc.lastTS {
		ts = uc.lastTS + 1
	}
	uc.lastTS = ts
	return ts
}

// Send write one message. Two separate writes: metadata first, then the log
// append. A failure between the two leaves the preview ahead of the log; the
// next successful send repairs it, there is no rollback.
func (uc *ChannelUseCase) Send(ctx context.Context, req SendReq) (*SendRes, error) {
	channelID := domain.DeriveChannelID(req.SenderID, req.PartnerID)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		// deliberate debounce, not a validation failure
		return &SendRes{ChannelID: channelID, Skipped: true}, nil
	}
	if len([]rune(text)) > domain.MaxMessageLen {
		errMsg := fmt.Sprintf("channelID[%s] message exceeds %d characters", channelID, domain.MaxMessageLen)
		return nil, errprocess.Set(errMsg)
	}

	guiderID, studentID := req.SenderID, req.PartnerID
	if !req.IsGuider {
		guiderID, studentID = req.PartnerID, req.SenderID
	}

	ts := uc.nextTimestamp()

	meta := &domain.Channel{
		ChannelID:       channelID,
		GuiderID:        guiderID,
		StudentID:       studentID,
		Members:         []string{req.SenderID, req.PartnerID},
		LastMessage:     text,
		LastMessageTime: ts,
		LastSenderID:    req.SenderID,
	}
	if err := uc.chanRepo.ApplySend(ctx, meta); err != nil {
		errMsg := fmt.Sprintf("channelID[%s] update channel metadata err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}

	msg := &domain.Message{
		ChannelID:  channelID,
		SenderID:   req.SenderID,
		SenderName: req.SenderName,
		Text:       text,
		Timestamp:  ts,
		IsGuider:   req.IsGuider,
	}
	msgID, err := uc.msgLog.Append(ctx, msg)
	if err != nil {
		errMsg := fmt.Sprintf("channelID[%s] append message err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}

	// wake live subscribers on every node
	if uc.pubSub != nil {
		if err := uc.pubSub.Publish(topicPrefix+channelID, msg); err != nil {
			logger.Log.Error("publish channel change err",
				zap.String("channelID", channelID), zap.Error(err))
		}
	}

	// hand the push-notification service its event, best effort
	if uc.events != nil {
		event := domain.MessageSentEvent{
			EventID:     uuid.New().String(),
			ChannelID:   channelID,
			MessageID:   msgID,
			SenderID:    req.SenderID,
			RecipientID: req.PartnerID,
			Preview:     text,
			SentAt:      ts,
		}
		if err := uc.events.Publish(ctx, channelID, event); err != nil {
			logger.Log.Error("publish message sent event err",
				zap.String("channelID", channelID), zap.Error(err))
		}
	}

	return &SendRes{ChannelID: channelID, MessageID: msgID}, nil
}

// History full message list of the channel, sorted ascending by timestamp
func (uc *ChannelUseCase) History(ctx context.Context, channelID string) ([]domain.Message, error) {
	msgs, err := uc.msgLog.History(ctx, channelID)
	if err != nil {
		errMsg := fmt.Sprintf("channelID[%s] load history err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}
	domain.SortMessages(msgs)
	return msgs, nil
}

// Open clear the unread count for the viewer and return the sorted history.
// A channel that already exists only opens for its own members; a not-yet-created
// channel opens empty so either side can start the conversation.
func (uc *ChannelUseCase) Open(ctx context.Context, channelID, viewerID string) ([]domain.Message, error) {
	channel, err := uc.chanRepo.FindByID(ctx, channelID)
	if err != nil {
		errMsg := fmt.Sprintf("channelID[%s] find channel err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}
	if channel != nil && !pkg.Contains(channel.Members, viewerID) {
		errMsg := fmt.Sprintf("channelID[%s] viewer[%s] is not a member", channelID, viewerID)
		return nil, errprocess.Set(errMsg)
	}

	if err := uc.chanRepo.ResetUnread(ctx, channelID, viewerID); err != nil {
		errMsg := fmt.Sprintf("channelID[%s] reset unread err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}
	return uc.History(ctx, channelID)
}

// ListChannels conversation list with metadata previews
func (uc *ChannelUseCase) ListChannels(ctx context.Context, userID string) ([]domain.Channel, error) {
	channels, err := uc.chanRepo.FindByMember(ctx, userID)
	if err != nil {
		errMsg := fmt.Sprintf("userID[%s] list channels err : %v", userID, err)
		return nil, errprocess.Set(errMsg)
	}
	return channels, nil
}

// Subscription live listener on one channel. Close must be called when the
// consuming connection goes away, otherwise the listener leaks for the process
// lifetime.
type Subscription struct {
	cancel context.CancelFunc
}

// Close release the listener
func (s *Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Subscribe deliver the complete sorted history now and after every change.
// The payload on the wire only signals the change; each delivery re-reads the
// log so subscribers never see partial or unordered views. The listener is
// registered before the initial read: redis pub/sub has no replay, so a send
// landing between the two must trigger a redelivery rather than vanish. The
// worst case is one duplicate delivery, which redelivery semantics absorb.
func (uc *ChannelUseCase) Subscribe(ctx context.Context, channelID string, onUpdate func([]domain.Message)) (*Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	err := uc.pubSub.Subscribe(subCtx, topicPrefix+channelID, func(payload []byte) {
		msgs, err := uc.History(subCtx, channelID)
		if err != nil {
			logger.Log.Error("reload history on change err",
				zap.String("channelID", channelID), zap.Error(err))
			return
		}
		onUpdate(msgs)
	})
	if err != nil {
		cancel()
		errMsg := fmt.Sprintf("channelID[%s] subscribe err : %v", channelID, err)
		return nil, errprocess.Set(errMsg)
	}

	msgs, err := uc.History(ctx, channelID)
	if err != nil {
		cancel()
		return nil, err
	}
	onUpdate(msgs)

	return &Subscription{cancel: cancel}, nil
}
