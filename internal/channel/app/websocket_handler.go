package app

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"learning_platform_service/internal/channel/domain"
	"learning_platform_service/pkg/logger"
	"learning_platform_service/pkg/middlewares"
	"learning_platform_service/pkg/token"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChannelWebsocketHandler websocket entry for the two-party messaging channel
type ChannelWebsocketHandler struct {
	channelUC *ChannelUseCase
}

// NewChannelWebsocketHandler create ChannelWebsocketHandler
func NewChannelWebsocketHandler(channelUC *ChannelUseCase) *ChannelWebsocketHandler {
	return &ChannelWebsocketHandler{
		channelUC: channelUC,
	}
}

// connState per-connection state. The live listener is tied to the connection:
// closing the socket or leaving the channel must release it.
type connState struct {
	memberID   string
	memberName string
	isGuider   bool
	sub        *Subscription

	// the read loop, the keepalive pinger and the subscription callback all
	// write to this connection; frame writes must never interleave
	writeMu sync.Mutex
	write   func(messageType int, data []byte) error
}

// writeFrame write one frame, serialized across the writing goroutines
func (s *connState) writeFrame(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write(messageType, data)
}

func (s *connState) dropSubscription() {
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

// HandleConnection is the websocket entry point
func (h *ChannelWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenMember := conn.Locals(middlewares.TokenMemberID)
	memberID, ok := tokenMember.(string)
	logger.Log.Info("websocket handle memberID", zap.String("userID", memberID), zap.String("ok", strconv.FormatBool(ok)))

	memberName, _ := conn.Locals(middlewares.TokenDisplayName).(string)
	role, _ := conn.Locals(middlewares.TokenRole).(string)

	state := &connState{
		memberID:   memberID,
		memberName: memberName,
		isGuider:   role == string(token.RoleGuider),
		write:      conn.WriteMessage,
	}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		state.dropSubscription()
		logger.Log.Info("websocket close", zap.String("userID", memberID))
		conn.Close()
		cancel()
	}()

	// fiber answers close frames itself, the handler only logs
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		logger.Log.Infof("Received PING:", appData)
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// periodic ping keeps idle chat connections alive
	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := state.writeFrame(websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
				logger.Log.Infof("%s Ping sent", memberID)
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for member:", memberID)
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, state, mt, message)
	}
}

func (h *ChannelWebsocketHandler) execWebsocketAction(ctx context.Context, state *connState, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, state, msg)

	default:
		h.sendError(state, "unknown action")
	}
}

func (h *ChannelWebsocketHandler) textMessageAction(ctx context.Context, state *connState, msg []byte) {

	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("json unmarshal error:", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {

	// open a conversation: clear unread, deliver history now and on every change
	case string(domain.OpenChannel):
		channelID := req.ChannelID
		if channelID == "" {
			channelID = domain.DeriveChannelID(state.memberID, req.PartnerID)
		}

		// one live channel per connection
		state.dropSubscription()

		msgs, err := h.channelUC.Open(ctx, channelID, state.memberID)
		if err != nil {
			resp.Error = err.Error()
			break
		}

		sub, err := h.channelUC.Subscribe(context.Background(), channelID, func(update []domain.Message) {
			h.sendResponse(state, domain.WSResponse{
				Action:  string(domain.NotifyMessages),
				Success: true,
				Payload: map[string]interface{}{
					"channel_id": channelID,
					"messages":   update,
				},
			})
		})
		if err != nil {
			resp.Error = err.Error()
			break
		}
		state.sub = sub

		resp.Success = true
		resp.Payload["channel_id"] = channelID
		resp.Payload["messages"] = msgs

	case string(domain.LeaveChannel):
		state.dropSubscription()
		resp.Success = true
		resp.Payload["leave_channel"] = req.ChannelID

	case string(domain.SendMessage):
		res, err := h.channelUC.Send(ctx, SendReq{
			SenderID:   state.memberID,
			SenderName: state.memberName,
			IsGuider:   state.isGuider,
			PartnerID:  req.PartnerID,
			Text:       req.Content,
		})
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["channel_id"] = res.ChannelID
			resp.Payload["message_id"] = res.MessageID
			resp.Payload["skipped"] = res.Skipped
		}

	case string(domain.ListChannels):
		channels, err := h.channelUC.ListChannels(ctx, state.memberID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["channels"] = channels
		}

	default:
		h.sendError(state, "unknown message types ")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("MemberID", state.memberID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	h.sendResponse(state, resp)
}

// sendResponse send JSON to the client
func (h *ChannelWebsocketHandler) sendResponse(state *connState, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := state.writeFrame(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChannelWebsocketHandler) sendError(state *connState, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(state, resp)
}
