package domain

// Action websocket request action
type Action string

const (
	// OpenChannel websocket action open_channel
	OpenChannel Action = "open_channel"
	// LeaveChannel websocket action leave_channel
	LeaveChannel Action = "leave_channel"

	// SendMessage websocket action send_message
	SendMessage Action = "send_message"

	// ListChannels websocket action list_channels
	ListChannels Action = "list_channels"

	// NotifyMessages websocket action notify_messages, pushed on every channel change
	NotifyMessages Action = "notify_messages"
)

// WSRequest websocket Request
type WSRequest struct {
	Action    string `json:"action"`
	PartnerID string `json:"partner_id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
