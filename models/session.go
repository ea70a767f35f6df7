package models

import (
	"time"
)

type SessionState string

const (
	// SessionStateNormal means the user talks to the bot and messages go
	// through the intent router.
	SessionStateNormal SessionState = "normal"
	// SessionStateAwaitingAgent means a human handoff was requested and
	// inbound messages are relayed verbatim to the session's Slack channel.
	SessionStateAwaitingAgent SessionState = "awaiting_agent"
)

// Session tracks one Telegram user's handoff state. Sessions are created on
// the first handoff request and never deleted. AgentID and SlackChannelID
// are set together when an agent claims the handoff and cleared together on
// close - there is at most one open handoff channel per session.
type Session struct {
	ID             string       `db:"id"               json:"id"`
	TelegramChatID string       `db:"telegram_chat_id" json:"telegram_chat_id"`
	UserName       string       `db:"user_name"        json:"user_name"`
	State          SessionState `db:"state"            json:"state"`
	AgentID        *string      `db:"agent_id"         json:"agent_id,omitempty"`
	SlackChannelID *string      `db:"slack_channel_id" json:"slack_channel_id,omitempty"`
	CreatedAt      time.Time    `db:"created_at"       json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"       json:"updated_at"`
}

// IsClaimed reports whether an agent has already claimed this session.
func (s *Session) IsClaimed() bool {
	return s.State == SessionStateAwaitingAgent && s.AgentID != nil && s.SlackChannelID != nil
}
