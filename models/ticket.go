package models

import (
	"time"
)

// Ticket is a support problem reported through the bot. The chat id may be
// empty when the webhook arrives without a platform payload.
type Ticket struct {
	ID             string    `db:"id"               json:"id"`
	TelegramChatID string    `db:"telegram_chat_id" json:"telegram_chat_id"`
	UserName       string    `db:"user_name"        json:"user_name"`
	Problem        string    `db:"problem"          json:"problem"`
	CreatedAt      time.Time `db:"created_at"       json:"created_at"`
}
