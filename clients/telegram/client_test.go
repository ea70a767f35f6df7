package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessage_CancelledContext(t *testing.T) {
	client := &TelegramClient{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SendMessage(ctx, "555", "olá")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendMessage_InvalidChatID(t *testing.T) {
	client := &TelegramClient{}

	err := client.SendMessage(context.Background(), "not-a-number", "olá")
	assert.ErrorContains(t, err, "invalid telegram chat id")
}
