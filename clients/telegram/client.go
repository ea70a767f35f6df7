package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"atendbackend/clients"
)

// TelegramClient implements the clients.TelegramClient interface using the
// go-telegram-bot-api SDK. Only outbound sends are needed - inbound traffic
// arrives through the Dialogflow webhook.
type TelegramClient struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramClient creates a new Telegram client with the provided bot token
func NewTelegramClient(botToken string) (clients.TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &TelegramClient{bot: bot}, nil
}

// SendMessage sends a plain text message to a Telegram chat. The SDK's Send
// call is not cancellable mid-flight, so the context is only honored before
// the request goes out.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("telegram send aborted: %w", err)
	}

	numericChatID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}

	msg := tgbotapi.NewMessage(numericChatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
