package telegram

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTelegramClient is a mock implementation of the clients.TelegramClient interface
type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, chatID string, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}
