package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atendbackend/models"
)

// MockBotUseCase is a mock implementation of usecases.BotUseCaseInterface
type MockBotUseCase struct {
	mock.Mock
}

func (m *MockBotUseCase) ProcessDialogflowWebhook(
	ctx context.Context,
	req *models.WebhookRequest,
) (*models.WebhookResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebhookResponse), args.Error(1)
}

func (m *MockBotUseCase) ProcessHandoffClaim(
	ctx context.Context,
	agentID string,
	value models.HandoffActionValue,
) error {
	args := m.Called(ctx, agentID, value)
	return args.Error(0)
}

func (m *MockBotUseCase) ProcessChannelMessage(ctx context.Context, channelID, userID, text string) error {
	args := m.Called(ctx, channelID, userID, text)
	return args.Error(0)
}

func (m *MockBotUseCase) ProcessCloseCommand(ctx context.Context, agentID, argText string) (string, error) {
	args := m.Called(ctx, agentID, argText)
	return args.String(0), args.Error(1)
}
