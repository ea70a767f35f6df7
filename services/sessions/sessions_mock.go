package sessions

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"atendbackend/models"
)

// MockSessionsService is a mock implementation of the SessionsService interface
type MockSessionsService struct {
	mock.Mock
}

func (m *MockSessionsService) GetOrCreateSession(
	ctx context.Context,
	telegramChatID, userName string,
) (*models.Session, error) {
	args := m.Called(ctx, telegramChatID, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionsService) GetSessionByTelegramChatID(
	ctx context.Context,
	telegramChatID string,
) (mo.Option[*models.Session], error) {
	args := m.Called(ctx, telegramChatID)
	return args.Get(0).(mo.Option[*models.Session]), args.Error(1)
}

func (m *MockSessionsService) GetSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(mo.Option[*models.Session]), args.Error(1)
}

func (m *MockSessionsService) GetSessionBySlackChannelID(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.Session], error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(mo.Option[*models.Session]), args.Error(1)
}

func (m *MockSessionsService) MarkAwaitingAgent(ctx context.Context, telegramChatID string) (bool, error) {
	args := m.Called(ctx, telegramChatID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionsService) AssignAgent(
	ctx context.Context,
	telegramChatID, agentID, slackChannelID string,
) (bool, error) {
	args := m.Called(ctx, telegramChatID, agentID, slackChannelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionsService) CloseSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(mo.Option[*models.Session]), args.Error(1)
}
