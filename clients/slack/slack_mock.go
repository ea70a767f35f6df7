package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atendbackend/clients"
)

// MockSlackClient is a mock implementation of the clients.SlackClient interface
type MockSlackClient struct {
	mock.Mock
}

func (m *MockSlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	options ...clients.SlackMessageOption,
) (*clients.SlackPostMessageResponse, error) {
	args := m.Called(ctx, channelID, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackPostMessageResponse), args.Error(1)
}

func (m *MockSlackClient) CreateConversation(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockSlackClient) InviteUsersToConversation(ctx context.Context, channelID string, userIDs ...string) error {
	args := m.Called(ctx, channelID, userIDs)
	return args.Error(0)
}

func (m *MockSlackClient) ArchiveConversation(ctx context.Context, channelID string) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockSlackClient) GetUserInfo(ctx context.Context, userID string) (*clients.SlackUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackUser), args.Error(1)
}
