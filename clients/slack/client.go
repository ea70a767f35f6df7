package slack

import (
	"context"

	"github.com/slack-go/slack"

	"atendbackend/clients"
)

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided auth token
func NewSlackClient(authToken string) clients.SlackClient {
	return &SlackClient{
		Client: slack.New(authToken),
	}
}

// PostMessage sends a message to a Slack channel
func (c *SlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	options ...clients.SlackMessageOption,
) (*clients.SlackPostMessageResponse, error) {
	var config clients.SlackMessageConfig
	for _, opt := range options {
		opt.Apply(&config)
	}

	var sdkOptions []slack.MsgOption
	if config.Text != "" {
		sdkOptions = append(sdkOptions, slack.MsgOptionText(config.Text, false))
	}
	if config.ThreadTS != "" {
		sdkOptions = append(sdkOptions, slack.MsgOptionTS(config.ThreadTS))
	}
	if config.ActionButton != nil {
		button := slack.NewButtonBlockElement(
			config.ActionButton.ActionID,
			config.ActionButton.Value,
			slack.NewTextBlockObject(slack.PlainTextType, config.ActionButton.Label, false, false),
		)
		button.Style = slack.StylePrimary

		blocks := []slack.Block{
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, config.Text, false, false),
				nil, nil,
			),
			slack.NewActionBlock("handoff_actions", button),
		}
		sdkOptions = append(sdkOptions, slack.MsgOptionBlocks(blocks...))
	}

	channel, timestamp, err := c.Client.PostMessageContext(ctx, channelID, sdkOptions...)
	if err != nil {
		return nil, err
	}

	return &clients.SlackPostMessageResponse{
		Channel:   channel,
		Timestamp: timestamp,
	}, nil
}

// CreateConversation creates a public channel and returns its ID
func (c *SlackClient) CreateConversation(ctx context.Context, name string) (string, error) {
	channel, err := c.Client.CreateConversationContext(ctx, slack.CreateConversationParams{
		ChannelName: name,
		IsPrivate:   false,
	})
	if err != nil {
		return "", err
	}
	return channel.ID, nil
}

// InviteUsersToConversation invites the given users to a channel
func (c *SlackClient) InviteUsersToConversation(ctx context.Context, channelID string, userIDs ...string) error {
	_, err := c.Client.InviteUsersToConversationContext(ctx, channelID, userIDs...)
	return err
}

// ArchiveConversation archives a channel
func (c *SlackClient) ArchiveConversation(ctx context.Context, channelID string) error {
	return c.Client.ArchiveConversationContext(ctx, channelID)
}

// GetUserInfo gets information about a Slack user
func (c *SlackClient) GetUserInfo(ctx context.Context, userID string) (*clients.SlackUser, error) {
	user, err := c.Client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &clients.SlackUser{
		ID:   user.ID,
		Name: user.Name,
		Profile: clients.SlackUserProfile{
			DisplayName: user.Profile.DisplayName,
			RealName:    user.Profile.RealName,
		},
	}, nil
}
