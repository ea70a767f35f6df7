package clients

import (
	"context"
)

// SlackMessageConfig holds the resolved configuration for posting a message
type SlackMessageConfig struct {
	Text         string
	ThreadTS     string
	ActionButton *SlackActionButton
}

// SlackActionButton describes a single interactive button attached to a message
type SlackActionButton struct {
	ActionID string
	Label    string
	Value    string
}

// SlackMessageOption configures a message before posting
type SlackMessageOption interface {
	Apply(*SlackMessageConfig)
}

type slackMessageOptionFunc func(*SlackMessageConfig)

func (f slackMessageOptionFunc) Apply(c *SlackMessageConfig) { f(c) }

// WithText sets the message text
func WithText(text string) SlackMessageOption {
	return slackMessageOptionFunc(func(c *SlackMessageConfig) { c.Text = text })
}

// WithThreadTS posts the message into a thread
func WithThreadTS(threadTS string) SlackMessageOption {
	return slackMessageOptionFunc(func(c *SlackMessageConfig) { c.ThreadTS = threadTS })
}

// WithActionButton attaches an interactive button whose value is delivered
// back on the actions callback
func WithActionButton(actionID, label, value string) SlackMessageOption {
	return slackMessageOptionFunc(func(c *SlackMessageConfig) {
		c.ActionButton = &SlackActionButton{ActionID: actionID, Label: label, Value: value}
	})
}

type SlackPostMessageResponse struct {
	Channel   string
	Timestamp string
}

type SlackUser struct {
	ID      string
	Name    string
	Profile SlackUserProfile
}

type SlackUserProfile struct {
	DisplayName string
	RealName    string
}

// SlackClient defines the Slack operations the handoff flow needs
type SlackClient interface {
	PostMessage(ctx context.Context, channelID string, options ...SlackMessageOption) (*SlackPostMessageResponse, error)
	CreateConversation(ctx context.Context, name string) (string, error)
	InviteUsersToConversation(ctx context.Context, channelID string, userIDs ...string) error
	ArchiveConversation(ctx context.Context, channelID string) error
	GetUserInfo(ctx context.Context, userID string) (*SlackUser, error)
}

// TelegramClient defines the messaging-platform operations the service needs
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}
