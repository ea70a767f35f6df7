package usecases

import (
	"context"

	"atendbackend/models"
)

// BotUseCaseInterface defines the interface for the bot's orchestration layer
type BotUseCaseInterface interface {
	// ProcessDialogflowWebhook routes an intent-classified message and
	// returns the fulfillment reply.
	ProcessDialogflowWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookResponse, error)
	// ProcessHandoffClaim handles an agent clicking the claim button.
	ProcessHandoffClaim(ctx context.Context, agentID string, value models.HandoffActionValue) error
	// ProcessChannelMessage relays an agent's channel message to the user.
	ProcessChannelMessage(ctx context.Context, channelID, userID, text string) error
	// ProcessCloseCommand handles the /encerrar slash command and returns
	// the reply shown to the agent.
	ProcessCloseCommand(ctx context.Context, agentID, argText string) (string, error)
}
