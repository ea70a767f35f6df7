package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"atendbackend/clients"
	"atendbackend/models"
	"atendbackend/utils"
)

// ProcessHandoffClaim handles an agent clicking "Atender cliente" on the
// broadcast prompt: creates the handoff channel, invites the agent, binds
// both to the session, greets the user and links the channel back to the
// broadcast channel. External side effects that already happened are not
// rolled back when a later step fails.
func (u *BotUseCase) ProcessHandoffClaim(
	ctx context.Context,
	agentID string,
	value models.HandoffActionValue,
) error {
	log.Printf("📋 Starting handoff claim by agent %s for chat %s", agentID, value.TelegramChatID)

	maybeSession, err := u.sessionsService.GetSessionByTelegramChatID(ctx, value.TelegramChatID)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if !maybeSession.IsPresent() {
		return fmt.Errorf("no session found for chat %s", value.TelegramChatID)
	}
	session := maybeSession.MustGet()

	if session.State != models.SessionStateAwaitingAgent || session.IsClaimed() {
		log.Printf("⚠️ Session %s already claimed or not awaiting, notifying broadcast channel", session.ID)
		u.postBroadcastNotice(ctx,
			fmt.Sprintf("⚠️ O cliente *%s* já está sendo atendido.", value.UserName))
		return nil
	}

	// One active handoff per agent: /encerrar is keyed by agent id, so a
	// second claim would make the close ambiguous.
	maybeOpen, err := u.sessionsService.GetSessionByAgentID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to check agent's open sessions: %w", err)
	}
	if maybeOpen.IsPresent() {
		log.Printf("⚠️ Agent %s already has open session %s, rejecting claim", agentID, maybeOpen.MustGet().ID)
		u.postBroadcastNotice(ctx,
			fmt.Sprintf("⚠️ <@%s> já está atendendo um cliente. Encerre com /encerrar antes de atender outro.", agentID))
		return nil
	}

	agentName := u.agentDisplayName(ctx, agentID)

	channelName := fmt.Sprintf("atendimento-%d-%s", time.Now().Unix(), utils.SanitizeChannelName(agentName))
	channelID, err := u.slackClient.CreateConversation(ctx, channelName)
	if err != nil {
		return fmt.Errorf("failed to create handoff channel %s: %w", channelName, err)
	}
	log.Printf("✅ Created handoff channel %s (%s)", channelName, channelID)

	if err := u.slackClient.InviteUsersToConversation(ctx, channelID, agentID); err != nil {
		// The channel exists already; keep going so the claim still lands.
		log.Printf("❌ Failed to invite agent %s to channel %s: %v", agentID, channelID, err)
	}

	assigned, err := u.sessionsService.AssignAgent(ctx, value.TelegramChatID, agentID, channelID)
	if err != nil {
		return fmt.Errorf("failed to assign agent: %w", err)
	}
	if !assigned {
		// Someone else claimed between the lookup and the update.
		log.Printf("⚠️ Session %s was claimed concurrently, leaving channel %s unused", session.ID, channelID)
		u.postBroadcastNotice(ctx,
			fmt.Sprintf("⚠️ O cliente *%s* já está sendo atendido.", value.UserName))
		return nil
	}

	greeting := fmt.Sprintf("Você agora está falando com %s. Pode mandar sua mensagem!", agentName)
	if err := u.telegramClient.SendMessage(ctx, value.TelegramChatID, greeting); err != nil {
		log.Printf("❌ Failed to greet user on telegram chat %s: %v", value.TelegramChatID, err)
	}

	u.postBroadcastNotice(ctx,
		fmt.Sprintf("✅ *%s* está atendendo *%s* em <#%s>", agentName, value.UserName, channelID))

	log.Printf("📋 Completed successfully - agent %s claimed chat %s in channel %s",
		agentID, value.TelegramChatID, channelID)
	return nil
}

// ProcessChannelMessage forwards an agent's message in a handoff channel to
// the user's Telegram chat. Messages carrying the relay marker were posted
// by the service itself and are skipped; messages in untracked channels are
// ignored.
func (u *BotUseCase) ProcessChannelMessage(ctx context.Context, channelID, userID, text string) error {
	if strings.HasPrefix(text, RelayMarker) {
		return nil
	}

	maybeSession, err := u.sessionsService.GetSessionBySlackChannelID(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to look up session by channel: %w", err)
	}
	if !maybeSession.IsPresent() {
		return nil
	}
	session := maybeSession.MustGet()

	if err := u.telegramClient.SendMessage(ctx, session.TelegramChatID, text); err != nil {
		return fmt.Errorf("failed to forward message to chat %s: %w", session.TelegramChatID, err)
	}

	log.Printf("✅ Forwarded message from channel %s to chat %s", channelID, session.TelegramChatID)
	return nil
}

// ProcessCloseCommand handles /encerrar: flips the session back to normal,
// archives the channel and notifies the user. The returned string is the
// reply shown to the agent who issued the command.
func (u *BotUseCase) ProcessCloseCommand(ctx context.Context, agentID, argText string) (string, error) {
	log.Printf("📋 Starting to process close command from agent %s", agentID)

	if strings.TrimSpace(argText) != "" {
		return msgNoArguments, nil
	}

	maybeSession, err := u.sessionsService.CloseSessionByAgentID(ctx, agentID)
	if err != nil {
		return "", fmt.Errorf("failed to close session for agent %s: %w", agentID, err)
	}
	if !maybeSession.IsPresent() {
		return msgNothingToClose, nil
	}
	session := maybeSession.MustGet()

	if session.SlackChannelID != nil {
		if err := u.slackClient.ArchiveConversation(ctx, *session.SlackChannelID); err != nil {
			log.Printf("❌ Failed to archive channel %s: %v", *session.SlackChannelID, err)
		}
	}

	if err := u.telegramClient.SendMessage(ctx, session.TelegramChatID, msgHandoffClosed); err != nil {
		log.Printf("❌ Failed to notify user on chat %s: %v", session.TelegramChatID, err)
	}

	log.Printf("📋 Completed successfully - session %s closed by agent %s", session.ID, agentID)
	return msgClosedForAgent, nil
}

func (u *BotUseCase) agentDisplayName(ctx context.Context, agentID string) string {
	user, err := u.slackClient.GetUserInfo(ctx, agentID)
	if err != nil {
		log.Printf("❌ Failed to get agent info for %s: %v", agentID, err)
		return "um atendente"
	}
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName
	}
	return user.Name
}

func (u *BotUseCase) postBroadcastNotice(ctx context.Context, text string) {
	if _, err := u.slackClient.PostMessage(ctx, u.broadcastChannelID, clients.WithText(text)); err != nil {
		log.Printf("❌ Failed to post notice to broadcast channel: %v", err)
	}
}
