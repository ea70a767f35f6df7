package sessions

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"atendbackend/core"
	"atendbackend/db"
	"atendbackend/models"
)

// SessionsService owns the handoff state machine. Every transition is
// validated against the current state at the database level, so a stale
// caller can never move a session into an inconsistent shape.
type SessionsService struct {
	sessionsRepo *db.PostgresSessionsRepository
}

func NewSessionsService(repo *db.PostgresSessionsRepository) *SessionsService {
	return &SessionsService{sessionsRepo: repo}
}

func (s *SessionsService) GetOrCreateSession(
	ctx context.Context,
	telegramChatID, userName string,
) (*models.Session, error) {
	log.Printf("📋 Starting to get or create session for chat: %s", telegramChatID)

	if telegramChatID == "" {
		return nil, fmt.Errorf("telegram_chat_id cannot be empty")
	}

	session, err := s.sessionsRepo.GetOrCreateSession(ctx, core.NewID("ses"), telegramChatID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	log.Printf("📋 Completed successfully - session %s in state %s", session.ID, session.State)
	return session, nil
}

func (s *SessionsService) GetSessionByTelegramChatID(
	ctx context.Context,
	telegramChatID string,
) (mo.Option[*models.Session], error) {
	if telegramChatID == "" {
		return mo.None[*models.Session](), fmt.Errorf("telegram_chat_id cannot be empty")
	}
	return s.sessionsRepo.GetSessionByTelegramChatID(ctx, telegramChatID)
}

func (s *SessionsService) GetSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	if agentID == "" {
		return mo.None[*models.Session](), fmt.Errorf("agent_id cannot be empty")
	}
	return s.sessionsRepo.GetSessionByAgentID(ctx, agentID)
}

func (s *SessionsService) GetSessionBySlackChannelID(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.Session], error) {
	if channelID == "" {
		return mo.None[*models.Session](), fmt.Errorf("channel_id cannot be empty")
	}
	return s.sessionsRepo.GetSessionBySlackChannelID(ctx, channelID)
}

// MarkAwaitingAgent applies the normal -> awaiting_agent transition.
// Returns false when the session was already awaiting an agent.
func (s *SessionsService) MarkAwaitingAgent(ctx context.Context, telegramChatID string) (bool, error) {
	log.Printf("📋 Starting to mark session awaiting agent for chat: %s", telegramChatID)

	transitioned, err := s.sessionsRepo.MarkAwaitingAgent(ctx, telegramChatID)
	if err != nil {
		return false, fmt.Errorf("failed to mark session awaiting agent: %w", err)
	}

	log.Printf("📋 Completed successfully - transitioned: %t", transitioned)
	return transitioned, nil
}

// AssignAgent records the claim. Returns false when the session is not
// awaiting an agent or was already claimed by someone else.
func (s *SessionsService) AssignAgent(
	ctx context.Context,
	telegramChatID, agentID, slackChannelID string,
) (bool, error) {
	log.Printf("📋 Starting to assign agent %s to chat %s", agentID, telegramChatID)

	if agentID == "" || slackChannelID == "" {
		return false, fmt.Errorf("agent_id and slack_channel_id cannot be empty")
	}

	assigned, err := s.sessionsRepo.AssignAgent(ctx, telegramChatID, agentID, slackChannelID)
	if err != nil {
		return false, fmt.Errorf("failed to assign agent: %w", err)
	}

	log.Printf("📋 Completed successfully - assigned: %t", assigned)
	return assigned, nil
}

// CloseSessionByAgentID applies the awaiting_agent -> normal transition for
// the session claimed by the given agent. None means there was nothing to close.
func (s *SessionsService) CloseSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	log.Printf("📋 Starting to close session for agent: %s", agentID)

	maybeSession, err := s.sessionsRepo.CloseSessionByAgentID(ctx, agentID)
	if err != nil {
		return mo.None[*models.Session](), fmt.Errorf("failed to close session: %w", err)
	}

	log.Printf("📋 Completed successfully - closed: %t", maybeSession.IsPresent())
	return maybeSession, nil
}
