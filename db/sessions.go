package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "atendbackend/db/tx"
	"atendbackend/models"
)

type PostgresSessionsRepository struct {
	db     *sqlx.DB
	schema string
}

// DBSession represents the database schema for the sessions table
type DBSession struct {
	ID             string    `db:"id"`
	TelegramChatID string    `db:"telegram_chat_id"`
	UserName       string    `db:"user_name"`
	State          string    `db:"state"`
	AgentID        *string   `db:"agent_id"`
	SlackChannelID *string   `db:"slack_channel_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var sessionsColumns = []string{
	"id",
	"telegram_chat_id",
	"user_name",
	"state",
	"agent_id",
	"slack_channel_id",
	"created_at",
	"updated_at",
}

func NewPostgresSessionsRepository(db *sqlx.DB, schema string) *PostgresSessionsRepository {
	return &PostgresSessionsRepository{db: db, schema: schema}
}

func dbSessionToModel(dbSession *DBSession) *models.Session {
	return &models.Session{
		ID:             dbSession.ID,
		TelegramChatID: dbSession.TelegramChatID,
		UserName:       dbSession.UserName,
		State:          models.SessionState(dbSession.State),
		AgentID:        dbSession.AgentID,
		SlackChannelID: dbSession.SlackChannelID,
		CreatedAt:      dbSession.CreatedAt,
		UpdatedAt:      dbSession.UpdatedAt,
	}
}

// GetOrCreateSession returns the session keyed by the Telegram chat id,
// creating it in the normal state when absent.
func (r *PostgresSessionsRepository) GetOrCreateSession(
	ctx context.Context,
	id, telegramChatID, userName string,
) (*models.Session, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(sessionsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.sessions (id, telegram_chat_id, user_name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (telegram_chat_id)
		DO UPDATE SET user_name = EXCLUDED.user_name, updated_at = NOW()
		RETURNING %s`, r.schema, columnsStr)

	var dbSession DBSession
	err := db.QueryRowxContext(ctx, query, id, telegramChatID, userName, string(models.SessionStateNormal)).
		StructScan(&dbSession)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	return dbSessionToModel(&dbSession), nil
}

func (r *PostgresSessionsRepository) GetSessionByTelegramChatID(
	ctx context.Context,
	telegramChatID string,
) (mo.Option[*models.Session], error) {
	return r.getSessionWhere(ctx, "telegram_chat_id = $1", telegramChatID)
}

// GetSessionByAgentID returns the open session claimed by the given agent.
func (r *PostgresSessionsRepository) GetSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	return r.getSessionWhere(ctx, "agent_id = $1 AND state = 'awaiting_agent'", agentID)
}

// GetSessionBySlackChannelID returns the open session bound to a handoff channel.
func (r *PostgresSessionsRepository) GetSessionBySlackChannelID(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.Session], error) {
	return r.getSessionWhere(ctx, "slack_channel_id = $1 AND state = 'awaiting_agent'", channelID)
}

func (r *PostgresSessionsRepository) getSessionWhere(
	ctx context.Context,
	whereClause string,
	arg any,
) (mo.Option[*models.Session], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(sessionsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.sessions
		WHERE %s`, columnsStr, r.schema, whereClause)

	var dbSession DBSession
	err := db.GetContext(ctx, &dbSession, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Session](), nil
		}
		return mo.None[*models.Session](), fmt.Errorf("failed to get session: %w", err)
	}

	return mo.Some(dbSessionToModel(&dbSession)), nil
}

// MarkAwaitingAgent transitions a session from normal to awaiting_agent.
// The state guard in the WHERE clause makes the transition a no-op when the
// session is already awaiting; the boolean reports whether it applied.
func (r *PostgresSessionsRepository) MarkAwaitingAgent(
	ctx context.Context,
	telegramChatID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE %s.sessions
		SET state = $2, updated_at = NOW()
		WHERE telegram_chat_id = $1 AND state = $3`, r.schema)

	result, err := db.ExecContext(ctx, query, telegramChatID,
		string(models.SessionStateAwaitingAgent), string(models.SessionStateNormal))
	if err != nil {
		return false, fmt.Errorf("failed to mark session awaiting agent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// AssignAgent records the claiming agent and the created handoff channel.
// Guarded so a session can only be claimed once: it must be awaiting and
// not yet have an agent.
func (r *PostgresSessionsRepository) AssignAgent(
	ctx context.Context,
	telegramChatID, agentID, slackChannelID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE %s.sessions
		SET agent_id = $2, slack_channel_id = $3, updated_at = NOW()
		WHERE telegram_chat_id = $1 AND state = $4 AND agent_id IS NULL`, r.schema)

	result, err := db.ExecContext(ctx, query, telegramChatID, agentID, slackChannelID,
		string(models.SessionStateAwaitingAgent))
	if err != nil {
		return false, fmt.Errorf("failed to assign agent to session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// CloseSessionByAgentID transitions the agent's open session back to normal,
// clearing the agent and channel references, and returns the session as it
// was before closing so callers can archive the channel and notify the user.
func (r *PostgresSessionsRepository) CloseSessionByAgentID(
	ctx context.Context,
	agentID string,
) (mo.Option[*models.Session], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	var aliasedColumns []string
	for _, col := range sessionsColumns {
		aliasedColumns = append(aliasedColumns, "old."+col)
	}
	columnsStr := strings.Join(aliasedColumns, ", ")

	// The self-join on the updated row's id exposes the pre-update values
	// through the RETURNING clause.
	query := fmt.Sprintf(`
		UPDATE %s.sessions AS s
		SET state = $2, agent_id = NULL, slack_channel_id = NULL, updated_at = NOW()
		FROM %s.sessions AS old
		WHERE s.id = old.id AND s.agent_id = $1 AND s.state = $3
		RETURNING %s`, r.schema, r.schema, columnsStr)

	var dbSession DBSession
	err := db.GetContext(ctx, &dbSession, query, agentID,
		string(models.SessionStateNormal), string(models.SessionStateAwaitingAgent))
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Session](), nil
		}
		return mo.None[*models.Session](), fmt.Errorf("failed to close session: %w", err)
	}

	return mo.Some(dbSessionToModel(&dbSession)), nil
}
