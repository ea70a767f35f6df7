package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	dbtx "atendbackend/db/tx"
	"atendbackend/models"
)

type PostgresTicketsRepository struct {
	db     *sqlx.DB
	schema string
}

// DBTicket represents the database schema for the tickets table
type DBTicket struct {
	ID             string    `db:"id"`
	TelegramChatID string    `db:"telegram_chat_id"`
	UserName       string    `db:"user_name"`
	Problem        string    `db:"problem"`
	CreatedAt      time.Time `db:"created_at"`
}

var ticketsColumns = []string{
	"id",
	"telegram_chat_id",
	"user_name",
	"problem",
	"created_at",
}

func NewPostgresTicketsRepository(db *sqlx.DB, schema string) *PostgresTicketsRepository {
	return &PostgresTicketsRepository{db: db, schema: schema}
}

func dbTicketToModel(dbTicket *DBTicket) *models.Ticket {
	return &models.Ticket{
		ID:             dbTicket.ID,
		TelegramChatID: dbTicket.TelegramChatID,
		UserName:       dbTicket.UserName,
		Problem:        dbTicket.Problem,
		CreatedAt:      dbTicket.CreatedAt,
	}
}

// CreateTicket inserts a support ticket record.
func (r *PostgresTicketsRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(ticketsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.tickets (id, telegram_chat_id, user_name, problem, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s`, r.schema, columnsStr)

	var returned DBTicket
	err := db.QueryRowxContext(ctx, query,
		ticket.ID, ticket.TelegramChatID, ticket.UserName, ticket.Problem).
		StructScan(&returned)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	*ticket = *dbTicketToModel(&returned)
	return nil
}
