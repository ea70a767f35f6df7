package services

import (
	"context"

	"github.com/samber/mo"

	"atendbackend/models"
)

// CatalogService defines the interface for product/order catalog lookups.
// Lookups read an in-memory snapshot; Refresh reloads it from the database.
type CatalogService interface {
	FindProductByName(name string) mo.Option[*models.Product]
	GetOrderByID(id string) mo.Option[*models.Order]
	GetLatestOrder() mo.Option[*models.Order]
	Refresh(ctx context.Context) error
	Counts() (products, orders int)
}

// SessionsService defines the interface for handoff session operations
type SessionsService interface {
	GetOrCreateSession(ctx context.Context, telegramChatID, userName string) (*models.Session, error)
	GetSessionByTelegramChatID(ctx context.Context, telegramChatID string) (mo.Option[*models.Session], error)
	GetSessionByAgentID(ctx context.Context, agentID string) (mo.Option[*models.Session], error)
	GetSessionBySlackChannelID(ctx context.Context, channelID string) (mo.Option[*models.Session], error)
	MarkAwaitingAgent(ctx context.Context, telegramChatID string) (bool, error)
	AssignAgent(ctx context.Context, telegramChatID, agentID, slackChannelID string) (bool, error)
	CloseSessionByAgentID(ctx context.Context, agentID string) (mo.Option[*models.Session], error)
}

// TicketsService defines the interface for support ticket creation
type TicketsService interface {
	CreateTicket(ctx context.Context, telegramChatID, userName, problem string) (*models.Ticket, error)
}

// TransactionManager defines the interface for transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
