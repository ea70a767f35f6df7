package tickets

import (
	"context"
	"fmt"
	"log"

	"atendbackend/core"
	"atendbackend/db"
	"atendbackend/models"
)

// TicketsService records support problems reported through the bot so the
// support team can follow up out of band.
type TicketsService struct {
	ticketsRepo *db.PostgresTicketsRepository
}

func NewTicketsService(repo *db.PostgresTicketsRepository) *TicketsService {
	return &TicketsService{ticketsRepo: repo}
}

func (s *TicketsService) CreateTicket(
	ctx context.Context,
	telegramChatID, userName, problem string,
) (*models.Ticket, error) {
	log.Printf("📋 Starting to create support ticket for chat: %s", telegramChatID)

	if problem == "" {
		return nil, fmt.Errorf("problem cannot be empty")
	}

	ticket := &models.Ticket{
		ID:             core.NewID("tkt"),
		TelegramChatID: telegramChatID,
		UserName:       userName,
		Problem:        problem,
	}
	if err := s.ticketsRepo.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	log.Printf("📋 Completed successfully - ticket %s created", ticket.ID)
	return ticket, nil
}
