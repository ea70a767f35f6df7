package tickets

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atendbackend/models"
)

// MockTicketsService is a mock implementation of the services.TicketsService interface
type MockTicketsService struct {
	mock.Mock
}

func (m *MockTicketsService) CreateTicket(
	ctx context.Context,
	telegramChatID, userName, problem string,
) (*models.Ticket, error) {
	args := m.Called(ctx, telegramChatID, userName, problem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}
