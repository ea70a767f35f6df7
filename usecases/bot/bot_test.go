package bot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atendbackend/clients"
	slackclient "atendbackend/clients/slack"
	telegramclient "atendbackend/clients/telegram"
	"atendbackend/models"
	"atendbackend/services/catalog"
	"atendbackend/services/sessions"
	"atendbackend/services/tickets"
	"atendbackend/services/txmanager"
)

const testBroadcastChannel = "C_BROADCAST"

type testMocks struct {
	slack    *slackclient.MockSlackClient
	telegram *telegramclient.MockTelegramClient
	catalog  *catalog.MockCatalogService
	sessions *sessions.MockSessionsService
	tickets  *tickets.MockTicketsService
	tx       *txmanager.MockTransactionManager
}

func setupUseCase() (*BotUseCase, *testMocks) {
	m := &testMocks{
		slack:    &slackclient.MockSlackClient{},
		telegram: &telegramclient.MockTelegramClient{},
		catalog:  &catalog.MockCatalogService{},
		sessions: &sessions.MockSessionsService{},
		tickets:  &tickets.MockTicketsService{},
		tx:       &txmanager.MockTransactionManager{},
	}
	uc := NewBotUseCase(m.slack, m.telegram, m.catalog, m.sessions, m.tickets, m.tx, testBroadcastChannel)
	return uc, m
}

func webhookRequest(intent, queryText string, params any, chatID string) *models.WebhookRequest {
	req := &models.WebhookRequest{}
	req.QueryResult.Intent.DisplayName = intent
	req.QueryResult.QueryText = queryText
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			panic(err)
		}
		req.QueryResult.Parameters = raw
	}
	if chatID != "" {
		req.OriginalDetectIntentRequest.Source = "telegram"
		req.OriginalDetectIntentRequest.Payload.Data.Chat.ID = json.Number(chatID)
		req.OriginalDetectIntentRequest.Payload.Data.From.FirstName = "Maria"
	}
	return req
}

func normalSession(chatID string) *models.Session {
	return &models.Session{
		ID:             "ses_1",
		TelegramChatID: chatID,
		UserName:       "Maria",
		State:          models.SessionStateNormal,
	}
}

func awaitingSession(chatID string, agentID, channelID *string) *models.Session {
	return &models.Session{
		ID:             "ses_1",
		TelegramChatID: chatID,
		UserName:       "Maria",
		State:          models.SessionStateAwaitingAgent,
		AgentID:        agentID,
		SlackChannelID: channelID,
	}
}

func TestProcessDialogflowWebhook_OrderStatus(t *testing.T) {
	t.Run("Known order id returns its status", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("GetOrderByID", "123").
			Return(mo.Some(&models.Order{ID: "123", Status: "Enviado"}))

		req := webhookRequest(IntentOrderStatus, "status do pedido 123",
			models.OrderStatusParameters{PedidoID: "123"}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "O status do seu pedido #123 é: Enviado", resp.FulfillmentText)
	})

	t.Run("Empty order id returns latest order", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("GetLatestOrder").
			Return(mo.Some(&models.Order{ID: "456", Status: "Processando"}))

		req := webhookRequest(IntentOrderStatus, "cadê meu pedido?",
			models.OrderStatusParameters{PedidoID: ""}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "#456")
		assert.Contains(t, resp.FulfillmentText, "Processando")
	})

	t.Run("Unknown order id returns not found", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("GetOrderByID", "999").Return(mo.None[*models.Order]())

		req := webhookRequest(IntentOrderStatus, "status do pedido 999",
			models.OrderStatusParameters{PedidoID: "999"}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "Não encontramos o pedido #999")
	})

	t.Run("No orders at all", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("GetLatestOrder").Return(mo.None[*models.Order]())

		req := webhookRequest(IntentOrderStatus, "cadê meu pedido?", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgNoOrders, resp.FulfillmentText)
	})
}

func TestProcessDialogflowWebhook_ProductLookups(t *testing.T) {
	product := &models.Product{
		ID:       "prd_1",
		Name:     "Produto A",
		Price:    decimal.NewFromInt(100),
		Features: []string{"relatórios", "exportação CSV"},
	}

	t.Run("Price lookup returns price verbatim", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("FindProductByName", "produto a").Return(mo.Some(product))

		req := webhookRequest(IntentProductPrice, "quanto custa o produto a?",
			models.ProductParameters{Produto: "produto a"}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "100")
		assert.Contains(t, resp.FulfillmentText, "Produto A")
	})

	t.Run("Feature lookup returns feature list verbatim", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("FindProductByName", "produto a").Return(mo.Some(product))

		req := webhookRequest(IntentFeatures, "o que o produto a faz?",
			models.ProductParameters{Produto: "produto a"}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "relatórios")
		assert.Contains(t, resp.FulfillmentText, "exportação CSV")
	})

	t.Run("Unknown product returns not found", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("FindProductByName", "geladeira").Return(mo.None[*models.Product]())

		req := webhookRequest(IntentProductPrice, "quanto custa a geladeira?",
			models.ProductParameters{Produto: "geladeira"}, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "Não encontramos nenhum produto")
	})

	t.Run("Falls back to query text when parameter missing", func(t *testing.T) {
		uc, m := setupUseCase()
		m.catalog.On("FindProductByName", "produto a").Return(mo.Some(product))

		req := webhookRequest(IntentProductPrice, "produto a", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "100")
	})
}

func TestProcessDialogflowWebhook_PaymentTermsAndFallback(t *testing.T) {
	t.Run("Payment terms", func(t *testing.T) {
		uc, _ := setupUseCase()
		req := webhookRequest(IntentPaymentTerms, "como posso pagar?", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgPaymentTerms, resp.FulfillmentText)
	})

	t.Run("Unrecognized intent falls through to generic reply", func(t *testing.T) {
		uc, _ := setupUseCase()
		req := webhookRequest("Intent Desconhecida", "oi", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgFallback, resp.FulfillmentText)
	})
}

func TestProcessDialogflowWebhook_SupportTicket(t *testing.T) {
	t.Run("Reported problem is persisted and acknowledged", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.None[*models.Session](), nil)
		m.tickets.On("CreateTicket", mock.Anything, "555", "Maria", "o app não abre").
			Return(&models.Ticket{ID: "tkt_1", Problem: "o app não abre"}, nil)

		req := webhookRequest(IntentSupportTicket, "meu app está com problema",
			models.TicketParameters{Problema: "o app não abre"}, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t,
			`Obrigado por relatar o problema: "o app não abre". Nossa equipe entrará em contato em breve.`,
			resp.FulfillmentText)
		m.tickets.AssertExpectations(t)
	})

	t.Run("Missing parameter falls back to query text", func(t *testing.T) {
		uc, m := setupUseCase()
		m.tickets.On("CreateTicket", mock.Anything, "", "Cliente", "a fatura veio errada").
			Return(&models.Ticket{ID: "tkt_2", Problem: "a fatura veio errada"}, nil)

		req := webhookRequest(IntentSupportTicket, "a fatura veio errada", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.FulfillmentText, "a fatura veio errada")
		m.tickets.AssertExpectations(t)
	})

	t.Run("Empty problem asks for a description", func(t *testing.T) {
		uc, m := setupUseCase()

		req := webhookRequest(IntentSupportTicket, "   ", nil, "")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgDescribeTicket, resp.FulfillmentText)
		m.tickets.AssertNotCalled(t, "CreateTicket",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Persistence failure propagates", func(t *testing.T) {
		uc, m := setupUseCase()
		m.tickets.On("CreateTicket", mock.Anything, "", "Cliente", "erro no login").
			Return(nil, errors.New("db down"))

		req := webhookRequest(IntentSupportTicket, "erro no login", nil, "")
		_, err := uc.ProcessDialogflowWebhook(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestProcessDialogflowWebhook_HandoffRequest(t *testing.T) {
	t.Run("First request transitions session and posts prompt", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.None[*models.Session](), nil)
		m.tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		m.sessions.On("GetOrCreateSession", mock.Anything, "555", "Maria").
			Return(normalSession("555"), nil)
		m.sessions.On("MarkAwaitingAgent", mock.Anything, "555").Return(true, nil)
		m.slack.On("PostMessage", mock.Anything, testBroadcastChannel,
			mock.MatchedBy(func(opts []clients.SlackMessageOption) bool {
				var config clients.SlackMessageConfig
				for _, opt := range opts {
					opt.Apply(&config)
				}
				if config.ActionButton == nil || config.ActionButton.ActionID != ClaimActionID {
					return false
				}
				var value models.HandoffActionValue
				if err := json.Unmarshal([]byte(config.ActionButton.Value), &value); err != nil {
					return false
				}
				return value.TelegramChatID == "555" && value.UserName == "Maria"
			})).
			Return(&clients.SlackPostMessageResponse{Channel: testBroadcastChannel}, nil)

		req := webhookRequest(IntentHumanHandoff, "quero falar com atendente", nil, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgWaitForAgent, resp.FulfillmentText)
		m.slack.AssertExpectations(t)
		m.sessions.AssertExpectations(t)
	})

	t.Run("Second request does not post a second prompt", func(t *testing.T) {
		uc, m := setupUseCase()
		// Session already awaiting but not yet claimed: the awaiting check
		// intercepts before the intent router runs.
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.Some(awaitingSession("555", nil, nil)), nil)

		req := webhookRequest(IntentHumanHandoff, "quero falar com atendente", nil, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgStillInQueue, resp.FulfillmentText)
		m.slack.AssertNotCalled(t, "PostMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Race on transition still posts no second prompt", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.None[*models.Session](), nil)
		m.tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		m.sessions.On("GetOrCreateSession", mock.Anything, "555", "Maria").
			Return(normalSession("555"), nil)
		m.sessions.On("MarkAwaitingAgent", mock.Anything, "555").Return(false, nil)

		req := webhookRequest(IntentHumanHandoff, "quero falar com atendente", nil, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgStillInQueue, resp.FulfillmentText)
		m.slack.AssertNotCalled(t, "PostMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Handoff without telegram payload errors", func(t *testing.T) {
		uc, _ := setupUseCase()
		req := webhookRequest(IntentHumanHandoff, "quero falar com atendente", nil, "")
		_, err := uc.ProcessDialogflowWebhook(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestProcessDialogflowWebhook_Relay(t *testing.T) {
	channelID := "C_HANDOFF"
	agentID := "U_AGENT"

	t.Run("Awaiting session with channel relays verbatim", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.Some(awaitingSession("555", &agentID, &channelID)), nil)
		m.slack.On("PostMessage", mock.Anything, channelID,
			mock.MatchedBy(func(opts []clients.SlackMessageOption) bool {
				var config clients.SlackMessageConfig
				for _, opt := range opts {
					opt.Apply(&config)
				}
				return config.Text == RelayMarker+" Maria: minha mensagem"
			})).
			Return(&clients.SlackPostMessageResponse{Channel: channelID}, nil)

		req := webhookRequest("Intent Desconhecida", "minha mensagem", nil, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, resp.FulfillmentText)
		m.slack.AssertExpectations(t)
	})

	t.Run("Awaiting session without channel gets queue reply", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.Some(awaitingSession("555", nil, nil)), nil)

		req := webhookRequest("Intent Desconhecida", "tem alguém aí?", nil, "555")
		resp, err := uc.ProcessDialogflowWebhook(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, msgStillInQueue, resp.FulfillmentText)
	})

	t.Run("Relay failure propagates", func(t *testing.T) {
		uc, m := setupUseCase()
		m.sessions.On("GetSessionByTelegramChatID", mock.Anything, "555").
			Return(mo.Some(awaitingSession("555", &agentID, &channelID)), nil)
		m.slack.On("PostMessage", mock.Anything, channelID, mock.Anything).
			Return(nil, errors.New("slack down"))

		req := webhookRequest("Intent Desconhecida", "oi", nil, "555")
		_, err := uc.ProcessDialogflowWebhook(context.Background(), req)
		assert.Error(t, err)
	})
}
