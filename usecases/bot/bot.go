package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"atendbackend/clients"
	"atendbackend/models"
	"atendbackend/services"
)

// BotUseCase orchestrates intent routing and the human-handoff flow between
// Telegram users and Slack agents.
type BotUseCase struct {
	slackClient        clients.SlackClient
	telegramClient     clients.TelegramClient
	catalogService     services.CatalogService
	sessionsService    services.SessionsService
	ticketsService     services.TicketsService
	txManager          services.TransactionManager
	broadcastChannelID string
}

func NewBotUseCase(
	slackClient clients.SlackClient,
	telegramClient clients.TelegramClient,
	catalogService services.CatalogService,
	sessionsService services.SessionsService,
	ticketsService services.TicketsService,
	txManager services.TransactionManager,
	broadcastChannelID string,
) *BotUseCase {
	return &BotUseCase{
		slackClient:        slackClient,
		telegramClient:     telegramClient,
		catalogService:     catalogService,
		sessionsService:    sessionsService,
		ticketsService:     ticketsService,
		txManager:          txManager,
		broadcastChannelID: broadcastChannelID,
	}
}

// ProcessDialogflowWebhook is the entry point for every classified user
// message. A session awaiting an agent bypasses the intent router entirely
// and has its raw text relayed to the handoff channel.
func (u *BotUseCase) ProcessDialogflowWebhook(
	ctx context.Context,
	req *models.WebhookRequest,
) (*models.WebhookResponse, error) {
	intent := req.QueryResult.Intent.DisplayName
	log.Printf("📨 Dialogflow webhook - intent: %q, query: %q", intent, req.QueryResult.QueryText)

	chatID, err := req.ChatID()
	if err == nil {
		maybeSession, err := u.sessionsService.GetSessionByTelegramChatID(ctx, chatID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up session: %w", err)
		}
		if maybeSession.IsPresent() {
			session := maybeSession.MustGet()
			if session.State == models.SessionStateAwaitingAgent {
				return u.relayUserMessage(ctx, session, req.QueryResult.QueryText)
			}
		}
	}

	switch intent {
	case IntentOrderStatus:
		return u.handleOrderStatus(req)
	case IntentProductPrice:
		return u.handleProductPrice(req)
	case IntentFeatures:
		return u.handleFeatures(req)
	case IntentPaymentTerms:
		return reply(msgPaymentTerms), nil
	case IntentSupportTicket:
		return u.handleSupportTicket(ctx, req)
	case IntentHumanHandoff:
		return u.handleHandoffRequest(ctx, req)
	default:
		log.Printf("⚠️ Unrecognized intent: %q", intent)
		return reply(msgFallback), nil
	}
}

// relayUserMessage forwards a waiting user's message verbatim to the handoff
// channel. Before an agent claims the session there is no channel yet, so
// the user is told they are still in the queue - a second handoff request
// never produces a second broadcast prompt.
func (u *BotUseCase) relayUserMessage(
	ctx context.Context,
	session *models.Session,
	text string,
) (*models.WebhookResponse, error) {
	if !session.IsClaimed() {
		log.Printf("📋 Session %s awaiting agent with no channel yet, queueing reply", session.ID)
		return reply(msgStillInQueue), nil
	}

	channelID := *session.SlackChannelID
	_, err := u.slackClient.PostMessage(ctx, channelID,
		clients.WithText(fmt.Sprintf("%s %s: %s", RelayMarker, session.UserName, text)))
	if err != nil {
		return nil, fmt.Errorf("failed to relay message to channel %s: %w", channelID, err)
	}

	log.Printf("✅ Relayed message from chat %s to channel %s", session.TelegramChatID, channelID)
	// The agent answers through Slack; the bot itself stays silent.
	return reply(""), nil
}

func (u *BotUseCase) handleOrderStatus(req *models.WebhookRequest) (*models.WebhookResponse, error) {
	var params models.OrderStatusParameters
	if len(req.QueryResult.Parameters) > 0 {
		if err := json.Unmarshal(req.QueryResult.Parameters, &params); err != nil {
			return nil, fmt.Errorf("failed to decode order status parameters: %w", err)
		}
	}

	if params.PedidoID == "" {
		maybeOrder := u.catalogService.GetLatestOrder()
		if !maybeOrder.IsPresent() {
			return reply(msgNoOrders), nil
		}
		order := maybeOrder.MustGet()
		return reply(fmt.Sprintf("Seu pedido mais recente é o #%s e está com status: %s", order.ID, order.Status)), nil
	}

	maybeOrder := u.catalogService.GetOrderByID(params.PedidoID)
	if !maybeOrder.IsPresent() {
		return reply(fmt.Sprintf(
			"Não encontramos o pedido #%s. Verifique o número do pedido e tente novamente.",
			params.PedidoID)), nil
	}

	order := maybeOrder.MustGet()
	return reply(fmt.Sprintf("O status do seu pedido #%s é: %s", order.ID, order.Status)), nil
}

func (u *BotUseCase) handleProductPrice(req *models.WebhookRequest) (*models.WebhookResponse, error) {
	query, err := productQuery(req)
	if err != nil {
		return nil, err
	}

	maybeProduct := u.catalogService.FindProductByName(query)
	if !maybeProduct.IsPresent() {
		return reply(fmt.Sprintf("Não encontramos nenhum produto parecido com %q.", query)), nil
	}

	product := maybeProduct.MustGet()
	return reply(fmt.Sprintf("O preço do %s é R$ %s.", product.Name, product.Price.String())), nil
}

func (u *BotUseCase) handleFeatures(req *models.WebhookRequest) (*models.WebhookResponse, error) {
	query, err := productQuery(req)
	if err != nil {
		return nil, err
	}

	maybeProduct := u.catalogService.FindProductByName(query)
	if !maybeProduct.IsPresent() {
		return reply(fmt.Sprintf("Não encontramos nenhum produto parecido com %q.", query)), nil
	}

	product := maybeProduct.MustGet()
	if len(product.Features) == 0 {
		return reply(fmt.Sprintf("O %s ainda não tem funcionalidades cadastradas.", product.Name)), nil
	}
	return reply(fmt.Sprintf("O %s oferece: %s.", product.Name, strings.Join(product.Features, ", "))), nil
}

// handleSupportTicket records the reported problem and acknowledges it so
// the support team can follow up out of band.
func (u *BotUseCase) handleSupportTicket(
	ctx context.Context,
	req *models.WebhookRequest,
) (*models.WebhookResponse, error) {
	var params models.TicketParameters
	if len(req.QueryResult.Parameters) > 0 {
		if err := json.Unmarshal(req.QueryResult.Parameters, &params); err != nil {
			return nil, fmt.Errorf("failed to decode ticket parameters: %w", err)
		}
	}

	problem := strings.TrimSpace(params.Problema)
	if problem == "" {
		problem = strings.TrimSpace(req.QueryResult.QueryText)
	}
	if problem == "" {
		return reply(msgDescribeTicket), nil
	}

	// The ticket is still useful without the platform payload, so a missing
	// chat id is not an error here.
	chatID, _ := req.ChatID()

	ticket, err := u.ticketsService.CreateTicket(ctx, chatID, req.SenderName(), problem)
	if err != nil {
		return nil, fmt.Errorf("failed to create support ticket: %w", err)
	}

	log.Printf("✅ Support ticket %s recorded for chat %s", ticket.ID, chatID)
	return reply(fmt.Sprintf(
		"Obrigado por relatar o problema: %q. Nossa equipe entrará em contato em breve.", problem)), nil
}

// handleHandoffRequest flips the session to awaiting_agent and posts the
// claim prompt to the broadcast channel. Creating the session and the state
// transition run in one transaction.
func (u *BotUseCase) handleHandoffRequest(
	ctx context.Context,
	req *models.WebhookRequest,
) (*models.WebhookResponse, error) {
	chatID, err := req.ChatID()
	if err != nil {
		return nil, fmt.Errorf("handoff request without telegram chat id: %w", err)
	}
	userName := req.SenderName()

	var transitioned bool
	err = u.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.sessionsService.GetOrCreateSession(txCtx, chatID, userName); err != nil {
			return err
		}
		transitioned, err = u.sessionsService.MarkAwaitingAgent(txCtx, chatID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start handoff for chat %s: %w", chatID, err)
	}

	if !transitioned {
		// Already awaiting an agent - never post a second prompt.
		log.Printf("📋 Chat %s already awaiting agent, skipping broadcast prompt", chatID)
		return reply(msgStillInQueue), nil
	}

	value, err := json.Marshal(models.HandoffActionValue{TelegramChatID: chatID, UserName: userName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode handoff action value: %w", err)
	}

	_, err = u.slackClient.PostMessage(ctx, u.broadcastChannelID,
		clients.WithText(fmt.Sprintf("🙋 *%s* está pedindo atendimento humano.", userName)),
		clients.WithActionButton(ClaimActionID, "Atender cliente", string(value)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to post handoff prompt: %w", err)
	}

	log.Printf("✅ Handoff prompt posted for chat %s", chatID)
	return reply(msgWaitForAgent), nil
}

func productQuery(req *models.WebhookRequest) (string, error) {
	var params models.ProductParameters
	if len(req.QueryResult.Parameters) > 0 {
		if err := json.Unmarshal(req.QueryResult.Parameters, &params); err != nil {
			return "", fmt.Errorf("failed to decode product parameters: %w", err)
		}
	}
	if params.Produto != "" {
		return params.Produto, nil
	}
	return req.QueryResult.QueryText, nil
}

func reply(text string) *models.WebhookResponse {
	return &models.WebhookResponse{FulfillmentText: text}
}

// FallbackResponse is what the webhook answers when a handler fails - the
// user sees an apologetic line instead of an error.
func FallbackResponse() *models.WebhookResponse {
	return reply(msgApologetic)
}
