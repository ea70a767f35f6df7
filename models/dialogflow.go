package models

import (
	"encoding/json"
	"fmt"
)

// WebhookRequest is the subset of the Dialogflow v2 fulfillment request the
// service consumes. RawParameters is kept as-is and decoded per intent.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	QueryResult QueryResult `json:"queryResult"`
	// OriginalDetectIntentRequest carries the platform payload - for the
	// Telegram integration this is the raw Telegram update.
	OriginalDetectIntentRequest OriginalDetectIntentRequest `json:"originalDetectIntentRequest"`
}

type QueryResult struct {
	QueryText  string          `json:"queryText"`
	Intent     Intent          `json:"intent"`
	Parameters json.RawMessage `json:"parameters"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type OriginalDetectIntentRequest struct {
	Source  string          `json:"source"`
	Payload TelegramPayload `json:"payload"`
}

// TelegramPayload mirrors the parts of a Telegram update Dialogflow forwards.
type TelegramPayload struct {
	Data TelegramData `json:"data"`
}

type TelegramData struct {
	Chat TelegramChat `json:"chat"`
	From TelegramUser `json:"from"`
}

type TelegramChat struct {
	ID json.Number `json:"id"`
}

type TelegramUser struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"first_name"`
	Username  string      `json:"username"`
}

// ChatID returns the Telegram chat identifier as a string, or an error when
// the platform payload is missing.
func (r *WebhookRequest) ChatID() (string, error) {
	chatID := r.OriginalDetectIntentRequest.Payload.Data.Chat.ID.String()
	if chatID == "" {
		return "", fmt.Errorf("telegram chat id not present in webhook payload")
	}
	return chatID, nil
}

// SenderName returns the best available display name for the sender.
func (r *WebhookRequest) SenderName() string {
	from := r.OriginalDetectIntentRequest.Payload.Data.From
	if from.FirstName != "" {
		return from.FirstName
	}
	if from.Username != "" {
		return from.Username
	}
	return "Cliente"
}

// WebhookResponse is the Dialogflow fulfillment response.
type WebhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// OrderStatusParameters are the extracted parameters of the order status intent.
type OrderStatusParameters struct {
	PedidoID string `json:"pedidoId"`
}

// TicketParameters are the extracted parameters of the support ticket intent.
type TicketParameters struct {
	Problema string `json:"problema"`
}

// ProductParameters are the extracted parameters of the price/features intents.
type ProductParameters struct {
	Produto string `json:"produto"`
}

// HandoffActionValue is the JSON carried in the claim button's value field.
type HandoffActionValue struct {
	TelegramChatID string `json:"chat_id"`
	UserName       string `json:"user_name"`
}
