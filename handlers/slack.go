package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/slack-go/slack"

	"atendbackend/models"
	"atendbackend/usecases"
	"atendbackend/usecases/bot"
)

type SlackWebhooksHandler struct {
	signingSecret string
	botUseCase    usecases.BotUseCaseInterface
}

func NewSlackWebhooksHandler(signingSecret string, botUseCase usecases.BotUseCaseInterface) *SlackWebhooksHandler {
	return &SlackWebhooksHandler{
		signingSecret: signingSecret,
		botUseCase:    botUseCase,
	}
}

// verifyAndRead verifies the Slack request signature and returns the body,
// restoring r.Body so later form parsing still works.
func (h *SlackWebhooksHandler) verifyAndRead(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var buf bytes.Buffer
	tee := io.TeeReader(r.Body, &buf)

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		log.Printf("❌ Invalid secret verifier: %v", err)
		http.Error(w, "invalid secret verifier", http.StatusUnauthorized)
		return nil, false
	}

	if _, err := io.Copy(&verifier, tee); err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusInternalServerError)
		return nil, false
	}

	if err := verifier.Ensure(); err != nil {
		log.Printf("❌ Slack signature verification failed: %v", err)
		http.Error(w, "signature verification failed", http.StatusUnauthorized)
		return nil, false
	}

	body := buf.Bytes()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, true
}

// HandleSlackAction processes the claim-button click from the broadcast channel.
func (h *SlackWebhooksHandler) HandleSlackAction(w http.ResponseWriter, r *http.Request) {
	log.Printf("⚡ Slack action received from %s", r.RemoteAddr)

	if _, ok := h.verifyAndRead(w, r); !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("❌ Failed to parse action form: %v", err)
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(r.PostFormValue("payload")), &callback); err != nil {
		log.Printf("❌ Failed to decode interaction payload: %v", err)
		http.Error(w, "failed to decode payload", http.StatusBadRequest)
		return
	}

	if len(callback.ActionCallback.BlockActions) == 0 {
		log.Printf("❌ Interaction payload carries no actions")
		http.Error(w, "no actions in payload", http.StatusBadRequest)
		return
	}
	action := callback.ActionCallback.BlockActions[0]

	if action.ActionID != bot.ClaimActionID {
		log.Printf("❌ Unrecognized action: %s", action.ActionID)
		http.Error(w, "unrecognized action", http.StatusBadRequest)
		return
	}

	var value models.HandoffActionValue
	if err := json.Unmarshal([]byte(action.Value), &value); err != nil {
		log.Printf("❌ Failed to decode action value: %v", err)
		http.Error(w, "failed to decode action value", http.StatusBadRequest)
		return
	}

	log.Printf("🎯 Claim action by %s for chat %s", callback.User.ID, value.TelegramChatID)

	// Ack immediately - Slack times the callback out after 3 seconds and the
	// claim flow makes several API calls.
	w.WriteHeader(http.StatusOK)

	agentID := callback.User.ID
	go func() {
		if err := h.botUseCase.ProcessHandoffClaim(context.Background(), agentID, value); err != nil {
			log.Printf("❌ Failed to process handoff claim: %v", err)
		}
	}()
}

// HandleSlackEvent processes the events callback: URL verification and
// channel messages to relay back to the user.
func (h *SlackWebhooksHandler) HandleSlackEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack event received from %s", r.RemoteAddr)

	bodyBytes, ok := h.verifyAndRead(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	if body["type"] == "url_verification" {
		log.Printf("🔐 Slack URL verification challenge received")
		challenge, ok := body["challenge"].(string)
		if !ok {
			log.Printf("❌ Challenge not found in verification request")
			http.Error(w, "challenge not found", http.StatusBadRequest)
			return
		}
		log.Printf("✅ Responding to Slack URL verification challenge")
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(challenge)); err != nil {
			log.Printf("❌ Failed to write challenge response: %v", err)
		}
		return
	}

	if body["type"] != "event_callback" {
		log.Printf("📋 Non-event callback received: %s", body["type"])
		w.WriteHeader(http.StatusOK)
		return
	}

	event, ok := body["event"].(map[string]any)
	if !ok {
		log.Printf("❌ Event not found in callback")
		http.Error(w, "event not found", http.StatusBadRequest)
		return
	}

	eventType, _ := event["type"].(string)
	if eventType != "message" {
		log.Printf("⏭️ Ignoring event type: %s", eventType)
		w.WriteHeader(http.StatusOK)
		return
	}

	// System messages (joins, archives) carry a subtype; bot messages carry
	// a bot_id. Neither gets relayed.
	if subtype, ok := event["subtype"].(string); ok && subtype != "" {
		log.Printf("⏭️ Ignoring message subtype: %s", subtype)
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, ok := event["bot_id"].(string); ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	channel, _ := event["channel"].(string)
	user, _ := event["user"].(string)
	text, _ := event["text"].(string)

	if err := h.botUseCase.ProcessChannelMessage(r.Context(), channel, user, text); err != nil {
		log.Printf("❌ Failed to process channel message: %v", err)
	}

	w.WriteHeader(http.StatusOK)
}

// HandleCloseCommand processes the /encerrar slash command.
func (h *SlackWebhooksHandler) HandleCloseCommand(w http.ResponseWriter, r *http.Request) {
	log.Printf("⚡ Slack command received from %s", r.RemoteAddr)

	if _, ok := h.verifyAndRead(w, r); !ok {
		return
	}

	command, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Printf("❌ Failed to parse slash command: %v", err)
		http.Error(w, "failed to parse slash command", http.StatusBadRequest)
		return
	}

	if command.Command != "/encerrar" {
		log.Printf("⚠️ Unknown slash command: %s", command.Command)
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("🎯 Processing /encerrar from agent %s", command.UserID)

	reply, err := h.botUseCase.ProcessCloseCommand(r.Context(), command.UserID, command.Text)
	if err != nil {
		log.Printf("❌ Failed to process close command: %v", err)
		reply = "❌ Não foi possível encerrar o atendimento. Tente novamente."
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(reply)); err != nil {
		log.Printf("❌ Failed to write command response: %v", err)
	}
}

func (h *SlackWebhooksHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Slack webhook endpoints")

	router.HandleFunc("/slack/actions", h.HandleSlackAction).Methods("POST")
	log.Printf("✅ POST /slack/actions endpoint registered")

	router.HandleFunc("/slack/events", h.HandleSlackEvent).Methods("POST")
	log.Printf("✅ POST /slack/events endpoint registered")

	router.HandleFunc("/slack/encerrar", h.HandleCloseCommand).Methods("POST")
	log.Printf("✅ POST /slack/encerrar endpoint registered")
}
