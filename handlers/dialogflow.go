package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atendbackend/models"
	"atendbackend/usecases"
	"atendbackend/usecases/bot"
)

type DialogflowHandler struct {
	botUseCase usecases.BotUseCaseInterface
}

func NewDialogflowHandler(botUseCase usecases.BotUseCaseInterface) *DialogflowHandler {
	return &DialogflowHandler{botUseCase: botUseCase}
}

// HandleWebhook receives the Dialogflow fulfillment request. A handler
// failure never surfaces as an error response - the user gets an apologetic
// fallback line instead.
func (h *DialogflowHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Dialogflow webhook received from %s", r.RemoteAddr)

	var req models.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse webhook body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	response, err := h.botUseCase.ProcessDialogflowWebhook(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Failed to process webhook: %v", err)
		response = bot.FallbackResponse()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Failed to write webhook response: %v", err)
	}
}

func (h *DialogflowHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Dialogflow webhook endpoint")

	router.HandleFunc("/dialogflow", h.HandleWebhook).Methods("POST")
	log.Printf("✅ POST /dialogflow endpoint registered")
}
