package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atendbackend/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// HandleRefresh reloads the in-memory catalog snapshot from the database.
func (h *CatalogHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Catalog refresh requested from %s", r.RemoteAddr)

	if err := h.catalogService.Refresh(r.Context()); err != nil {
		log.Printf("❌ Failed to refresh catalog: %v", err)
		http.Error(w, "failed to refresh catalog", http.StatusInternalServerError)
		return
	}

	products, orders := h.catalogService.Counts()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{
		"products": products,
		"orders":   orders,
	}); err != nil {
		log.Printf("❌ Failed to write refresh response: %v", err)
	}
}

func (h *CatalogHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering catalog endpoints")

	router.HandleFunc("/catalog/refresh", h.HandleRefresh).Methods("POST")
	log.Printf("✅ POST /catalog/refresh endpoint registered")
}
