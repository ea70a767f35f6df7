package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	slackclient "atendbackend/clients/slack"
	telegramclient "atendbackend/clients/telegram"
	"atendbackend/config"
	"atendbackend/db"
	"atendbackend/handlers"
	"atendbackend/services/catalog"
	"atendbackend/services/sessions"
	"atendbackend/services/tickets"
	"atendbackend/services/txmanager"
	"atendbackend/usecases/bot"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	productsRepo := db.NewPostgresProductsRepository(dbConn, cfg.DatabaseSchema)
	ordersRepo := db.NewPostgresOrdersRepository(dbConn, cfg.DatabaseSchema)
	sessionsRepo := db.NewPostgresSessionsRepository(dbConn, cfg.DatabaseSchema)
	ticketsRepo := db.NewPostgresTicketsRepository(dbConn, cfg.DatabaseSchema)

	txManager := txmanager.NewTransactionManager(dbConn)

	catalogService := catalog.NewCatalogService(productsRepo, ordersRepo, cfg.FuzzyMatchThreshold)
	if err := catalogService.Refresh(context.Background()); err != nil {
		return err
	}
	sessionsService := sessions.NewSessionsService(sessionsRepo)
	ticketsService := tickets.NewTicketsService(ticketsRepo)

	slackClient := slackclient.NewSlackClient(cfg.SlackConfig.BotToken)
	telegramClient, err := telegramclient.NewTelegramClient(cfg.TelegramConfig.BotToken)
	if err != nil {
		return err
	}

	botUseCase := bot.NewBotUseCase(
		slackClient,
		telegramClient,
		catalogService,
		sessionsService,
		ticketsService,
		txManager,
		cfg.SlackConfig.BroadcastChannelID,
	)

	dialogflowHandler := handlers.NewDialogflowHandler(botUseCase)
	slackHandler := handlers.NewSlackWebhooksHandler(cfg.SlackConfig.SigningSecret, botUseCase)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	router := mux.NewRouter()
	dialogflowHandler.SetupEndpoints(router)
	slackHandler.SetupEndpoints(router)
	catalogHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
