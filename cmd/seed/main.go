package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"atendbackend/core"
	"atendbackend/db"
	"atendbackend/models"
)

// Seeds the catalog with a small demo dataset so the webhook has something
// to answer with on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL := os.Getenv("DB_URL")
	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseURL == "" || databaseSchema == "" {
		log.Fatalf("❌ DB_URL and DB_SCHEMA must be set")
	}

	dbConn, err := db.NewConnection(databaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	productsRepo := db.NewPostgresProductsRepository(dbConn, databaseSchema)
	ordersRepo := db.NewPostgresOrdersRepository(dbConn, databaseSchema)

	ctx := context.Background()

	products := []*models.Product{
		{
			ID:       core.NewID("prd"),
			Name:     "Produto A",
			Price:    decimal.NewFromInt(100),
			Features: []string{"relatórios semanais", "exportação CSV"},
		},
		{
			ID:       core.NewID("prd"),
			Name:     "Produto B",
			Price:    decimal.NewFromFloat(249.90),
			Features: []string{"suporte prioritário", "integração com ERP"},
		},
	}
	for _, product := range products {
		if err := productsRepo.CreateProduct(ctx, product); err != nil {
			log.Fatalf("❌ Failed to seed product %q: %v", product.Name, err)
		}
		log.Printf("✅ Seeded product %s (%s)", product.Name, product.ID)
	}

	orders := []*models.Order{
		{ID: "123", Status: "Enviado"},
		{ID: "456", Status: "Processando"},
		{ID: "789", Status: "Entregue"},
	}
	for _, order := range orders {
		if err := ordersRepo.CreateOrder(ctx, order); err != nil {
			log.Fatalf("❌ Failed to seed order %s: %v", order.ID, err)
		}
		log.Printf("✅ Seeded order #%s (%s)", order.ID, order.Status)
	}

	log.Printf("✅ Seed complete - %d products, %d orders", len(products), len(orders))
}
