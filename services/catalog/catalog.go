package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/samber/mo"

	"atendbackend/db"
	"atendbackend/models"
)

// CatalogService keeps the product/order catalog in memory and reloads it
// only on explicit Refresh. Lookups never touch the database.
type CatalogService struct {
	productsRepo *db.PostgresProductsRepository
	ordersRepo   *db.PostgresOrdersRepository
	threshold    float64

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewCatalogService(
	productsRepo *db.PostgresProductsRepository,
	ordersRepo *db.PostgresOrdersRepository,
	matchThreshold float64,
) *CatalogService {
	return &CatalogService{
		productsRepo: productsRepo,
		ordersRepo:   ordersRepo,
		threshold:    matchThreshold,
		snapshot:     &Snapshot{},
	}
}

// Refresh reloads the whole catalog from the database and swaps the snapshot.
func (s *CatalogService) Refresh(ctx context.Context) error {
	log.Printf("📋 Starting catalog refresh")

	products, err := s.productsRepo.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	orders, err := s.ordersRepo.GetAllOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	s.snapshot = &Snapshot{Products: products, Orders: orders}
	s.mu.Unlock()

	log.Printf("✅ Catalog refreshed - %d products, %d orders", len(products), len(orders))
	return nil
}

func (s *CatalogService) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *CatalogService) FindProductByName(name string) mo.Option[*models.Product] {
	return s.current().FindProductByName(name, s.threshold)
}

func (s *CatalogService) GetOrderByID(id string) mo.Option[*models.Order] {
	return s.current().GetOrderByID(id)
}

func (s *CatalogService) GetLatestOrder() mo.Option[*models.Order] {
	return s.current().GetLatestOrder()
}

// Counts reports the size of the current snapshot.
func (s *CatalogService) Counts() (products, orders int) {
	snap := s.current()
	return len(snap.Products), len(snap.Orders)
}
