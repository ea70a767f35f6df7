package catalog

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/samber/mo"

	"atendbackend/models"
)

// Snapshot is an immutable in-memory copy of the catalog. All request-time
// lookups run against a snapshot; the service swaps the whole snapshot on
// refresh instead of mutating it.
type Snapshot struct {
	Products []*models.Product
	Orders   []*models.Order
}

// FindProductByName returns the product whose name is most similar to the
// query. Matching is case-insensitive Jaro-Winkler similarity; candidates
// below the threshold are discarded. Ties keep the earliest-loaded product.
func (s *Snapshot) FindProductByName(name string, threshold float64) mo.Option[*models.Product] {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return mo.None[*models.Product]()
	}

	metric := metrics.NewJaroWinkler()

	var best *models.Product
	bestScore := 0.0
	for _, product := range s.Products {
		score := strutil.Similarity(query, strings.ToLower(product.Name), metric)
		if score >= threshold && score > bestScore {
			best = product
			bestScore = score
		}
	}

	if best == nil {
		return mo.None[*models.Product]()
	}
	return mo.Some(best)
}

// GetOrderByID returns the order with exactly the given identifier.
func (s *Snapshot) GetOrderByID(id string) mo.Option[*models.Order] {
	for _, order := range s.Orders {
		if order.ID == id {
			return mo.Some(order)
		}
	}
	return mo.None[*models.Order]()
}

// GetLatestOrder returns the order with the most recent creation timestamp.
func (s *Snapshot) GetLatestOrder() mo.Option[*models.Order] {
	var latest *models.Order
	for _, order := range s.Orders {
		if latest == nil || order.CreatedAt.After(latest.CreatedAt) {
			latest = order
		}
	}

	if latest == nil {
		return mo.None[*models.Order]()
	}
	return mo.Some(latest)
}
