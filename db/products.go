package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtx "atendbackend/db/tx"
	"atendbackend/models"
)

type PostgresProductsRepository struct {
	db     *sqlx.DB
	schema string
}

// DBProduct represents the database schema for the products table
type DBProduct struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Features  pq.StringArray  `db:"features"`
	CreatedAt time.Time       `db:"created_at"`
}

var productsColumns = []string{
	"id",
	"name",
	"price",
	"features",
	"created_at",
}

func NewPostgresProductsRepository(db *sqlx.DB, schema string) *PostgresProductsRepository {
	return &PostgresProductsRepository{db: db, schema: schema}
}

func dbProductToModel(dbProduct *DBProduct) *models.Product {
	return &models.Product{
		ID:        dbProduct.ID,
		Name:      dbProduct.Name,
		Price:     dbProduct.Price,
		Features:  []string(dbProduct.Features),
		CreatedAt: dbProduct.CreatedAt,
	}
}

// GetAllProducts returns every product record, ordered by creation time.
func (r *PostgresProductsRepository) GetAllProducts(ctx context.Context) ([]*models.Product, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(productsColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.products
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var dbProducts []DBProduct
	if err := db.SelectContext(ctx, &dbProducts, query); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*models.Product, 0, len(dbProducts))
	for i := range dbProducts {
		products = append(products, dbProductToModel(&dbProducts[i]))
	}

	return products, nil
}

// CreateProduct inserts a product record. Used by the seed command.
func (r *PostgresProductsRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(productsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.products (id, name, price, features, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s`, r.schema, columnsStr)

	var returned DBProduct
	err := db.QueryRowxContext(ctx, query,
		product.ID, product.Name, product.Price, pq.Array(product.Features)).
		StructScan(&returned)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	*product = *dbProductToModel(&returned)
	return nil
}
