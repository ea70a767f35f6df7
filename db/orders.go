package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	dbtx "atendbackend/db/tx"
	"atendbackend/models"
)

type PostgresOrdersRepository struct {
	db     *sqlx.DB
	schema string
}

// DBOrder represents the database schema for the orders table
type DBOrder struct {
	ID        string    `db:"id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

var ordersColumns = []string{
	"id",
	"status",
	"created_at",
}

func NewPostgresOrdersRepository(db *sqlx.DB, schema string) *PostgresOrdersRepository {
	return &PostgresOrdersRepository{db: db, schema: schema}
}

func dbOrderToModel(dbOrder *DBOrder) *models.Order {
	return &models.Order{
		ID:        dbOrder.ID,
		Status:    dbOrder.Status,
		CreatedAt: dbOrder.CreatedAt,
	}
}

// GetAllOrders returns every order record, ordered by creation time.
func (r *PostgresOrdersRepository) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(ordersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.orders
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var dbOrders []DBOrder
	if err := db.SelectContext(ctx, &dbOrders, query); err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	orders := make([]*models.Order, 0, len(dbOrders))
	for i := range dbOrders {
		orders = append(orders, dbOrderToModel(&dbOrders[i]))
	}

	return orders, nil
}

// CreateOrder inserts an order record. Used by the seed command.
func (r *PostgresOrdersRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(ordersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.orders (id, status, created_at)
		VALUES ($1, $2, NOW())
		RETURNING %s`, r.schema, columnsStr)

	var returned DBOrder
	err := db.QueryRowxContext(ctx, query, order.ID, order.Status).StructScan(&returned)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	*order = *dbOrderToModel(&returned)
	return nil
}
