package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `db:"id"         json:"id"`
	Name      string          `db:"name"       json:"name"`
	Price     decimal.Decimal `db:"price"      json:"price"`
	Features  []string        `json:"features"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
