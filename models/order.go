package models

import (
	"time"
)

type Order struct {
	ID        string    `db:"id"         json:"id"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
