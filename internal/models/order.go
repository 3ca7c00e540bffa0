package models

import "time"

type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderSummary is the read-only view of an order shown in chat replies.
type OrderSummary struct {
	ID      string      `json:"id" db:"id"`
	UserID  string      `json:"userId" db:"user_id"`
	Status  string      `json:"status" db:"status"`
	Payment bool        `json:"payment" db:"payment"`
	Amount  float64     `json:"amount" db:"amount"`
	Items   []OrderLine `json:"items"`
	Address string      `json:"address,omitempty" db:"address"`
	Date    time.Time   `json:"date" db:"created_at"`
}
