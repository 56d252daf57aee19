package models

import (
	"time"
)

// Account holds the per-vendor balances. CashOnHand only moves through fund
// adjustments and settlements; PendingCardSales accumulates until cleared.
type Account struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	CashOnHand       int       `json:"cash_on_hand" gorm:"not null;default:0"`
	PendingCardSales float64   `json:"pending_card_sales" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
