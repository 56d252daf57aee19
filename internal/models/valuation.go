package models

import (
	"time"
)

// ValuationLogCap bounds the per-account valuation history. Oldest samples
// are evicted once the log grows past this.
const ValuationLogCap = 48

// ValuationSample is one point on the dashboard value-over-time chart.
type ValuationSample struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID      string    `json:"account_id" gorm:"not null;index:idx_valuation_account_ts"`
	Timestamp      time.Time `json:"timestamp" gorm:"not null;index:idx_valuation_account_ts"`
	InventoryValue float64   `json:"inventory_value"`
	CashValue      float64   `json:"cash_value"`
	CreatedAt      time.Time `json:"created_at"`
}
