package models

import (
	"time"
)

// InventoryEntry is an item the vendor currently owns. Entries are created
// by manual adds, catalog-lookup acquisitions, and settlement of incoming
// customer items; they are deleted manually or when settled away.
type InventoryEntry struct {
	ID        string   `json:"id" gorm:"primaryKey"`
	AccountID string   `json:"account_id" gorm:"not null;index"`
	Kind      ItemKind `json:"kind" gorm:"not null"`
	Name      string   `json:"name" gorm:"not null;index"`

	SetName    string `json:"set_name"`
	CardNumber string `json:"card_number"`

	ProductType string `json:"product_type"`
	Quantity    int    `json:"quantity"`

	Condition       Condition  `json:"condition" gorm:"default:'NM'"`
	Edition         *Edition   `json:"edition,omitempty"`
	MarketValue     float64    `json:"market_value"`
	AcquisitionCost *float64   `json:"acquisition_cost,omitempty"`
	Notes           string     `json:"notes"`
	DateAdded       time.Time  `json:"date_added" gorm:"index"`
	PriceUpdatedAt  *time.Time `json:"price_updated_at"`
}

// ToTradeItem converts an owned entry into a draft line on the vendor side.
func (e InventoryEntry) ToTradeItem() TradeItem {
	return TradeItem{
		ID:              e.ID,
		Kind:            e.Kind,
		Name:            e.Name,
		SetName:         e.SetName,
		CardNumber:      e.CardNumber,
		ProductType:     e.ProductType,
		Quantity:        e.Quantity,
		Condition:       e.Condition,
		Edition:         e.Edition,
		MarketValue:     e.MarketValue,
		AcquisitionCost: e.AcquisitionCost,
		Origin:          OriginExistingInventory,
		Notes:           e.Notes,
	}
}

// InventoryStats summarizes the owned collection for the dashboard.
type InventoryStats struct {
	TotalItems  int     `json:"total_items"`
	CardCount   int     `json:"card_count"`
	SealedCount int     `json:"sealed_count"`
	TotalValue  float64 `json:"total_value"`
	TotalCost   float64 `json:"total_cost"`
}
