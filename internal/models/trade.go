package models

import (
	"time"
)

type CashMethod string

const (
	CashMethodCash        CashMethod = "cash"
	CashMethodPayPal      CashMethod = "paypal"
	CashMethodVenmo       CashMethod = "venmo"
	CashMethodZelle       CashMethod = "zelle"
	CashMethodStoreCredit CashMethod = "store_credit"
)

// AllCashMethods returns the accepted payment channels.
func AllCashMethods() []CashMethod {
	return []CashMethod{
		CashMethodCash,
		CashMethodPayPal,
		CashMethodVenmo,
		CashMethodZelle,
		CashMethodStoreCredit,
	}
}

// IsValidCashMethod reports whether m is one of the accepted payment channels.
func IsValidCashMethod(m CashMethod) bool {
	for _, known := range AllCashMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// TradeSide holds everything one party is putting into a trade.
type TradeSide struct {
	Cards      []TradeItem `json:"cards"`
	Sealed     []TradeItem `json:"sealed"`
	Cash       int         `json:"cash"`
	CashMethod CashMethod  `json:"cash_method"`
}

// NewTradeSide returns an empty side with the default payment channel.
func NewTradeSide() TradeSide {
	return TradeSide{
		Cards:      []TradeItem{},
		Sealed:     []TradeItem{},
		Cash:       0,
		CashMethod: CashMethodCash,
	}
}

// Items returns cards followed by sealed products in insertion order.
func (s TradeSide) Items() []TradeItem {
	items := make([]TradeItem, 0, len(s.Cards)+len(s.Sealed))
	items = append(items, s.Cards...)
	items = append(items, s.Sealed...)
	return items
}

// ItemValue sums the market value of every item on the side, cash excluded.
func (s TradeSide) ItemValue() float64 {
	var total float64
	for _, item := range s.Items() {
		total += item.MarketValue
	}
	return total
}

const (
	MinOfferPercentage     = 40.0
	MaxOfferPercentage     = 100.0
	DefaultOfferPercentage = 70.0
)

// TradeDraft is the in-progress state of a two-sided trade. Vendor is what
// leaves the shop, customer is what comes in.
type TradeDraft struct {
	Vendor          TradeSide `json:"vendor"`
	Customer        TradeSide `json:"customer"`
	OfferPercentage float64   `json:"offer_percentage"`
}

// NewTradeDraft returns an empty draft at the default offer percentage.
func NewTradeDraft() *TradeDraft {
	return &TradeDraft{
		Vendor:          NewTradeSide(),
		Customer:        NewTradeSide(),
		OfferPercentage: DefaultOfferPercentage,
	}
}

// TradeTotals is the priced view of a draft.
type TradeTotals struct {
	VendorTotal      float64 `json:"vendor_total"`
	CustomerRawTotal float64 `json:"customer_raw_total"`
	CustomerOffer    float64 `json:"customer_offer"`
}

// TradeRecord is the permanent history entry written when a draft settles.
// Both sides are stored as JSON snapshots; the record is never updated.
type TradeRecord struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	AccountID       string    `json:"account_id" gorm:"not null;index"`
	VendorSide      TradeSide `json:"vendor_side" gorm:"serializer:json"`
	CustomerSide    TradeSide `json:"customer_side" gorm:"serializer:json"`
	ValueVendor     float64   `json:"value_vendor"`
	ValueCustomer   float64   `json:"value_customer"`
	OfferPercentage float64   `json:"offer_percentage"`
	ShowID          *string   `json:"show_id,omitempty"`
	ShowName        *string   `json:"show_name,omitempty"`
	Date            time.Time `json:"date" gorm:"not null;index"`
	CreatedAt       time.Time `json:"created_at"`
}
