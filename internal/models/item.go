package models

type ItemKind string

const (
	ItemKindCard   ItemKind = "card"
	ItemKindSealed ItemKind = "sealed"
)

// ItemOrigin records how an item entered the current draft or inventory.
type ItemOrigin string

const (
	OriginExistingInventory ItemOrigin = "existing_inventory"
	OriginManuallyAdded     ItemOrigin = "manually_added"
	OriginCatalogLookup     ItemOrigin = "catalog_lookup"
)

type Condition string

const (
	ConditionMint      Condition = "M"
	ConditionNearMint  Condition = "NM"
	ConditionExcellent Condition = "EX"
	ConditionGood      Condition = "GD"
	ConditionLightPlay Condition = "LP"
	ConditionPlayed    Condition = "PL"
	ConditionPoor      Condition = "PR"
)

// Edition distinguishes print runs for WotC-era sets. Modern sets have a
// single print run, so the field stays nil for them.
type Edition string

const (
	EditionFirst      Edition = "1st Edition"
	EditionShadowless Edition = "Shadowless"
	EditionUnlimited  Edition = "Unlimited"
)

// editionSets are the vintage set codes where the edition marking changes
// the card's identity (and usually its price by an order of magnitude).
var editionSets = map[string]bool{
	"base1": true,
	"base2": true,
	"base3": true,
	"base4": true,
	"base5": true,
	"gym1":  true,
	"gym2":  true,
	"neo1":  true,
	"neo2":  true,
	"neo3":  true,
	"neo4":  true,
}

// EditionApplies reports whether the edition field is meaningful for a set.
func EditionApplies(setCode string) bool {
	return editionSets[setCode]
}

// TradeItem is a single line on one side of a trade. Kind selects which of
// the card/sealed field groups is populated; the valuation fields are shared.
type TradeItem struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"kind"`
	Name string   `json:"name"`

	// Card fields
	SetName    string `json:"set_name,omitempty"`
	CardNumber string `json:"card_number,omitempty"`

	// Sealed product fields
	ProductType string `json:"product_type,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`

	Condition       Condition  `json:"condition"`
	Edition         *Edition   `json:"edition,omitempty"`
	MarketValue     float64    `json:"market_value"`
	AcquisitionCost *float64   `json:"acquisition_cost,omitempty"`
	Origin          ItemOrigin `json:"origin"`
	Notes           string     `json:"notes,omitempty"`
}

// CostBasis returns what the vendor paid for the item, falling back to the
// current market value when no acquisition cost was ever recorded.
func (i TradeItem) CostBasis() float64 {
	if i.AcquisitionCost != nil {
		return *i.AcquisitionCost
	}
	return i.MarketValue
}
