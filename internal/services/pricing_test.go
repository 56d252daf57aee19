package services

import (
	"testing"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

func TestComputeTotals(t *testing.T) {
	cost := 40.0
	draft := models.NewTradeDraft()
	draft.Vendor.Cards = []models.TradeItem{
		{ID: "v1", Kind: models.ItemKindCard, MarketValue: 100, AcquisitionCost: &cost},
	}
	draft.Vendor.Cash = 10
	draft.Customer.Cards = []models.TradeItem{
		{ID: "c1", Kind: models.ItemKindCard, MarketValue: 50},
	}
	draft.OfferPercentage = 70

	totals := ComputeTotals(draft)

	if totals.VendorTotal != 110 {
		t.Errorf("VendorTotal = %f, want 110", totals.VendorTotal)
	}
	if totals.CustomerRawTotal != 50 {
		t.Errorf("CustomerRawTotal = %f, want 50", totals.CustomerRawTotal)
	}
	if totals.CustomerOffer != 35 {
		t.Errorf("CustomerOffer = %f, want 35", totals.CustomerOffer)
	}
}

func TestComputeTotalsUsesMarketValueNotCost(t *testing.T) {
	// Acquisition cost must never leak into a quote.
	cost := 1.0
	draft := models.NewTradeDraft()
	draft.Customer.Cards = []models.TradeItem{
		{ID: "c1", Kind: models.ItemKindCard, MarketValue: 200, AcquisitionCost: &cost},
	}
	draft.OfferPercentage = 100

	totals := ComputeTotals(draft)
	if totals.CustomerRawTotal != 200 {
		t.Errorf("CustomerRawTotal = %f, want 200", totals.CustomerRawTotal)
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	draft := models.NewTradeDraft()
	draft.Vendor.Sealed = []models.TradeItem{
		{ID: "s1", Kind: models.ItemKindSealed, MarketValue: 99.99},
	}
	draft.Customer.Cash = 25
	draft.OfferPercentage = 85

	first := ComputeTotals(draft)
	second := ComputeTotals(draft)
	if first != second {
		t.Errorf("ComputeTotals is not deterministic: %+v != %+v", first, second)
	}
}

func TestComputeTotalsEmptyDraft(t *testing.T) {
	draft := models.NewTradeDraft()
	totals := ComputeTotals(draft)
	if totals.VendorTotal != 0 || totals.CustomerRawTotal != 0 || totals.CustomerOffer != 0 {
		t.Errorf("empty draft totals = %+v, want all zero", totals)
	}
}
