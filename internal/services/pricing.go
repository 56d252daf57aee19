package services

import (
	"github.com/codyseavey/tcg-vendor/internal/models"
)

// ComputeTotals prices both sides of a draft. Items always count at market
// value; acquisition cost never enters a quote. The customer side is scaled
// by the offer percentage to produce the vendor's cash-equivalent offer.
// Pure function, recomputed on every read.
func ComputeTotals(draft *models.TradeDraft) models.TradeTotals {
	vendorTotal := draft.Vendor.ItemValue() + float64(draft.Vendor.Cash)
	customerRaw := draft.Customer.ItemValue() + float64(draft.Customer.Cash)

	return models.TradeTotals{
		VendorTotal:      vendorTotal,
		CustomerRawTotal: customerRaw,
		CustomerOffer:    customerRaw * (draft.OfferPercentage / 100.0),
	}
}
