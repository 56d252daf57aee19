package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

var (
	ErrEmptyTrade        = errors.New("trade is empty")
	ErrInsufficientFunds = errors.New("vendor cash exceeds cash on hand")
)

// Settlement steps that can fail without aborting the trade.
const (
	StepDeleteOutgoing = "delete_outgoing"
	StepCreateIncoming = "create_incoming"
	StepCashUpdate     = "cash_update"
)

// SettlementWarning records a store failure that was swallowed mid-settlement.
// Once the trade record is persisted the settlement runs to completion; these
// tell the caller which sub-steps need manual attention.
type SettlementWarning struct {
	Step    string `json:"step"`
	ItemID  string `json:"item_id,omitempty"`
	Message string `json:"message"`
}

// SettlementResult is what a successful settlement hands back to the caller.
type SettlementResult struct {
	Record     models.TradeRecord  `json:"record"`
	NewBalance int                 `json:"new_balance"`
	Warnings   []SettlementWarning `json:"warnings,omitempty"`
}

// SettlementEngine commits trade drafts: it writes the permanent record,
// reconciles inventory with proportionally allocated cost basis, and moves
// the cash balance.
type SettlementEngine struct {
	db       *gorm.DB
	drafts   *DraftService
	accounts *AccountService
	shows    *ShowService
}

func NewSettlementEngine(db *gorm.DB, drafts *DraftService, accounts *AccountService, shows *ShowService) *SettlementEngine {
	return &SettlementEngine{
		db:       db,
		drafts:   drafts,
		accounts: accounts,
		shows:    shows,
	}
}

// Settle validates and commits the account's current draft.
//
// Validation happens before any mutation; after the trade record persists,
// per-item store failures are logged and collected as warnings but never
// abort the remaining steps or roll back completed ones. The whole run holds
// the account lock so a concurrent settlement or fund adjustment cannot
// observe a half-applied balance.
func (e *SettlementEngine) Settle(accountID string) (*SettlementResult, error) {
	start := time.Now()

	var result *SettlementResult
	err := e.accounts.WithLock(accountID, func() error {
		draft := e.drafts.Snapshot(accountID)
		totals := ComputeTotals(&draft)

		if totals.VendorTotal == 0 && totals.CustomerOffer == 0 {
			return ErrEmptyTrade
		}

		// Balance is read fresh inside the lock, not from a stale caller view.
		account, err := e.accounts.Get(accountID)
		if err != nil {
			return err
		}
		if draft.Vendor.Cash > account.CashOnHand {
			return ErrInsufficientFunds
		}

		now := time.Now()
		record := models.TradeRecord{
			ID:              uuid.New().String(),
			AccountID:       accountID,
			VendorSide:      draft.Vendor,
			CustomerSide:    draft.Customer,
			ValueVendor:     totals.VendorTotal,
			ValueCustomer:   totals.CustomerOffer,
			OfferPercentage: draft.OfferPercentage,
			Date:            now,
		}

		if show, err := e.shows.Active(accountID); err != nil {
			log.Printf("Settlement engine: failed to look up active show for %s: %v", accountID, err)
		} else if show != nil {
			record.ShowID = &show.ID
			record.ShowName = &show.Name
		}

		if err := e.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to persist trade record: %w", err)
		}

		// Record persisted: the trade happened. Everything below is
		// best-effort reconciliation.
		var warnings []SettlementWarning

		for _, item := range draft.Vendor.Items() {
			if item.Origin != models.OriginExistingInventory {
				continue
			}
			err := e.db.Delete(&models.InventoryEntry{}, "id = ? AND account_id = ?", item.ID, accountID).Error
			if err != nil {
				log.Printf("Settlement engine: failed to delete settled entry %s: %v", item.ID, err)
				metrics.SettlementWarningsTotal.WithLabelValues(StepDeleteOutgoing).Inc()
				warnings = append(warnings, SettlementWarning{
					Step:    StepDeleteOutgoing,
					ItemID:  item.ID,
					Message: err.Error(),
				})
			}
		}

		// The vendor's true cost for this trade: what it paid for every item
		// it gives up, plus cash out, minus cash in.
		netOutlay := float64(draft.Vendor.Cash) - float64(draft.Customer.Cash)
		for _, item := range draft.Vendor.Items() {
			netOutlay += item.CostBasis()
		}

		incoming := draft.Customer.Items()
		var incomingMarket float64
		for _, item := range incoming {
			incomingMarket += item.MarketValue
		}
		// A pure-cash or free-item trade has zero incoming market value;
		// the guarded divisor keeps the allocation defined.
		divisor := math.Max(incomingMarket, 1)

		for _, item := range incoming {
			allocated := (item.MarketValue / divisor) * netOutlay
			entry := models.InventoryEntry{
				ID:              item.ID,
				AccountID:       accountID,
				Kind:            item.Kind,
				Name:            item.Name,
				SetName:         item.SetName,
				CardNumber:      item.CardNumber,
				ProductType:     item.ProductType,
				Quantity:        item.Quantity,
				Condition:       item.Condition,
				Edition:         item.Edition,
				MarketValue:     item.MarketValue,
				AcquisitionCost: &allocated,
				Notes:           item.Notes,
				DateAdded:       now,
			}
			if entry.ID == "" {
				entry.ID = uuid.New().String()
			}
			if err := e.db.Create(&entry).Error; err != nil {
				log.Printf("Settlement engine: failed to create entry for incoming item %s: %v", item.ID, err)
				metrics.SettlementWarningsTotal.WithLabelValues(StepCreateIncoming).Inc()
				warnings = append(warnings, SettlementWarning{
					Step:    StepCreateIncoming,
					ItemID:  item.ID,
					Message: err.Error(),
				})
			}
		}

		newBalance := account.CashOnHand
		if draft.Vendor.Cash > 0 || draft.Customer.Cash > 0 {
			newBalance = account.CashOnHand - draft.Vendor.Cash + draft.Customer.Cash
			err := e.db.Model(&models.Account{}).
				Where("id = ?", accountID).
				Update("cash_on_hand", newBalance).Error
			if err != nil {
				log.Printf("Settlement engine: failed to update cash balance for %s: %v", accountID, err)
				metrics.SettlementWarningsTotal.WithLabelValues(StepCashUpdate).Inc()
				warnings = append(warnings, SettlementWarning{
					Step:    StepCashUpdate,
					Message: err.Error(),
				})
				newBalance = account.CashOnHand
			}
		}

		e.drafts.Clear(accountID)

		result = &SettlementResult{
			Record:     record,
			NewBalance: newBalance,
			Warnings:   warnings,
		}
		return nil
	})
	if err != nil {
		metrics.SettlementsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	outcome := "ok"
	if len(result.Warnings) > 0 {
		outcome = "ok_with_warnings"
	}
	metrics.SettlementsTotal.WithLabelValues(outcome).Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())

	e.accounts.RecordValuation(accountID)

	log.Printf("Settlement engine: settled trade %s for %s (vendor: $%.2f, customer offer: $%.2f, warnings: %d)",
		result.Record.ID, accountID, result.Record.ValueVendor, result.Record.ValueCustomer, len(result.Warnings))
	return result, nil
}

// History returns the account's settled trades, newest first.
func (e *SettlementEngine) History(accountID string) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	err := e.db.Where("account_id = ?", accountID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
