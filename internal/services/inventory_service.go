package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

var ErrEntryNotFound = errors.New("inventory entry not found")

// InventoryService handles the manual entry and exit paths for owned items.
// Settlement-driven mutations live in the settlement engine.
type InventoryService struct {
	db       *gorm.DB
	accounts *AccountService
}

func NewInventoryService(db *gorm.DB, accounts *AccountService) *InventoryService {
	return &InventoryService{db: db, accounts: accounts}
}

// List returns the account's inventory, newest additions first.
func (s *InventoryService) List(accountID string) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := s.db.Where("account_id = ?", accountID).
		Order("date_added DESC").
		Find(&entries).Error
	return entries, err
}

// Get fetches one entry.
func (s *InventoryService) Get(accountID, entryID string) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	err := s.db.First(&entry, "id = ? AND account_id = ?", entryID, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Add creates an entry from a manually entered or catalog-sourced item.
func (s *InventoryService) Add(accountID string, item models.TradeItem) (*models.InventoryEntry, error) {
	if item.MarketValue < 0 {
		return nil, ErrNegativeMarketValue
	}
	if item.Origin == "" {
		item.Origin = models.OriginManuallyAdded
	}

	entry := models.InventoryEntry{
		ID:              uuid.New().String(),
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
		AcquisitionCost: item.AcquisitionCost,
		Notes:           item.Notes,
		DateAdded:       time.Now(),
	}
	if entry.Condition == "" {
		entry.Condition = models.ConditionNearMint
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	log.Printf("Inventory service: added %s %q for account %s", entry.Kind, entry.Name, accountID)
	s.accounts.RecordValuation(accountID)
	s.refreshGauges(accountID)
	return &entry, nil
}

// Delete removes an entry by id.
func (s *InventoryService) Delete(accountID, entryID string) error {
	result := s.db.Delete(&models.InventoryEntry{}, "id = ? AND account_id = ?", entryID, accountID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	s.accounts.RecordValuation(accountID)
	s.refreshGauges(accountID)
	return nil
}

// Stats summarizes the account's holdings for the dashboard.
func (s *InventoryService) Stats(accountID string) (*models.InventoryStats, error) {
	var stats models.InventoryStats

	type kindStats struct {
		Kind       models.ItemKind
		Count      int
		TotalValue float64
		TotalCost  float64
	}
	var results []kindStats
	err := s.db.Model(&models.InventoryEntry{}).
		Select("kind, COUNT(*) as count, COALESCE(SUM(market_value), 0) as total_value, COALESCE(SUM(COALESCE(acquisition_cost, market_value)), 0) as total_cost").
		Where("account_id = ?", accountID).
		Group("kind").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		stats.TotalItems += r.Count
		stats.TotalValue += r.TotalValue
		stats.TotalCost += r.TotalCost
		switch r.Kind {
		case models.ItemKindCard:
			stats.CardCount = r.Count
		case models.ItemKindSealed:
			stats.SealedCount = r.Count
		}
	}

	return &stats, nil
}

func (s *InventoryService) refreshGauges(accountID string) {
	var count int64
	if err := s.db.Model(&models.InventoryEntry{}).Where("account_id = ?", accountID).Count(&count).Error; err == nil {
		metrics.InventoryItemsTotal.WithLabelValues(accountID).Set(float64(count))
	}
}
