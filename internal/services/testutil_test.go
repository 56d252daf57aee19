package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

// newTestDB opens a throwaway SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.InventoryEntry{},
		&models.TradeRecord{},
		&models.ShowSession{},
		&models.ValuationSample{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newTestEngine wires a settlement engine with all real collaborators over a
// test database.
func newTestEngine(t *testing.T) (*SettlementEngine, *DraftService, *AccountService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	sampler := NewValuationSampler(db)
	accounts := NewAccountService(db, sampler)
	drafts := NewDraftService()
	shows := NewShowService(db)
	engine := NewSettlementEngine(db, drafts, accounts, shows)
	return engine, drafts, accounts, db
}

func floatPtr(v float64) *float64 {
	return &v
}

func cardItem(id string, marketValue float64, acquisitionCost *float64, origin models.ItemOrigin) models.TradeItem {
	return models.TradeItem{
		ID:              id,
		Kind:            models.ItemKindCard,
		Name:            "Card " + id,
		Condition:       models.ConditionNearMint,
		MarketValue:     marketValue,
		AcquisitionCost: acquisitionCost,
		Origin:          origin,
	}
}

func sealedItem(id string, marketValue float64, origin models.ItemOrigin) models.TradeItem {
	return models.TradeItem{
		ID:          id,
		Kind:        models.ItemKindSealed,
		Name:        "Product " + id,
		ProductType: "booster box",
		Quantity:    1,
		Condition:   models.ConditionNearMint,
		MarketValue: marketValue,
		Origin:      origin,
	}
}
