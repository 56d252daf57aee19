package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

const (
	// refreshBatchSize is the number of inventory entries refreshed per batch
	refreshBatchSize = 25

	// refreshStaleness is how old a market value can be before it is
	// eligible for a background refresh
	refreshStaleness = 24 * time.Hour
)

// PriceRefreshWorker keeps inventory market values current. It periodically
// refreshes the stalest card entries from the catalog and records a fresh
// valuation sample for every account it touched.
type PriceRefreshWorker struct {
	db             *gorm.DB
	catalog        *CatalogService
	accounts       *AccountService
	updateInterval time.Duration

	mu             sync.RWMutex
	lastUpdateTime time.Time
	updatedTotal   int
}

// RefreshStatus reports worker progress and catalog quota for the UI.
type RefreshStatus struct {
	LastUpdateTime time.Time `json:"last_update_time"`
	NextUpdateTime time.Time `json:"next_update_time"`
	UpdatedTotal   int       `json:"updated_total"`
	BatchSize      int       `json:"batch_size"`
	QuotaRemaining int       `json:"quota_remaining"`
}

func NewPriceRefreshWorker(db *gorm.DB, catalog *CatalogService, accounts *AccountService) *PriceRefreshWorker {
	return &PriceRefreshWorker{
		db:             db,
		catalog:        catalog,
		accounts:       accounts,
		updateInterval: 15 * time.Minute,
	}
}

// Start begins the background refresh loop.
func (w *PriceRefreshWorker) Start(ctx context.Context) {
	log.Printf("Price refresh worker started: will update %d entries every %v", refreshBatchSize, w.updateInterval)

	// Run immediately on startup
	if updated, err := w.RefreshBatch(ctx); err != nil {
		log.Printf("Price refresh worker: initial batch failed: %v", err)
	} else if updated > 0 {
		log.Printf("Price refresh worker: initial batch updated %d entries", updated)
	}

	ticker := time.NewTicker(w.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Price refresh worker stopping...")
			return
		case <-ticker.C:
			if updated, err := w.RefreshBatch(ctx); err != nil {
				log.Printf("Price refresh worker: batch failed: %v", err)
			} else if updated > 0 {
				log.Printf("Price refresh worker: batch updated %d entries", updated)
			}
		}
	}
}

// RefreshBatch refreshes the stalest card entries. Entries that never had a
// price check come first, then the oldest checks.
func (w *PriceRefreshWorker) RefreshBatch(ctx context.Context) (int, error) {
	if w.catalog.RequestsRemaining() == 0 {
		log.Println("Price refresh worker: catalog quota exhausted, skipping batch")
		return 0, nil
	}

	start := time.Now()
	cutoff := start.Add(-refreshStaleness)

	var entries []models.InventoryEntry
	err := w.db.Where("kind = ? AND (price_updated_at IS NULL OR price_updated_at < ?)", models.ItemKindCard, cutoff).
		Order("price_updated_at ASC").
		Limit(refreshBatchSize).
		Find(&entries).Error
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	updated := 0
	touched := make(map[string]bool)
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if w.catalog.RequestsRemaining() == 0 {
			break
		}

		candidates, err := w.catalog.Search(ctx, entry.Name, "", entry.CardNumber)
		if err != nil {
			log.Printf("Price refresh worker: lookup failed for %q: %v", entry.Name, err)
			continue
		}

		price, ok := bestCandidatePrice(entry, candidates)
		now := time.Now()
		updates := map[string]interface{}{"price_updated_at": now}
		if ok && price > 0 {
			updates["market_value"] = price
		}
		if err := w.db.Model(&models.InventoryEntry{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
			log.Printf("Price refresh worker: failed to update entry %s: %v", entry.ID, err)
			continue
		}

		if ok && price > 0 && price != entry.MarketValue {
			touched[entry.AccountID] = true
		}
		updated++
		metrics.PriceRefreshTotal.Inc()
	}

	// A moved price changes the account's worth, so log a sample for it.
	for accountID := range touched {
		w.accounts.RecordValuation(accountID)
	}

	w.mu.Lock()
	w.lastUpdateTime = time.Now()
	w.updatedTotal += updated
	w.mu.Unlock()

	metrics.PriceRefreshBatchDuration.Observe(time.Since(start).Seconds())
	return updated, nil
}

// bestCandidatePrice picks the candidate matching the entry's set and number,
// falling back to the first priced result.
func bestCandidatePrice(entry models.InventoryEntry, candidates []models.TradeItem) (float64, bool) {
	for _, c := range candidates {
		if c.SetName == entry.SetName && c.CardNumber == entry.CardNumber && c.MarketValue > 0 {
			return c.MarketValue, true
		}
	}
	for _, c := range candidates {
		if c.MarketValue > 0 {
			return c.MarketValue, true
		}
	}
	return 0, false
}

// Status returns current worker state.
func (w *PriceRefreshWorker) Status() RefreshStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return RefreshStatus{
		LastUpdateTime: w.lastUpdateTime,
		NextUpdateTime: w.lastUpdateTime.Add(w.updateInterval),
		UpdatedTotal:   w.updatedTotal,
		BatchSize:      refreshBatchSize,
		QuotaRemaining: w.catalog.RequestsRemaining(),
	}
}
