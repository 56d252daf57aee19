package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

// ValuationSampler maintains the bounded per-account valuation log backing
// the dashboard trend chart. Samples are appended whenever cash or inventory
// value changes; the log keeps only the newest entries.
type ValuationSampler struct {
	db *gorm.DB
}

func NewValuationSampler(db *gorm.DB) *ValuationSampler {
	return &ValuationSampler{db: db}
}

// Append records a sample and evicts the oldest entries beyond the cap.
func (s *ValuationSampler) Append(accountID string, inventoryValue, cashValue float64) error {
	sample := models.ValuationSample{
		AccountID:      accountID,
		Timestamp:      time.Now(),
		InventoryValue: inventoryValue,
		CashValue:      cashValue,
	}

	if err := s.db.Create(&sample).Error; err != nil {
		return err
	}
	metrics.ValuationSamplesTotal.Inc()

	return s.trim(accountID)
}

// trim deletes the oldest samples so at most ValuationLogCap remain.
func (s *ValuationSampler) trim(accountID string) error {
	var count int64
	if err := s.db.Model(&models.ValuationSample{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return err
	}

	excess := count - models.ValuationLogCap
	if excess <= 0 {
		return nil
	}

	var ids []uint
	if err := s.db.Model(&models.ValuationSample{}).
		Where("account_id = ?", accountID).
		Order("timestamp ASC, id ASC").
		Limit(int(excess)).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&models.ValuationSample{}, ids).Error; err != nil {
		return err
	}
	log.Printf("Valuation sampler: evicted %d old samples for account %s", len(ids), accountID)
	return nil
}

// Read returns the account's samples oldest first. An empty result is valid;
// callers substitute a synthetic current sample for display.
func (s *ValuationSampler) Read(accountID string) ([]models.ValuationSample, error) {
	var samples []models.ValuationSample
	err := s.db.Where("account_id = ?", accountID).
		Order("timestamp ASC, id ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}
