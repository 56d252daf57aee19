package services

import (
	"errors"
	"log"
	"math"
	"sync"

	"gorm.io/gorm"

	"github.com/codyseavey/tcg-vendor/internal/metrics"
	"github.com/codyseavey/tcg-vendor/internal/models"
)

var ErrNegativeBalance = errors.New("adjustment would make cash balance negative")

// AccountService owns the vendor balances and the per-account locks that
// serialize everything touching them. Settlements and fund adjustments for
// one account never interleave; different accounts proceed in parallel.
type AccountService struct {
	db      *gorm.DB
	sampler *ValuationSampler

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAccountService(db *gorm.DB, sampler *ValuationSampler) *AccountService {
	return &AccountService{
		db:      db,
		sampler: sampler,
		locks:   make(map[string]*sync.Mutex),
	}
}

// WithLock runs fn while holding the account's mutex.
func (s *AccountService) WithLock(accountID string, fn func() error) error {
	s.mu.Lock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	s.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}

// Get fetches the account, creating it with zero balances on first use.
func (s *AccountService) Get(accountID string) (*models.Account, error) {
	account := models.Account{ID: accountID}
	if err := s.db.FirstOrCreate(&account, models.Account{ID: accountID}).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// AdjustFunds applies a cash delta. Fractional deltas are floored the same
// way draft cash is; a result below zero is rejected with no mutation.
func (s *AccountService) AdjustFunds(accountID string, delta float64) (*models.Account, error) {
	amount := int(math.Floor(delta))

	var account *models.Account
	err := s.WithLock(accountID, func() error {
		acct, err := s.Get(accountID)
		if err != nil {
			return err
		}
		if acct.CashOnHand+amount < 0 {
			return ErrNegativeBalance
		}
		acct.CashOnHand += amount
		if err := s.db.Model(acct).Update("cash_on_hand", acct.CashOnHand).Error; err != nil {
			return err
		}
		account = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Account service: adjusted funds for %s by %d (balance: %d)", accountID, amount, account.CashOnHand)
	s.RecordValuation(accountID)
	return account, nil
}

// ClearPendingSales folds accumulated pending card sales into cash on hand.
func (s *AccountService) ClearPendingSales(accountID string) (*models.Account, error) {
	var account *models.Account
	err := s.WithLock(accountID, func() error {
		acct, err := s.Get(accountID)
		if err != nil {
			return err
		}
		cleared := int(math.Floor(acct.PendingCardSales))
		acct.CashOnHand += cleared
		acct.PendingCardSales = 0
		if err := s.db.Model(acct).Updates(map[string]interface{}{
			"cash_on_hand":       acct.CashOnHand,
			"pending_card_sales": 0.0,
		}).Error; err != nil {
			return err
		}
		log.Printf("Account service: cleared %d pending sales for %s (balance: %d)", cleared, accountID, acct.CashOnHand)
		account = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.RecordValuation(accountID)
	return account, nil
}

// AddPendingSale accumulates the proceeds of a card sale awaiting payout.
func (s *AccountService) AddPendingSale(accountID string, amount float64) (*models.Account, error) {
	if amount < 0 {
		return nil, ErrNegativeBalance
	}

	var account *models.Account
	err := s.WithLock(accountID, func() error {
		acct, err := s.Get(accountID)
		if err != nil {
			return err
		}
		acct.PendingCardSales += amount
		if err := s.db.Model(acct).Update("pending_card_sales", acct.PendingCardSales).Error; err != nil {
			return err
		}
		account = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// InventoryValue sums the current market value of everything the account owns.
func (s *AccountService) InventoryValue(accountID string) (float64, error) {
	var total float64
	err := s.db.Model(&models.InventoryEntry{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(market_value), 0)").
		Scan(&total).Error
	return total, err
}

// RecordValuation appends a sample of the account's current worth to the
// dashboard log and refreshes the gauges. Failures are logged, not returned:
// a missing chart point never blocks the operation that moved the money.
func (s *AccountService) RecordValuation(accountID string) {
	account, err := s.Get(accountID)
	if err != nil {
		log.Printf("Account service: failed to load account %s for valuation: %v", accountID, err)
		return
	}
	inventoryValue, err := s.InventoryValue(accountID)
	if err != nil {
		log.Printf("Account service: failed to value inventory for %s: %v", accountID, err)
		return
	}

	if err := s.sampler.Append(accountID, inventoryValue, float64(account.CashOnHand)); err != nil {
		log.Printf("Account service: failed to append valuation sample for %s: %v", accountID, err)
	}

	metrics.InventoryValueUSD.WithLabelValues(accountID).Set(inventoryValue)
	metrics.CashOnHandUSD.WithLabelValues(accountID).Set(float64(account.CashOnHand))
}
