package services

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

// TradeSideID selects which half of a draft an operation targets.
type TradeSideID string

const (
	SideVendor   TradeSideID = "vendor"
	SideCustomer TradeSideID = "customer"
)

var (
	ErrInvalidSide         = errors.New("side must be 'vendor' or 'customer'")
	ErrDuplicateItem       = errors.New("item is already in the draft")
	ErrNegativeMarketValue = errors.New("item market value cannot be negative")
	ErrInvalidCashMethod   = errors.New("unknown cash method")
	ErrItemNotFound        = errors.New("item not in draft")
)

// DraftService keeps the in-progress trade for each account. Drafts are
// session state, not persisted: an unfinished trade does not survive a
// restart, and that is intentional.
type DraftService struct {
	mu     sync.Mutex
	drafts map[string]*models.TradeDraft
}

func NewDraftService() *DraftService {
	return &DraftService{
		drafts: make(map[string]*models.TradeDraft),
	}
}

// draft returns the live draft for an account, creating an empty one on
// first use. Caller must hold s.mu.
func (s *DraftService) draft(accountID string) *models.TradeDraft {
	d, ok := s.drafts[accountID]
	if !ok {
		d = models.NewTradeDraft()
		s.drafts[accountID] = d
	}
	return d
}

func (s *DraftService) side(d *models.TradeDraft, sideID TradeSideID) (*models.TradeSide, error) {
	switch sideID {
	case SideVendor:
		return &d.Vendor, nil
	case SideCustomer:
		return &d.Customer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, sideID)
	}
}

// Snapshot returns a deep copy of the current draft so callers can read it
// without racing draft mutations.
func (s *DraftService) Snapshot(accountID string) models.TradeDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(accountID)
	return copyDraft(d)
}

// Totals reprices the current draft.
func (s *DraftService) Totals(accountID string) models.TradeTotals {
	draft := s.Snapshot(accountID)
	return ComputeTotals(&draft)
}

// AddItem appends an item to one side. Items are unique by id across the
// whole draft, so the same inventory entry cannot be offered twice.
func (s *DraftService) AddItem(accountID string, sideID TradeSideID, item models.TradeItem) error {
	if item.MarketValue < 0 {
		return ErrNegativeMarketValue
	}
	if item.Kind != models.ItemKindCard && item.Kind != models.ItemKindSealed {
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(accountID)
	side, err := s.side(d, sideID)
	if err != nil {
		return err
	}

	for _, existing := range append(d.Vendor.Items(), d.Customer.Items()...) {
		if existing.ID == item.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
	}

	if item.Kind == models.ItemKindCard {
		side.Cards = append(side.Cards, item)
	} else {
		side.Sealed = append(side.Sealed, item)
	}
	return nil
}

// RemoveItem drops an item from one side by id.
func (s *DraftService) RemoveItem(accountID string, sideID TradeSideID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(accountID)
	side, err := s.side(d, sideID)
	if err != nil {
		return err
	}

	for i, item := range side.Cards {
		if item.ID == itemID {
			side.Cards = append(side.Cards[:i], side.Cards[i+1:]...)
			return nil
		}
	}
	for i, item := range side.Sealed {
		if item.ID == itemID {
			side.Sealed = append(side.Sealed[:i], side.Sealed[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// SetCash sets the cash amount on one side. Fractional amounts are floored
// and negatives clamp to zero; the clamped value is returned.
func (s *DraftService) SetCash(accountID string, sideID TradeSideID, amount float64) (int, error) {
	clamped := int(math.Floor(amount))
	if clamped < 0 {
		clamped = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(accountID)
	side, err := s.side(d, sideID)
	if err != nil {
		return 0, err
	}
	side.Cash = clamped
	return clamped, nil
}

func (s *DraftService) SetCashMethod(accountID string, sideID TradeSideID, method models.CashMethod) error {
	if !models.IsValidCashMethod(method) {
		return fmt.Errorf("%w: %q", ErrInvalidCashMethod, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(accountID)
	side, err := s.side(d, sideID)
	if err != nil {
		return err
	}
	side.CashMethod = method
	return nil
}

// SetOfferPercentage clamps the value into [40,100] and returns what was stored.
func (s *DraftService) SetOfferPercentage(accountID string, value float64) float64 {
	clamped := math.Min(math.Max(value, models.MinOfferPercentage), models.MaxOfferPercentage)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft(accountID).OfferPercentage = clamped
	return clamped
}

// Clear resets the draft to empty sides, zero cash, and the default
// percentage. Called on discard and after a successful settlement.
func (s *DraftService) Clear(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[accountID] = models.NewTradeDraft()
}

func copyDraft(d *models.TradeDraft) models.TradeDraft {
	out := *d
	out.Vendor = copySide(d.Vendor)
	out.Customer = copySide(d.Customer)
	return out
}

func copySide(s models.TradeSide) models.TradeSide {
	out := s
	out.Cards = append([]models.TradeItem{}, s.Cards...)
	out.Sealed = append([]models.TradeItem{}, s.Sealed...)
	return out
}
