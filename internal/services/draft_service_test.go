package services

import (
	"errors"
	"testing"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

const testAccount = "acct-1"

func TestSetOfferPercentageClamping(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"above range clamps to 100", 200, 100},
		{"below range clamps to 40", 10, 40},
		{"in range unchanged", 72.5, 72.5},
		{"lower bound exact", 40, 40},
		{"upper bound exact", 100, 100},
		{"negative clamps to 40", -5, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDraftService()
			if got := s.SetOfferPercentage(testAccount, tt.input); got != tt.want {
				t.Errorf("SetOfferPercentage(%f) = %f, want %f", tt.input, got, tt.want)
			}
			if d := s.Snapshot(testAccount); d.OfferPercentage != tt.want {
				t.Errorf("stored percentage = %f, want %f", d.OfferPercentage, tt.want)
			}
		})
	}
}

func TestSetCashFlooringAndClamping(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  int
	}{
		{"whole amount", 50, 50},
		{"fractional floored", 49.99, 49},
		{"negative clamps to zero", -10, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDraftService()
			got, err := s.SetCash(testAccount, SideVendor, tt.input)
			if err != nil {
				t.Fatalf("SetCash returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SetCash(%f) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetCashInvalidSide(t *testing.T) {
	s := NewDraftService()
	if _, err := s.SetCash(testAccount, "dealer", 10); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("expected ErrInvalidSide, got %v", err)
	}
}

func TestAddItemRejectsDuplicates(t *testing.T) {
	s := NewDraftService()
	item := cardItem("inv-1", 25, nil, models.OriginExistingInventory)

	if err := s.AddItem(testAccount, SideVendor, item); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := s.AddItem(testAccount, SideVendor, item); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("expected ErrDuplicateItem, got %v", err)
	}
	// Same id on the other side is still a duplicate: an item can only be
	// in the trade once.
	if err := s.AddItem(testAccount, SideCustomer, item); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("expected ErrDuplicateItem across sides, got %v", err)
	}
}

func TestAddItemRejectsNegativeMarketValue(t *testing.T) {
	s := NewDraftService()
	item := cardItem("bad", -1, nil, models.OriginManuallyAdded)
	if err := s.AddItem(testAccount, SideCustomer, item); !errors.Is(err, ErrNegativeMarketValue) {
		t.Errorf("expected ErrNegativeMarketValue, got %v", err)
	}
}

func TestAddItemSortsByKind(t *testing.T) {
	s := NewDraftService()
	if err := s.AddItem(testAccount, SideVendor, sealedItem("s1", 100, models.OriginManuallyAdded)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddItem(testAccount, SideVendor, cardItem("c1", 10, nil, models.OriginManuallyAdded)); err != nil {
		t.Fatal(err)
	}

	d := s.Snapshot(testAccount)
	if len(d.Vendor.Cards) != 1 || len(d.Vendor.Sealed) != 1 {
		t.Fatalf("items not routed by kind: %d cards, %d sealed", len(d.Vendor.Cards), len(d.Vendor.Sealed))
	}
}

func TestRemoveItem(t *testing.T) {
	s := NewDraftService()
	if err := s.AddItem(testAccount, SideCustomer, cardItem("c1", 10, nil, models.OriginManuallyAdded)); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveItem(testAccount, SideCustomer, "c1"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if d := s.Snapshot(testAccount); len(d.Customer.Items()) != 0 {
		t.Error("item still present after removal")
	}

	if err := s.RemoveItem(testAccount, SideCustomer, "c1"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSetCashMethod(t *testing.T) {
	s := NewDraftService()
	if err := s.SetCashMethod(testAccount, SideCustomer, models.CashMethodVenmo); err != nil {
		t.Fatalf("SetCashMethod failed: %v", err)
	}
	if d := s.Snapshot(testAccount); d.Customer.CashMethod != models.CashMethodVenmo {
		t.Errorf("cash method = %s, want venmo", d.Customer.CashMethod)
	}

	if err := s.SetCashMethod(testAccount, SideCustomer, "iou"); !errors.Is(err, ErrInvalidCashMethod) {
		t.Errorf("expected ErrInvalidCashMethod, got %v", err)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := NewDraftService()
	if err := s.AddItem(testAccount, SideVendor, cardItem("c1", 10, nil, models.OriginExistingInventory)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetCash(testAccount, SideVendor, 75); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCashMethod(testAccount, SideVendor, models.CashMethodPayPal); err != nil {
		t.Fatal(err)
	}
	s.SetOfferPercentage(testAccount, 55)

	s.Clear(testAccount)

	d := s.Snapshot(testAccount)
	if len(d.Vendor.Items()) != 0 || d.Vendor.Cash != 0 {
		t.Error("vendor side not reset")
	}
	if d.Vendor.CashMethod != models.CashMethodCash {
		t.Errorf("cash method = %s, want default", d.Vendor.CashMethod)
	}
	if d.OfferPercentage != models.DefaultOfferPercentage {
		t.Errorf("percentage = %f, want default", d.OfferPercentage)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := NewDraftService()
	if err := s.AddItem(testAccount, SideVendor, cardItem("c1", 10, nil, models.OriginManuallyAdded)); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot(testAccount)
	snap.Vendor.Cards[0].MarketValue = 9999
	snap.Vendor.Cash = 500

	fresh := s.Snapshot(testAccount)
	if fresh.Vendor.Cards[0].MarketValue != 10 || fresh.Vendor.Cash != 0 {
		t.Error("mutating a snapshot leaked into the live draft")
	}
}

func TestDraftsAreIndependentPerAccount(t *testing.T) {
	s := NewDraftService()
	if err := s.AddItem("acct-a", SideVendor, cardItem("c1", 10, nil, models.OriginManuallyAdded)); err != nil {
		t.Fatal(err)
	}

	if d := s.Snapshot("acct-b"); len(d.Vendor.Items()) != 0 {
		t.Error("draft state leaked across accounts")
	}
}
