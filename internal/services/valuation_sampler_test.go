package services

import (
	"testing"

	"github.com/codyseavey/tcg-vendor/internal/models"
)

func TestAppendBoundsLogAt48(t *testing.T) {
	db := newTestDB(t)
	sampler := NewValuationSampler(db)

	// Append 50 samples with increasing values so we can identify which
	// survived eviction.
	for i := 0; i < 50; i++ {
		if err := sampler.Append(testAccount, float64(i), 0); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	samples, err := sampler.Read(testAccount)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != models.ValuationLogCap {
		t.Fatalf("log holds %d samples, want %d", len(samples), models.ValuationLogCap)
	}

	// The two oldest were evicted: survivors are appends 2..49, oldest first.
	if samples[0].InventoryValue != 2 {
		t.Errorf("oldest surviving sample value = %f, want 2", samples[0].InventoryValue)
	}
	if samples[len(samples)-1].InventoryValue != 49 {
		t.Errorf("newest sample value = %f, want 49", samples[len(samples)-1].InventoryValue)
	}
}

func TestReadOrdersAscending(t *testing.T) {
	db := newTestDB(t)
	sampler := NewValuationSampler(db)

	for i := 0; i < 5; i++ {
		if err := sampler.Append(testAccount, float64(i*10), float64(i)); err != nil {
			t.Fatal(err)
		}
	}

	samples, err := sampler.Read(testAccount)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			t.Error("samples not ordered oldest first")
		}
	}
	if samples[0].InventoryValue != 0 || samples[4].InventoryValue != 40 {
		t.Error("sample order does not match append order")
	}
}

func TestReadEmptyLog(t *testing.T) {
	db := newTestDB(t)
	sampler := NewValuationSampler(db)

	samples, err := sampler.Read(testAccount)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 0 {
		t.Errorf("empty log returned %d samples", len(samples))
	}
}

func TestTrimIsPerAccount(t *testing.T) {
	db := newTestDB(t)
	sampler := NewValuationSampler(db)

	for i := 0; i < models.ValuationLogCap+5; i++ {
		if err := sampler.Append("acct-a", float64(i), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := sampler.Append("acct-b", 1, 1); err != nil {
		t.Fatal(err)
	}

	a, _ := sampler.Read("acct-a")
	b, _ := sampler.Read("acct-b")
	if len(a) != models.ValuationLogCap {
		t.Errorf("acct-a holds %d samples, want %d", len(a), models.ValuationLogCap)
	}
	if len(b) != 1 {
		t.Errorf("acct-b holds %d samples, want 1 (trim leaked across accounts)", len(b))
	}
}
