package services

import (
	"errors"
	"testing"
)

func TestStartRejectsSecondActiveSession(t *testing.T) {
	db := newTestDB(t)
	shows := NewShowService(db)

	first, err := shows.Start(testAccount, "Friday Market")
	if err != nil {
		t.Fatalf("first Start failed: %v", err)
	}

	if _, err := shows.Start(testAccount, "Saturday Market"); !errors.Is(err, ErrShowAlreadyActive) {
		t.Fatalf("expected ErrShowAlreadyActive, got %v", err)
	}

	// Ending the first frees the slot.
	if _, err := shows.End(testAccount, first.ID); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if _, err := shows.Start(testAccount, "Saturday Market"); err != nil {
		t.Errorf("Start after End failed: %v", err)
	}
}

func TestActiveSessionPerAccount(t *testing.T) {
	db := newTestDB(t)
	shows := NewShowService(db)

	if _, err := shows.Start("acct-a", "Show A"); err != nil {
		t.Fatal(err)
	}

	// Another account is unaffected.
	if _, err := shows.Start("acct-b", "Show B"); err != nil {
		t.Errorf("Start for a different account failed: %v", err)
	}

	active, err := shows.Active("acct-a")
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.Name != "Show A" {
		t.Errorf("Active(acct-a) = %+v, want Show A", active)
	}
}

func TestActiveReturnsNilWhenNoneOpen(t *testing.T) {
	db := newTestDB(t)
	shows := NewShowService(db)

	active, err := shows.Active(testAccount)
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Errorf("Active = %+v, want nil", active)
	}
}

func TestEndErrors(t *testing.T) {
	db := newTestDB(t)
	shows := NewShowService(db)

	if _, err := shows.End(testAccount, "nope"); !errors.Is(err, ErrShowNotFound) {
		t.Errorf("expected ErrShowNotFound, got %v", err)
	}

	session, err := shows.Start(testAccount, "One Day Show")
	if err != nil {
		t.Fatal(err)
	}
	ended, err := shows.End(testAccount, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ended.EndTime == nil {
		t.Error("EndTime not set")
	}

	if _, err := shows.End(testAccount, session.ID); !errors.Is(err, ErrShowAlreadyEnded) {
		t.Errorf("expected ErrShowAlreadyEnded, got %v", err)
	}
}
