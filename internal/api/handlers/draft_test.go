package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/tcg-vendor/internal/models"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

func newDraftRouter(t *testing.T) (*gin.Engine, *services.InventoryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
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

	sampler := services.NewValuationSampler(db)
	accounts := services.NewAccountService(db, sampler)
	inventory := services.NewInventoryService(db, accounts)
	handler := NewDraftHandler(services.NewDraftService(), inventory)

	router := gin.New()
	router.POST("/api/draft/items", handler.AddItem)
	return router, inventory
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemRejectsInventoryOnCustomerSide(t *testing.T) {
	router, inventory := newDraftRouter(t)

	entry, err := inventory.Add(defaultAccountID, models.TradeItem{
		Kind: models.ItemKindCard, Name: "Snorlax", MarketValue: 12,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Owned inventory belongs on the vendor side only; the customer cannot
	// offer the vendor its own entry back.
	w := postJSON(t, router, "/api/draft/items",
		`{"side":"customer","inventory_id":"`+entry.ID+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("customer-side inventory add returned %d, want 400", w.Code)
	}

	w = postJSON(t, router, "/api/draft/items",
		`{"side":"vendor","inventory_id":"`+entry.ID+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("vendor-side inventory add returned %d, want 200: %s", w.Code, w.Body.String())
	}
}
