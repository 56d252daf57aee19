package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codyseavey/tcg-vendor/internal/models"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

type DraftHandler struct {
	drafts    *services.DraftService
	inventory *services.InventoryService
}

func NewDraftHandler(drafts *services.DraftService, inventory *services.InventoryService) *DraftHandler {
	return &DraftHandler{
		drafts:    drafts,
		inventory: inventory,
	}
}

// GetDraft returns the current draft plus its repriced totals.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	account := accountID(c)
	draft := h.drafts.Snapshot(account)
	totals := services.ComputeTotals(&draft)

	c.JSON(http.StatusOK, gin.H{
		"draft":  draft,
		"totals": totals,
	})
}

type addItemRequest struct {
	Side        services.TradeSideID `json:"side" binding:"required"`
	InventoryID string               `json:"inventory_id"`
	Item        *models.TradeItem    `json:"item"`
}

// AddItem puts an item on one side of the draft. Vendor items usually come
// from inventory by id; customer items arrive inline from manual entry or a
// catalog pick.
func (h *DraftHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := accountID(c)

	var item models.TradeItem
	switch {
	case req.InventoryID != "":
		// Inventory entries are what the vendor owns; offering one on the
		// customer side would collide with its still-existing entry when the
		// trade settles.
		if req.Side != services.SideVendor {
			c.JSON(http.StatusBadRequest, gin.H{"error": "inventory items can only be added to the vendor side"})
			return
		}
		entry, err := h.inventory.Get(account, req.InventoryID)
		if err != nil {
			if errors.Is(err, services.ErrEntryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "inventory entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		item = entry.ToTradeItem()
	case req.Item != nil:
		item = *req.Item
		if item.Origin == "" {
			item.Origin = models.OriginManuallyAdded
		}
		if item.Condition == "" {
			item.Condition = models.ConditionNearMint
		}
		// Inline items describe a physical copy, not a catalog printing,
		// so each add gets its own identity.
		if item.Origin != models.OriginExistingInventory {
			item.ID = uuid.New().String()
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either inventory_id or item is required"})
		return
	}

	if err := h.drafts.AddItem(account, req.Side, item); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrDuplicateItem) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	draft := h.drafts.Snapshot(account)
	c.JSON(http.StatusOK, gin.H{
		"item":   item,
		"totals": services.ComputeTotals(&draft),
	})
}

// RemoveItem drops an item from a side of the draft.
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	account := accountID(c)
	side := services.TradeSideID(c.Param("side"))
	itemID := c.Param("id")

	if err := h.drafts.RemoveItem(account, side, itemID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	draft := h.drafts.Snapshot(account)
	c.JSON(http.StatusOK, gin.H{"totals": services.ComputeTotals(&draft)})
}

type setCashRequest struct {
	Amount float64 `json:"amount"`
}

// SetCash stores a side's cash amount; fractional input is floored.
func (h *DraftHandler) SetCash(c *gin.Context) {
	var req setCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := accountID(c)
	side := services.TradeSideID(c.Param("side"))

	stored, err := h.drafts.SetCash(account, side, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := h.drafts.Snapshot(account)
	c.JSON(http.StatusOK, gin.H{
		"cash":   stored,
		"totals": services.ComputeTotals(&draft),
	})
}

type setCashMethodRequest struct {
	Method models.CashMethod `json:"method" binding:"required"`
}

func (h *DraftHandler) SetCashMethod(c *gin.Context) {
	var req setCashMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := accountID(c)
	side := services.TradeSideID(c.Param("side"))

	if err := h.drafts.SetCashMethod(account, side, req.Method); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"method": req.Method})
}

type setPercentageRequest struct {
	Value float64 `json:"value"`
}

// SetOfferPercentage clamps and stores the offer percentage, returning the
// value actually stored.
func (h *DraftHandler) SetOfferPercentage(c *gin.Context) {
	var req setPercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := accountID(c)
	stored := h.drafts.SetOfferPercentage(account, req.Value)

	draft := h.drafts.Snapshot(account)
	c.JSON(http.StatusOK, gin.H{
		"offer_percentage": stored,
		"totals":           services.ComputeTotals(&draft),
	})
}

// ClearDraft discards the in-progress trade.
func (h *DraftHandler) ClearDraft(c *gin.Context) {
	h.drafts.Clear(accountID(c))
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
