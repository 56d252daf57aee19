package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-vendor/internal/models"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) List(c *gin.Context) {
	entries, err := h.inventory.List(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *InventoryHandler) Add(c *gin.Context) {
	var item models.TradeItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if item.Kind != models.ItemKindCard && item.Kind != models.ItemKindSealed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be 'card' or 'sealed'"})
		return
	}

	entry, err := h.inventory.Add(accountID(c), item)
	if err != nil {
		if errors.Is(err, services.ErrNegativeMarketValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	err := h.inventory.Delete(accountID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.inventory.Stats(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
