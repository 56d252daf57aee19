package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-vendor/internal/models"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

type DashboardHandler struct {
	accounts *services.AccountService
	sampler  *services.ValuationSampler
}

func NewDashboardHandler(accounts *services.AccountService, sampler *services.ValuationSampler) *DashboardHandler {
	return &DashboardHandler{
		accounts: accounts,
		sampler:  sampler,
	}
}

// Account returns the vendor's balances.
func (h *DashboardHandler) Account(c *gin.Context) {
	account, err := h.accounts.Get(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}

// ValuationHistory returns the bounded value-over-time log, oldest first.
// A brand-new account gets a single synthetic sample of its current worth so
// the chart always has something to draw.
func (h *DashboardHandler) ValuationHistory(c *gin.Context) {
	account := accountID(c)

	samples, err := h.sampler.Read(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(samples) == 0 {
		acct, err := h.accounts.Get(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		inventoryValue, err := h.accounts.InventoryValue(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		samples = []models.ValuationSample{{
			AccountID:      account,
			Timestamp:      time.Now(),
			InventoryValue: inventoryValue,
			CashValue:      float64(acct.CashOnHand),
		}}
	}

	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

type adjustFundsRequest struct {
	Delta float64 `json:"delta"`
}

// AdjustFunds applies a manual cash delta.
func (h *DashboardHandler) AdjustFunds(c *gin.Context) {
	var req adjustFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.AdjustFunds(accountID(c), req.Delta)
	if err != nil {
		if errors.Is(err, services.ErrNegativeBalance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}

// ClearPendingSales folds pending card sales into cash on hand.
func (h *DashboardHandler) ClearPendingSales(c *gin.Context) {
	account, err := h.accounts.ClearPendingSales(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}
