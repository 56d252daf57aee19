package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-vendor/internal/services"
)

type TradeHandler struct {
	engine *services.SettlementEngine
}

func NewTradeHandler(engine *services.SettlementEngine) *TradeHandler {
	return &TradeHandler{engine: engine}
}

// Settle commits the current draft. Validation failures come back as 400
// with nothing mutated; a settlement that hit per-item store failures still
// succeeds and reports them in the warnings list.
func (h *TradeHandler) Settle(c *gin.Context) {
	result, err := h.engine.Settle(accountID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTrade), errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// History lists settled trades, newest first.
func (h *TradeHandler) History(c *gin.Context) {
	records, err := h.engine.History(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
