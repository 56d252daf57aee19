package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-vendor/internal/models"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

type CatalogHandler struct {
	catalog *services.CatalogService
	worker  *services.PriceRefreshWorker
}

func NewCatalogHandler(catalog *services.CatalogService, worker *services.PriceRefreshWorker) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		worker:  worker,
	}
}

// Search looks up cards by name or set+number. A failing catalog call is not
// fatal: it logs and comes back as an empty result set.
func (h *CatalogHandler) Search(c *gin.Context) {
	name := c.Query("name")
	setCode := c.Query("set")
	number := c.Query("number")

	if name == "" && (setCode == "" || number == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name or set+number is required"})
		return
	}

	items, err := h.catalog.Search(c.Request.Context(), name, setCode, number)
	if err != nil {
		log.Printf("Catalog handler: search failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"results": []models.TradeItem{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": items})
}

// RefreshStatus reports price refresh progress and catalog quota.
func (h *CatalogHandler) RefreshStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.worker.Status())
}
