package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-vendor/internal/services"
)

type ShowHandler struct {
	shows *services.ShowService
}

func NewShowHandler(shows *services.ShowService) *ShowHandler {
	return &ShowHandler{shows: shows}
}

type startShowRequest struct {
	Name string `json:"name" binding:"required"`
}

// Start opens a show session; a second active session is rejected with 409.
func (h *ShowHandler) Start(c *gin.Context) {
	var req startShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.shows.Start(accountID(c), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrShowAlreadyActive) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *ShowHandler) End(c *gin.Context) {
	session, err := h.shows.End(accountID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShowNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrShowAlreadyEnded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// Active returns the open session, or null when there is none.
func (h *ShowHandler) Active(c *gin.Context) {
	session, err := h.shows.Active(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *ShowHandler) List(c *gin.Context) {
	sessions, err := h.shows.List(accountID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}
