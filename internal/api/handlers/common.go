package handlers

import (
	"github.com/gin-gonic/gin"
)

// defaultAccountID is used when the client does not identify itself.
// Authentication is out of scope; single-vendor deployments never set the header.
const defaultAccountID = "default"

func accountID(c *gin.Context) string {
	if id := c.GetHeader("X-Account-ID"); id != "" {
		return id
	}
	return defaultAccountID
}
