package handlers

import (
	"net/http"

	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Booking  *BookingHandler
	Business *BusinessHandler
	User     *UserHandler
}

// Health handles GET /health with the last health check of the backing stores.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "health": status})
}
