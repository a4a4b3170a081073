package search

import (
	"github.com/gin-gonic/gin"
)

// SetupSearchRoutes configures the train search route
func SetupSearchRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/trains/search", controller.SearchTrains) // GET /api/v1/trains/search?from=&to=&date=
}
