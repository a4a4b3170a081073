package fares

import (
	"github.com/gin-gonic/gin"
)

// SetupFareRoutes configures the fare quote route
func SetupFareRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/fares", controller.Quote) // GET /api/v1/fares?class=&passengers=&train_id=
}
