package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures station and train detail routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/stations", controller.GetStations)       // GET /api/v1/stations
	rg.GET("/trains/:id", controller.GetTrainDetails) // GET /api/v1/trains/:id
}
