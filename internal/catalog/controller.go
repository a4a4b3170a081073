package catalog

import (
	"net/http"
	"strconv"

	"railbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetStations handles GET /api/v1/stations
//
//	@Summary	List stations
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	response.StandardApiResponse{data=[]Station}
//	@Router		/stations [get]
func (ctrl *Controller) GetStations(c *gin.Context) {
	stations := ctrl.service.GetStations(c.Request.Context())
	response.RespondJSON(c, "success", http.StatusOK, "Stations retrieved successfully", stations, nil)
}

// GetTrainDetails handles GET /api/v1/trains/:id
//
//	@Summary	Train details with stops
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		int	true	"Train ID"
//	@Success	200	{object}	response.StandardApiResponse{data=Train}
//	@Failure	400	{object}	response.StandardApiResponse
//	@Failure	404	{object}	response.StandardApiResponse
//	@Router		/trains/{id} [get]
func (ctrl *Controller) GetTrainDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid train ID", nil, nil)
		return
	}

	train, err := ctrl.service.GetTrainDetails(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, "Failed to retrieve train details", err)
		return
	}
	if train == nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "Train not found", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Train details retrieved successfully", train, nil)
}
