package fares

import (
	"net/http"

	"railbook/internal/catalog"
	"railbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// TrainLookup resolves a train by id
type TrainLookup interface {
	Lookup(id int) (*catalog.Train, bool)
}

// QuoteRequest is bound from the query string of GET /fares
type QuoteRequest struct {
	Class      string `form:"class"`
	Passengers int    `form:"passengers,default=1" binding:"min=1,max=6"`
	TrainID    int    `form:"train_id" binding:"omitempty,min=1"`
}

// QuoteResponse prices a prospective booking and previews its status
type QuoteResponse struct {
	BookingClass     string         `json:"booking_class"`
	FarePerPassenger int            `json:"fare_per_passenger"`
	Passengers       int            `json:"passengers"`
	TotalAmount      int            `json:"total_amount"`
	Status           Allocation     `json:"status,omitempty"`
	Train            *catalog.Train `json:"train,omitempty"`
	Classes          []string       `json:"classes,omitempty"`
}

type Controller struct {
	trains    TrainLookup
	inventory *Inventory
}

// NewController creates the quote handler. inventory may be nil when seat
// tracking is off.
func NewController(trains TrainLookup, inventory *Inventory) *Controller {
	return &Controller{trains: trains, inventory: inventory}
}

// Quote handles GET /api/v1/fares
//
//	@Summary	Fare quote and status preview
//	@Tags		fares
//	@Produce	json
//	@Param		class		query		string	false	"Booking class"
//	@Param		passengers	query		int		false	"Passenger count (1-6)"
//	@Param		train_id	query		int		false	"Train ID"
//	@Success	200			{object}	response.StandardApiResponse{data=QuoteResponse}
//	@Failure	400			{object}	response.StandardApiResponse
//	@Router		/fares [get]
func (ctrl *Controller) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid fare query", nil, err.Error())
		return
	}

	quote := QuoteResponse{
		BookingClass:     req.Class,
		FarePerPassenger: BaseFare(req.Class),
		Passengers:       req.Passengers,
		TotalAmount:      ComputeFare(req.Class, req.Passengers),
	}

	if req.TrainID > 0 {
		train, ok := ctrl.trains.Lookup(req.TrainID)
		if ok {
			if ctrl.inventory != nil {
				ctrl.inventory.Overlay(train)
			}
			quote.Train = train
			quote.Classes = ClassesFor(train.Type)
		}
		quote.Status = DecideStatus(train, req.Passengers)
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fare computed successfully", quote, nil)
}
