package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/shared/apperror"
	"railbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Searcher is the engine operation the HTTP layer needs
type Searcher interface {
	Search(ctx context.Context, from, to, date string) ([]catalog.Train, error)
}

// SearchRequest is bound from the query string of GET /trains/search
type SearchRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
	Date string `form:"date"`
}

// Validate enforces the caller side preconditions of a search
func (r *SearchRequest) Validate() error {
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)
	r.Date = strings.TrimSpace(r.Date)

	if r.From == "" || r.To == "" || r.Date == "" {
		return apperror.NewValidation("Please fill in all search fields")
	}
	if r.From == r.To {
		return apperror.NewValidation("Source and destination stations cannot be the same")
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return apperror.NewValidation("Travel date must be in YYYY-MM-DD format")
	}
	return nil
}

type Controller struct {
	engine Searcher
}

func NewController(engine Searcher) *Controller {
	return &Controller{engine: engine}
}

// SearchTrains handles GET /api/v1/trains/search
//
//	@Summary	Search trains between two stations
//	@Tags		search
//	@Produce	json
//	@Param		from	query		string	true	"Origin station code"
//	@Param		to		query		string	true	"Destination station code"
//	@Param		date	query		string	true	"Travel date (YYYY-MM-DD)"
//	@Success	200		{object}	response.StandardApiResponse{data=[]catalog.Train}
//	@Failure	400		{object}	response.StandardApiResponse
//	@Failure	502		{object}	response.StandardApiResponse
//	@Router		/trains/search [get]
func (ctrl *Controller) SearchTrains(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid search query", nil, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.RespondError(c, "Invalid search query", err)
		return
	}

	trains, err := ctrl.engine.Search(c.Request.Context(), req.From, req.To, req.Date)
	if err != nil {
		response.RespondError(c, "Failed to search trains. Please try again.", err)
		return
	}

	message := "Trains retrieved successfully"
	if len(trains) == 0 {
		message = "No trains found for the selected route and date"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, trains, nil)
}
