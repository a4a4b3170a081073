package bookings

import (
	"net/http"

	"railbook/internal/shared/middleware"
	"railbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients retry POST /bookings safely
const IdempotencyKeyHeader = "Idempotency-Key"

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// BookTicket handles POST /api/v1/bookings
//
//	@Summary	Book a ticket
//	@Tags		bookings
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		Idempotency-Key	header		string				false	"Client generated retry key"
//	@Param		request			body		BookTicketRequest	true	"Booking request"
//	@Success	201				{object}	response.StandardApiResponse{data=BookTicketResponse}
//	@Success	200				{object}	response.StandardApiResponse{data=BookTicketResponse}
//	@Failure	400				{object}	response.StandardApiResponse
//	@Failure	401				{object}	response.StandardApiResponse
//	@Router		/bookings [post]
func (ctrl *Controller) BookTicket(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, created, err := ctrl.service.BookTicket(c.Request.Context(), req.toBookRequest(userID, c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		response.RespondError(c, "Booking failed. Please try again.", err)
		return
	}

	data := BookTicketResponse{
		PNRNumber:   booking.PNR,
		Status:      booking.Status,
		TotalAmount: booking.TotalAmount,
		Booking:     booking,
	}
	if !created {
		response.RespondJSON(c, "success", http.StatusOK, "Booking already recorded for this request", data, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Booking successful!", data, nil)
}

// GetUserBookings handles GET /api/v1/bookings
//
//	@Summary	List the caller's bookings
//	@Tags		bookings
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.StandardApiResponse{data=[]Booking}
//	@Failure	401	{object}	response.StandardApiResponse
//	@Router		/bookings [get]
func (ctrl *Controller) GetUserBookings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookings := ctrl.service.GetUserBookings(c.Request.Context(), userID)
	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// GetBooking handles GET /api/v1/bookings/:pnr
//
//	@Summary	Get one of the caller's bookings by PNR
//	@Tags		bookings
//	@Produce	json
//	@Security	BearerAuth
//	@Param		pnr	path		string	true	"PNR number"
//	@Success	200	{object}	response.StandardApiResponse{data=Booking}
//	@Failure	404	{object}	response.StandardApiResponse
//	@Router		/bookings/{pnr} [get]
func (ctrl *Controller) GetBooking(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), c.Param("pnr"), userID)
	if err != nil {
		response.RespondError(c, "Failed to load booking", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// CancelTicket handles POST /api/v1/bookings/:pnr/cancel
//
//	@Summary	Cancel a ticket
//	@Tags		bookings
//	@Produce	json
//	@Security	BearerAuth
//	@Param		pnr	path		string	true	"PNR number"
//	@Success	200	{object}	response.StandardApiResponse{data=CancelTicketResponse}
//	@Failure	404	{object}	response.StandardApiResponse
//	@Router		/bookings/{pnr}/cancel [post]
func (ctrl *Controller) CancelTicket(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	pnr := c.Param("pnr")
	message, err := ctrl.service.CancelTicket(c.Request.Context(), pnr, userID)
	if err != nil {
		response.RespondError(c, "Failed to cancel ticket", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, message, CancelTicketResponse{PNRNumber: pnr, Status: StatusCancelled}, nil)
}
