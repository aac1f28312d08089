package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rodbarber/internal/models/request_models"
	"rodbarber/internal/models/response_models"
	"rodbarber/internal/services"
	"rodbarber/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// CreateBooking godoc
// @Summary Book a slot and create the payment charges
// @Accept json
// @Produce json
// @Param request body request_models.BookingRequest true "Booking payload"
// @Success 201 {object} response_models.BookingCreatedResponse
// @Router /agendar [post]
func (b *BookingController) CreateBooking(c *gin.Context) {
	var req request_models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Preencha todos os campos obrigatórios")
		return
	}

	resp, err := b.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// OccupiedTimes returns the taken time slots for a date as a bare array.
func (b *BookingController) OccupiedTimes(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, "Data é obrigatória")
		return
	}

	times, err := b.bookingService.OccupiedTimes(c.Request.Context(), date)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, times)
}

// PaymentStatus polls the gateway for a charge and reconciles local state.
// Gateway failures surface as a generic error status, never a partial one.
func (b *BookingController) PaymentStatus(c *gin.Context) {
	status, err := b.bookingService.CheckPaymentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response_models.PaymentStatusResponse{Status: "error"})
		return
	}

	c.JSON(http.StatusOK, response_models.PaymentStatusResponse{Status: status})
}

func (b *BookingController) ListAll(c *gin.Context) {
	appointments, err := b.bookingService.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (b *BookingController) MyAppointments(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.RespondError(c, http.StatusBadRequest, "E-mail obrigatório")
		return
	}

	appointments, err := b.bookingService.ListByEmail(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (b *BookingController) Delete(c *gin.Context) {
	if err := b.bookingService.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Agendamento removido!")
}
