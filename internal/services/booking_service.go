package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
	"rodbarber/internal/models/request_models"
	"rodbarber/internal/models/response_models"
	"rodbarber/internal/repositories"
	"rodbarber/pkg/utils"
)

// gateway status that marks a charge as settled
const gatewayStatusApproved = "approved"

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, request request_models.BookingRequest) (*response_models.BookingCreatedResponse, error)
	OccupiedTimes(ctx context.Context, date string) ([]string, error)
	CheckPaymentStatus(ctx context.Context, paymentID string) (string, error)
	ListAll(ctx context.Context) ([]db_models.Appointment, error)
	ListByEmail(ctx context.Context, email string) ([]db_models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type BookingService struct {
	appointmentRepo repositories.AppointmentRepository
	gateway         PaymentGateway
	mailService     IMailService
}

func NewBookingService(appointmentRepo repositories.AppointmentRepository, gateway PaymentGateway, mailService IMailService) BookingServiceInterface {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		mailService:     mailService,
	}
}

// CreateBooking runs the booking workflow: slot pre-check, charge creation,
// persist, then asynchronous notification fan-out. The unique (date, time)
// index is the authoritative conflict signal; the pre-check only spares the
// gateway a round trip for slots already known to be taken.
func (b *BookingService) CreateBooking(ctx context.Context, request request_models.BookingRequest) (*response_models.BookingCreatedResponse, error) {
	if request.Price <= 0 {
		return nil, utils.ErrMissingFields
	}

	existing, err := b.appointmentRepo.FindBySlot(ctx, request.Date, request.Time)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrSlotTaken
	}

	description := request.Service + " - " + request.Date + " " + request.Time

	// No appointment is ever persisted without both charge artifacts.
	pix, err := b.gateway.CreatePixCharge(ctx, request.Price, description, request.Email, request.Name)
	if err != nil {
		log.Printf("PIX charge creation failed: %v", err)
		return nil, utils.ErrPaymentGateway
	}

	checkout, err := b.gateway.CreateCardCheckout(ctx, request.Price, description, request.Email, request.Name)
	if err != nil {
		log.Printf("Card checkout creation failed: %v", err)
		return nil, utils.ErrPaymentGateway
	}

	metadata, err := json.Marshal(map[string]string{
		"gateway":      "mercadopago",
		"pix_id":       pix.ID,
		"checkout_url": checkout.CheckoutURL,
	})
	if err != nil {
		return nil, err
	}

	paymentID := pix.ID
	appointment := &db_models.Appointment{
		CustomerName:    request.Name,
		CustomerEmail:   request.Email,
		Date:            request.Date,
		Time:            request.Time,
		Service:         request.Service,
		Price:           request.Price,
		PaymentID:       &paymentID,
		PaymentStatus:   db_models.PaymentPending,
		PixCode:         pix.QRCode,
		PixQrImage:      pix.QRCodeBase64,
		CardCheckoutURL: checkout.CheckoutURL,
		Metadata:        metadata,
	}

	if err := b.appointmentRepo.Insert(ctx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrSlotTaken
		}
		return nil, utils.ErrDatabaseError
	}

	// fire-and-forget: neither email blocks or fails the booking
	go func(req request_models.BookingRequest) {
		if err := b.mailService.SendBookingConfirmation(req.Email, req.Name, req.Date, req.Time, req.Service); err != nil {
			log.Printf("Failed to send booking confirmation to %s: %v", req.Email, err)
		}
	}(request)
	go func(req request_models.BookingRequest) {
		if err := b.mailService.SendOwnerAlert(req.Name, req.Email, req.Date, req.Time, req.Service); err != nil {
			log.Printf("Failed to send owner alert: %v", err)
		}
	}(request)

	return &response_models.BookingCreatedResponse{
		Message:         "Agendamento realizado com sucesso!",
		PixCode:         pix.QRCode,
		QrImageBase64:   pix.QRCodeBase64,
		PaymentID:       pix.ID,
		CardCheckoutURL: checkout.CheckoutURL,
	}, nil
}

func (b *BookingService) OccupiedTimes(ctx context.Context, date string) ([]string, error) {
	times, err := b.appointmentRepo.OccupiedTimes(ctx, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if times == nil {
		times = []string{}
	}
	return times, nil
}

// CheckPaymentStatus polls the gateway and reconciles local state. The
// "not already approved" guard keeps repeated polling from dispatching
// duplicate confirmation emails.
func (b *BookingService) CheckPaymentStatus(ctx context.Context, paymentID string) (string, error) {
	status, err := b.gateway.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		log.Printf("Payment status lookup failed for %s: %v", paymentID, err)
		return "", utils.ErrPaymentGateway
	}

	if status == gatewayStatusApproved {
		appointment, err := b.appointmentRepo.FindByPaymentID(ctx, paymentID)
		if err != nil {
			log.Printf("Appointment lookup failed for payment %s: %v", paymentID, err)
			return status, nil
		}
		if appointment != nil && appointment.PaymentStatus != db_models.PaymentApproved {
			if err := b.appointmentRepo.UpdateStatusByPaymentID(ctx, paymentID, db_models.PaymentApproved); err != nil {
				log.Printf("Failed to update payment status for %s: %v", paymentID, err)
				return status, nil
			}
			if err := b.mailService.SendPaymentConfirmed(appointment.CustomerEmail, appointment.CustomerName, appointment.Date, appointment.Time); err != nil {
				log.Printf("Failed to send payment confirmation to %s: %v", appointment.CustomerEmail, err)
			}
		}
	}

	return status, nil
}

func (b *BookingService) ListAll(ctx context.Context) ([]db_models.Appointment, error) {
	appointments, err := b.appointmentRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if appointments == nil {
		appointments = []db_models.Appointment{}
	}
	return appointments, nil
}

func (b *BookingService) ListByEmail(ctx context.Context, email string) ([]db_models.Appointment, error) {
	appointments, err := b.appointmentRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if appointments == nil {
		appointments = []db_models.Appointment{}
	}
	return appointments, nil
}

func (b *BookingService) DeleteAppointment(ctx context.Context, id string) error {
	deleted, err := b.appointmentRepo.DeleteByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrAppointmentNotFound
	}
	return nil
}
