package booking_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"rodbarber/internal/api/controllers"
	"rodbarber/internal/repositories"
	"rodbarber/internal/services"
)

var Module = fx.Provide(
	provideAppointmentRepo, provideBookingService, provideBookingController)

func provideAppointmentRepo(db *gorm.DB) repositories.AppointmentRepository {
	return repositories.NewAppointmentRepository(db)
}

func provideBookingService(appointmentRepo repositories.AppointmentRepository, gateway services.PaymentGateway, mailService services.IMailService) services.BookingServiceInterface {
	return services.NewBookingService(appointmentRepo, gateway, mailService)
}

func provideBookingController(bookingService services.BookingServiceInterface) *controllers.BookingController {
	return controllers.NewBookingController(bookingService)
}
