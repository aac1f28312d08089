package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"rodbarber/cmd/fx/account_fx"
	"rodbarber/cmd/fx/booking_fx"
	"rodbarber/cmd/fx/db_fx"
	"rodbarber/cmd/fx/mail_fx"
	"rodbarber/cmd/fx/payment_fx"
	"rodbarber/internal/api/controllers"
	"rodbarber/internal/config"
	"rodbarber/internal/infra"
	"rodbarber/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.Provide(config.Load),
		db_fx.Module,
		mail_fx.Module,
		payment_fx.Module,
		account_fx.Module,
		booking_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.ListenPort)
				if err := engine.Run(":" + cfg.ListenPort); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	accountController *controllers.AccountController,
	bookingController *controllers.BookingController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(5, 10)))

	RegisterRoutes(r, cfg, accountController, bookingController)

	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config,
	accountController *controllers.AccountController,
	bookingController *controllers.BookingController) {

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Back-end online!")
	})

	r.POST("/cadastro", accountController.Register)
	r.POST("/login", accountController.Login)
	r.POST("/esqueci-senha", accountController.ForgotPassword)
	r.POST("/resetar-senha", accountController.ResetPassword)
	r.GET("/perfil", middleware.JWTAuthMiddleware(cfg.JWTSecret), accountController.Profile)

	r.POST("/agendar", bookingController.CreateBooking)
	r.GET("/agendamentos", bookingController.ListAll)
	r.GET("/agendamentos/ocupados", bookingController.OccupiedTimes)
	r.GET("/meus-agendamentos", bookingController.MyAppointments)
	r.GET("/status-pagamento/:id", bookingController.PaymentStatus)
	r.DELETE("/agendamentos/:id", bookingController.Delete)
}
