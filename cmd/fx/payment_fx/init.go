package payment_fx

import (
	"log"

	"go.uber.org/fx"

	"rodbarber/internal/config"
	"rodbarber/internal/services"
)

var Module = fx.Provide(provideGateway)

func provideGateway(cfg *config.Config) services.PaymentGateway {
	gateway, err := services.NewMercadoPagoGateway(services.GatewayConfig{
		AccessToken: cfg.MPAccessToken,
		SuccessURL:  cfg.FrontendOrigin + "/pagamento-sucesso.html",
		FailureURL:  cfg.FrontendOrigin + "/pagamento-erro.html",
		PendingURL:  cfg.FrontendOrigin + "/pagamento-pendente.html",
	})
	if err != nil {
		// booking cannot run without a payment gateway
		log.Fatalf("Error initializing payment gateway: %v", err)
	}

	return gateway
}
