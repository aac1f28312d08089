package mail_fx

import (
	"go.uber.org/fx"

	"rodbarber/internal/config"
	"rodbarber/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config) services.IMailService {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort, // 587 for STARTTLS; 465 with UseSSL for SMTPS
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   "Barbearia do Rod",
		UseSSL:     cfg.SMTPPort == 465,
		RequireTLS: true,

		OwnerEmail: cfg.OwnerEmail,
		AppName:    "Barbearia do Rod",
		AppBaseURL: cfg.FrontendOrigin,
	}

	return services.NewSMTPMailService(smtpCfg)
}
