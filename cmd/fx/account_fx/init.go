package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"rodbarber/internal/api/controllers"
	"rodbarber/internal/config"
	"rodbarber/internal/repositories"
	"rodbarber/internal/services"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, provideAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(cfg *config.Config, accountRepo repositories.AccountRepository, mailService services.IMailService) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, cfg.JWTSecret)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
