package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
	"rodbarber/internal/models/request_models"
	"rodbarber/internal/models/response_models"
	"rodbarber/internal/repositories"
	"rodbarber/pkg/utils"
)

const resetTokenTTL = time.Hour

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	GetProfile(ctx context.Context, email string) (*response_models.UserProfile, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	jwtSecret   string
}

func NewAccountService(accountRepo repositories.AccountRepository, mailService IMailService, jwtSecret string) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		jwtSecret:   jwtSecret,
	}
}

// normalizeEmail makes account emails case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	email := normalizeEmail(request.Email)

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		// the unique index catches registrations racing past the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrEmailAlreadyExists
		}
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(a.jwtSecret, account.ID, account.Name, account.Email)
	if err != nil {
		log.Printf("Token generation failed for %s: %v", account.Email, err)
		token = ""
	}

	return &response_models.LoginResponse{
		Message: "Login realizado com sucesso!",
		User: response_models.UserProfile{
			Name:  account.Name,
			Email: account.Email,
		},
		Token: token,
	}, nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.SetResetToken(ctx, email, token, time.Now().Add(resetTokenTTL)); err != nil {
		return utils.ErrDatabaseError
	}

	// best-effort: failure to deliver the email never fails the request
	go func(to, token string) {
		if err := a.mailService.SendMailToResetPassword(to, token); err != nil {
			log.Printf("Failed to send reset email to %s: %v", to, err)
		}
	}(email, token)

	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	account, err := a.accountRepo.FindByValidResetToken(ctx, request.Token, time.Now())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrInvalidOrExpiredToken
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.ConsumeResetToken(ctx, account.Email, hashed); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, email string) (*response_models.UserProfile, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.UserProfile{
		Name:  account.Name,
		Email: account.Email,
	}, nil
}
