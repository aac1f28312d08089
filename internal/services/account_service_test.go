package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
	"rodbarber/internal/models/request_models"
	"rodbarber/internal/repositories"
	"rodbarber/internal/services"
	"rodbarber/pkg/utils"
)

type fakeAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*db_models.Account)}
}

func (f *fakeAccountRepo) Insert(_ context.Context, a *db_models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[a.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	f.byEmail[a.Email] = &cp
	return nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byEmail[email]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) SetResetToken(_ context.Context, email, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byEmail[email]
	if !ok {
		return errors.New("no such account")
	}
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeAccountRepo) FindByValidResetToken(_ context.Context, token string, now time.Time) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byEmail {
		if a.ResetToken != nil && *a.ResetToken == token && a.ResetTokenExpiry != nil && a.ResetTokenExpiry.After(now) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ConsumeResetToken(_ context.Context, email, newPasswordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byEmail[email]
	if !ok {
		return errors.New("no such account")
	}
	a.PasswordHash = newPasswordHash
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	return nil
}

// shiftTokenExpiry rewinds a stored token's expiry to simulate elapsed time.
func (f *fakeAccountRepo) shiftTokenExpiry(email string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byEmail[email]; ok && a.ResetTokenExpiry != nil {
		shifted := a.ResetTokenExpiry.Add(d)
		a.ResetTokenExpiry = &shifted
	}
}

var _ repositories.AccountRepository = (*fakeAccountRepo)(nil)

const testJWTSecret = "test-secret"

func signUp() request_models.SignUpRequest {
	return request_models.SignUpRequest{
		Name:     "Davi Zaia",
		Email:    "davi@example.com",
		Password: "senha123",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := services.NewAccountService(repo, &fakeMailer{}, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "davi@example.com",
		Password: "senha123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.Name != "Davi Zaia" || resp.User.Email != "davi@example.com" {
		t.Fatalf("wrong profile: %+v", resp.User)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}

	// the token is signed with the secret the service was built with
	claims, err := utils.ValidateToken(testJWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "davi@example.com" {
		t.Fatalf("wrong token claims: %+v", claims)
	}

	// the stored hash never equals the plain password
	stored, _ := repo.FindByEmail(context.Background(), "davi@example.com")
	if stored.PasswordHash == "senha123" {
		t.Fatal("password stored in plaintext")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := services.NewAccountService(repo, &fakeMailer{}, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "davi@example.com",
		Password: "errada",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := services.NewAccountService(newFakeAccountRepo(), &fakeMailer{}, testJWTSecret)

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "ninguem@example.com",
		Password: "senha123",
	})
	if !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := services.NewAccountService(repo, &fakeMailer{}, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := svc.CreateAccount(context.Background(), signUp()); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterEmailCaseInsensitive(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := services.NewAccountService(repo, &fakeMailer{}, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	upper := signUp()
	upper.Email = "DAVI@Example.com"
	if err := svc.CreateAccount(context.Background(), upper); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists for case variant, got %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := services.NewAccountService(newFakeAccountRepo(), &fakeMailer{}, testJWTSecret)

	err := svc.ForgotPassword(context.Background(), "ninguem@example.com")
	if !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	repo := newFakeAccountRepo()
	mail := &fakeMailer{}
	svc := services.NewAccountService(repo, mail, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "davi@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	waitFor(t, func() bool {
		_, _, _, resets := mail.counts()
		return resets == 1
	})

	stored, _ := repo.FindByEmail(context.Background(), "davi@example.com")
	if stored.ResetToken == nil || stored.ResetTokenExpiry == nil {
		t.Fatal("token and expiry must be set together")
	}
	token := *stored.ResetToken

	if err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "novasenha",
	}); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// token fields cleared, old password dead, new one live
	stored, _ = repo.FindByEmail(context.Background(), "davi@example.com")
	if stored.ResetToken != nil || stored.ResetTokenExpiry != nil {
		t.Fatal("token fields must be cleared after reset")
	}
	if _, err := svc.Login(context.Background(), request_models.LoginRequest{Email: "davi@example.com", Password: "senha123"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := svc.Login(context.Background(), request_models.LoginRequest{Email: "davi@example.com", Password: "novasenha"}); err != nil {
		t.Fatalf("new password should work: %v", err)
	}

	// a consumed token is single-use
	if err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       token,
		NewPassword: "outrasenha",
	}); !errors.Is(err, utils.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken on reuse, got %v", err)
	}
}

func TestResetTokenExpiryWindow(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := services.NewAccountService(repo, &fakeMailer{}, testJWTSecret)

	if err := svc.CreateAccount(context.Background(), signUp()); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	// token accepted at T+59min
	if err := svc.ForgotPassword(context.Background(), "davi@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	stored, _ := repo.FindByEmail(context.Background(), "davi@example.com")
	repo.shiftTokenExpiry("davi@example.com", -59*time.Minute)
	if err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       *stored.ResetToken,
		NewPassword: "novasenha",
	}); err != nil {
		t.Fatalf("token should still be valid at T+59min: %v", err)
	}

	// token rejected at T+61min
	if err := svc.ForgotPassword(context.Background(), "davi@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	stored, _ = repo.FindByEmail(context.Background(), "davi@example.com")
	repo.shiftTokenExpiry("davi@example.com", -61*time.Minute)
	if err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:       *stored.ResetToken,
		NewPassword: "outrasenha",
	}); !errors.Is(err, utils.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken at T+61min, got %v", err)
	}
}
