package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*db_models.Account, error)
	ConsumeResetToken(ctx context.Context, email, newPasswordHash string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
}

func (a *accountRepository) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

// ConsumeResetToken stores the new hash and clears both token fields in a
// single update.
func (a *accountRepository) ConsumeResetToken(ctx context.Context, email, newPasswordHash string) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_hash":      newPasswordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}
