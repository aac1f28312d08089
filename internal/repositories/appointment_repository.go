package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
)

type AppointmentRepository interface {
	FindBySlot(ctx context.Context, date, time string) (*db_models.Appointment, error)
	Insert(ctx context.Context, appointment *db_models.Appointment) error
	FindByEmail(ctx context.Context, email string) ([]db_models.Appointment, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*db_models.Appointment, error)
	UpdateStatusByPaymentID(ctx context.Context, paymentID string, status db_models.PaymentStatus) error
	OccupiedTimes(ctx context.Context, date string) ([]string, error)
	ListAll(ctx context.Context) ([]db_models.Appointment, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{
		db: db,
	}
}

func (r *appointmentRepository) FindBySlot(ctx context.Context, date, time string) (*db_models.Appointment, error) {
	var appointment db_models.Appointment
	err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", date, time).
		First(&appointment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &appointment, nil
}

// Insert relies on the unique (date, time) index; a duplicate slot surfaces
// as gorm.ErrDuplicatedKey.
func (r *appointmentRepository) Insert(ctx context.Context, appointment *db_models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByEmail(ctx context.Context, email string) ([]db_models.Appointment, error) {
	var appointments []db_models.Appointment
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("date, time").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*db_models.Appointment, error) {
	var appointment db_models.Appointment
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&appointment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatusByPaymentID(ctx context.Context, paymentID string, status db_models.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Appointment{}).
		Where("payment_id = ?", paymentID).
		Update("payment_status", status).Error
}

func (r *appointmentRepository) OccupiedTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Appointment{}).
		Where("date = ?", date).
		Order("time").
		Pluck("time", &times).Error
	return times, err
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]db_models.Appointment, error) {
	var appointments []db_models.Appointment
	err := r.db.WithContext(ctx).
		Order("date, time").
		Find(&appointments).Error
	return appointments, err
}

// DeleteByID reports whether a row was actually removed so the handler can
// distinguish an unknown id from a successful delete. The delete is Unscoped:
// a soft-deleted row would keep its slot in the unique (date, time) index and
// block rebooking a cancelled appointment.
func (r *appointmentRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Delete(&db_models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
