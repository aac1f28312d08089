package utils

import "errors"

var (
	ErrMissingFields         = errors.New("missing required fields")
	ErrSlotTaken             = errors.New("slot already booked")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrPaymentGateway        = errors.New("payment gateway error")
	ErrDatabaseError         = errors.New("database error")
)
