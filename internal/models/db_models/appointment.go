package db_models

import "gorm.io/datatypes"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentError    PaymentStatus = "error"
)

// Appointment occupies a (date, time) slot. Date and Time are opaque slot
// keys as sent by the front-end; no format or timezone is assumed.
type Appointment struct {
	BaseModel
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `gorm:"index" json:"customerEmail"`
	Date          string  `gorm:"uniqueIndex:idx_appointments_slot" json:"date"`
	Time          string  `gorm:"uniqueIndex:idx_appointments_slot" json:"time"`
	Service       string  `json:"service"`
	Price         float64 `json:"price"`

	PaymentID       *string       `gorm:"index" json:"paymentId,omitempty"`
	PaymentStatus   PaymentStatus `gorm:"index" json:"paymentStatus"`
	PixCode         string        `json:"pixCode,omitempty"`
	PixQrImage      string        `json:"pixQrImage,omitempty"`
	CardCheckoutURL string        `json:"cardCheckoutUrl,omitempty"`

	// Raw gateway artifacts for traceability.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
}
