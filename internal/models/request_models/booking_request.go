package request_models

// BookingRequest carries the booking form. Date and Time are opaque slot
// keys; Price must be a positive amount.
type BookingRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Date    string  `json:"date" binding:"required"`
	Time    string  `json:"time" binding:"required"`
	Service string  `json:"service" binding:"required"`
	Price   float64 `json:"price" binding:"required,gt=0"`
}
