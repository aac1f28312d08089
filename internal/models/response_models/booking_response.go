package response_models

// BookingCreatedResponse is the 201 payload for a confirmed booking,
// including the payment artifacts the front-end renders.
type BookingCreatedResponse struct {
	Message         string `json:"message"`
	PixCode         string `json:"pixCode"`
	QrImageBase64   string `json:"qrImageBase64"`
	PaymentID       string `json:"paymentId"`
	CardCheckoutURL string `json:"cardCheckoutUrl"`
}

type PaymentStatusResponse struct {
	Status string `json:"status"`
}
