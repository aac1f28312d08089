package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// GatewayConfig holds the Mercado Pago credentials and the back URLs the
// hosted checkout redirects to.
type GatewayConfig struct {
	AccessToken string
	SuccessURL  string
	FailureURL  string
	PendingURL  string
	Timeout     time.Duration
}

type PixCharge struct {
	ID           string
	QRCode       string
	QRCodeBase64 string
}

type CardCheckout struct {
	CheckoutURL string
}

type PaymentGateway interface {
	CreatePixCharge(ctx context.Context, amount float64, description, payerEmail, payerName string) (*PixCharge, error)
	CreateCardCheckout(ctx context.Context, amount float64, description, payerEmail, payerName string) (*CardCheckout, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (string, error)
}

type mercadoPagoGateway struct {
	payments    payment.Client
	preferences preference.Client
	cfg         GatewayConfig
}

func NewMercadoPagoGateway(cfg GatewayConfig) (PaymentGateway, error) {
	if cfg.AccessToken == "" {
		return nil, errors.New("missing Mercado Pago access token")
	}
	if cfg.Timeout <= 0 {
		// a hung gateway call must not stall a booking forever
		cfg.Timeout = 15 * time.Second
	}

	mpCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago client init: %w", err)
	}

	return &mercadoPagoGateway{
		payments:    payment.NewClient(mpCfg),
		preferences: preference.NewClient(mpCfg),
		cfg:         cfg,
	}, nil
}

func (g *mercadoPagoGateway) CreatePixCharge(ctx context.Context, amount float64, description, payerEmail, payerName string) (*PixCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	first, last := splitName(payerName)
	req := payment.Request{
		TransactionAmount: amount,
		Description:       description,
		PaymentMethodID:   "pix",
		Payer: &payment.PayerRequest{
			Email:     payerEmail,
			FirstName: first,
			LastName:  last,
		},
	}

	res, err := g.payments.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create pix charge: %w", err)
	}

	return &PixCharge{
		ID:           strconv.Itoa(res.ID),
		QRCode:       res.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: res.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

func (g *mercadoPagoGateway) CreateCardCheckout(ctx context.Context, amount float64, description, payerEmail, payerName string) (*CardCheckout, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     description,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  payerName,
			Email: payerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: g.cfg.SuccessURL,
			Failure: g.cfg.FailureURL,
			Pending: g.cfg.PendingURL,
		},
		AutoReturn: "approved",
	}

	res, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create card checkout: %w", err)
	}

	return &CardCheckout{CheckoutURL: res.InitPoint}, nil
}

func (g *mercadoPagoGateway) GetPaymentStatus(ctx context.Context, paymentID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return "", fmt.Errorf("invalid payment id %q", paymentID)
	}

	res, err := g.payments.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get payment %d: %w", id, err)
	}

	return res.Status, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
