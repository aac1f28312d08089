package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"rodbarber/internal/api/controllers"
	"rodbarber/internal/models/db_models"
	"rodbarber/internal/models/request_models"
	"rodbarber/internal/models/response_models"
	"rodbarber/pkg/utils"
)

type stubBookingService struct {
	createErr error
	statusErr error
	status    string
	deleteErr error
	times     []string
}

func (s *stubBookingService) CreateBooking(_ context.Context, _ request_models.BookingRequest) (*response_models.BookingCreatedResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &response_models.BookingCreatedResponse{
		Message:         "Agendamento realizado com sucesso!",
		PixCode:         "pix-code",
		QrImageBase64:   "aW1hZ2U=",
		PaymentID:       "12345",
		CardCheckoutURL: "https://pago.example/checkout",
	}, nil
}

func (s *stubBookingService) OccupiedTimes(_ context.Context, _ string) ([]string, error) {
	return s.times, nil
}

func (s *stubBookingService) CheckPaymentStatus(_ context.Context, _ string) (string, error) {
	if s.statusErr != nil {
		return "", s.statusErr
	}
	return s.status, nil
}

func (s *stubBookingService) ListAll(_ context.Context) ([]db_models.Appointment, error) {
	return []db_models.Appointment{}, nil
}

func (s *stubBookingService) ListByEmail(_ context.Context, _ string) ([]db_models.Appointment, error) {
	return []db_models.Appointment{}, nil
}

func (s *stubBookingService) DeleteAppointment(_ context.Context, _ string) error {
	return s.deleteErr
}

func newRouter(svc *stubBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := controllers.NewBookingController(svc)
	r := gin.New()
	r.POST("/agendar", ctrl.CreateBooking)
	r.GET("/agendamentos/ocupados", ctrl.OccupiedTimes)
	r.GET("/status-pagamento/:id", ctrl.PaymentStatus)
	r.GET("/meus-agendamentos", ctrl.MyAppointments)
	r.DELETE("/agendamentos/:id", ctrl.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingResponseShape(t *testing.T) {
	r := newRouter(&stubBookingService{})

	w := doJSON(r, http.MethodPost, "/agendar",
		`{"name":"João","email":"joao@example.com","date":"2024-05-01","time":"10:00","service":"Corte","price":55}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"message", "pixCode", "qrImageBase64", "paymentId", "cardCheckoutUrl"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing %q in response: %v", key, resp)
		}
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	r := newRouter(&stubBookingService{})

	w := doJSON(r, http.MethodPost, "/agendar", `{"name":"João"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("expected error payload, got %s", w.Body.String())
	}
}

func TestCreateBookingSlotTakenStatus(t *testing.T) {
	r := newRouter(&stubBookingService{createErr: utils.ErrSlotTaken})

	w := doJSON(r, http.MethodPost, "/agendar",
		`{"name":"João","email":"joao@example.com","date":"2024-05-01","time":"10:00","service":"Corte","price":55}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken slot, got %d", w.Code)
	}
}

func TestOccupiedTimesRequiresDate(t *testing.T) {
	r := newRouter(&stubBookingService{times: []string{"10:00"}})

	w := doJSON(r, http.MethodGet, "/agendamentos/ocupados", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without date, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/agendamentos/ocupados?date=2024-05-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var times []string
	if err := json.Unmarshal(w.Body.Bytes(), &times); err != nil {
		t.Fatalf("expected a bare array, got %s", w.Body.String())
	}
}

func TestPaymentStatusGatewayError(t *testing.T) {
	r := newRouter(&stubBookingService{statusErr: utils.ErrPaymentGateway})

	w := doJSON(r, http.MethodGet, "/status-pagamento/12345", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"error"`) {
		t.Fatalf("expected {\"status\":\"error\"}, got %s", w.Body.String())
	}
}

func TestPaymentStatusOK(t *testing.T) {
	r := newRouter(&stubBookingService{status: "approved"})

	w := doJSON(r, http.MethodGet, "/status-pagamento/12345", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"approved"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMyAppointmentsRequiresEmail(t *testing.T) {
	r := newRouter(&stubBookingService{})

	w := doJSON(r, http.MethodGet, "/meus-agendamentos", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", w.Code)
	}
}

func TestDeleteUnknownAppointment(t *testing.T) {
	r := newRouter(&stubBookingService{deleteErr: utils.ErrAppointmentNotFound})

	w := doJSON(r, http.MethodDelete, "/agendamentos/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
}
