package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// HandleServiceError maps service-level errors to the HTTP surface.
// User-facing messages stay in Portuguese to match the front-end.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		RespondError(c, http.StatusBadRequest, "Preencha todos os campos obrigatórios")
	case errors.Is(err, ErrSlotTaken):
		RespondError(c, http.StatusBadRequest, "Este horário acabou de ser reservado!")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusInternalServerError, "Erro ao cadastrar: e-mail já existe.")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusBadRequest, "E-mail não encontrado")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusBadRequest, "Senha incorreta")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		RespondError(c, http.StatusBadRequest, "Token inválido ou expirado")
	case errors.Is(err, ErrAppointmentNotFound):
		RespondError(c, http.StatusNotFound, "Agendamento não encontrado")
	case errors.Is(err, ErrPaymentGateway):
		log.Printf("Payment gateway error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Erro ao processar pagamento")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Erro interno no servidor")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Erro interno no servidor")
	}
}
