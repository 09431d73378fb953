package server

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/repository"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	apiErr := APIError{Message: msg, Code: code}
	var ve *analysis.ValidationError
	if errors.As(err, &ve) {
		apiErr.Field = ve.Field
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

// respondServiceError maps service and repository sentinels to statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrPersistenceDisabled):
		respondError(c, http.StatusServiceUnavailable, "persistence_disabled", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
