package apiclient

import (
	"fmt"
	"net/http"
)

// APIError - единая ошибка для любого ответа бэкенда вне диапазона 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func newAPIError(status int, serverMessage string) *APIError {
	msg := serverMessage
	if msg == "" {
		msg = fmt.Sprintf("Request failed: %d", status)
	}
	return &APIError{Status: status, Message: msg}
}

// IsUnauthorized - бэкенд отказал из-за токена.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
