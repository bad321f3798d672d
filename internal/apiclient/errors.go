package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized se devuelve ante 401/403: la sesión ya no vale.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport envuelve fallos de red y respuestas que no se pueden decodificar.
	ErrTransport = errors.New("transport error")
)

// Kind clasifica los códigos de error del backend.
type Kind int

const (
	KindOther Kind = iota
	KindClient
	KindServer
)

const genericMessage = "Unexpected error, please try again"

// StatusError es una respuesta de error del backend que no es de autenticación.
type StatusError struct {
	Status  int
	Message string
	Kind    Kind
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Title(), e.Status, e.Message)
}

// Title es el título del diálogo que debería mostrar la capa de presentación.
func (e *StatusError) Title() string {
	switch e.Kind {
	case KindClient:
		return "Request error"
	case KindServer:
		return "Server error"
	default:
		return "Unexpected error"
	}
}

func classify(status int) Kind {
	switch {
	case status == http.StatusBadRequest, status >= 405 && status <= 408:
		return KindClient
	case status >= 500 && status <= 505:
		return KindServer
	default:
		return KindOther
	}
}

func statusError(status int, message string) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return ErrUnauthorized
	}
	if message == "" {
		message = genericMessage
	}
	return &StatusError{Status: status, Message: message, Kind: classify(status)}
}

func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransport, op, err)
}
