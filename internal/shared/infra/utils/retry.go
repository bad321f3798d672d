package utils

import (
	"context"
	"errors"
	"time"
)

// Retry ejecuta fn hasta attempts veces esperando delay entre intentos.
// Los errores marcados con Permanent no se reintentan.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		var p permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
			// espera antes del siguiente intento
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent envuelve un error para que Retry no lo reintente (ej. "not found").
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}
