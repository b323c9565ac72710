package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError reporta los campos faltantes o inválidos de una petición.
// Satisface errors.Is(err, ErrInvalidInput) para el mapeo HTTP.
type ValidationError struct {
	Fields []string
}

// NewValidationError construye el error con la lista de campos.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return "entrada inválida: campos requeridos o inválidos: " + strings.Join(e.Fields, ", ")
}

// Is permite tratar un ValidationError como ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
