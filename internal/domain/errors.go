package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Validación y conflicto son resultados de negocio esperados: el handler los
// traduce a una respuesta tipada, nunca se tragan ni se reintentan.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCPF         = errors.New("CPF inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeBalance    = errors.New("la operación dejaría el saldo negativo")
)
