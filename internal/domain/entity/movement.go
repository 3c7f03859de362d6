package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "IN"  // entrada: aumenta stock
	MovementTypeOut = "OUT" // salida: disminuye stock
)

// ValidMovementType indica si el tipo es uno de los dos soportados.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Movement es el registro inmutable de un cambio de inventario para un
// producto. El historial es un log append-only: una vez creado, ni el motor
// ni el reconciliador modifican o borran sus campos.
type Movement struct {
	ID            string
	ProductID     string
	Type          string // IN u OUT
	Quantity      int64  // siempre positivo; el tipo define el signo
	Note          string
	UserID        string // usuario autenticado que registró el movimiento; vacío = desconocido
	RequesterName string // solicitante (texto libre)
	RequesterCPF  string // CPF del solicitante en forma canónica de 11 dígitos; vacío = sin CPF
	CreatedAt     time.Time
}

// MovementWithProduct es la proyección de lectura para el historial y el
// export CSV (join con products).
type MovementWithProduct struct {
	Movement
	ProductName string
}
