package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
//
// Quantity es un saldo derivado: siempre vale la suma de entradas menos la
// suma de salidas de sus movimientos, nunca negativo. Solo el motor de
// movimientos y el reconciliador lo escriben; el editor de productos jamás.
type Product struct {
	ID         string
	Name       string
	SKU        string           // código único; vacío = sin SKU
	CategoryID string           // vacío = sin categoría
	Quantity   int64            // saldo actual en unidades enteras
	Price      *decimal.Decimal // precio de venta opcional
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
