package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. Se combinan con AND;
// el campo en cero desactiva el filtro. From y To son fechas inclusivas
// sobre la fecha de creación del movimiento.
type MovementFilter struct {
	ProductName string // subcadena del nombre del producto, case-insensitive
	Type        string // IN u OUT
	CategoryID  string
	From        *time.Time
	To          *time.Time
}

// MovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// SumByProduct agrega todo el historial del producto: total de entradas y
	// total de salidas. Es la fuente de verdad del saldo.
	SumByProduct(productID string) (entries, exits int64, err error)
	// List devuelve el historial filtrado, del más reciente al más antiguo.
	List(filter MovementFilter, limit, offset int) ([]*entity.MovementWithProduct, error)
	Count(filter MovementFilter) (int, error)
}
