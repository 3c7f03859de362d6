package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// GetForUpdate y UpdateQuantity solo tienen sentido dentro de una transacción
// (ver ledger.TxRunner): GetForUpdate bloquea la fila del producto y es la
// frontera de serialización por producto del motor de inventario.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int64) error
	List(limit, offset int) ([]*entity.Product, error)
	ListIDs() ([]string, error)
	Delete(id string) error
}
