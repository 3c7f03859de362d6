package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// Quantity no se acepta: el saldo solo lo mueven los movimientos.
type CreateProductRequest struct {
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse respuesta de producto con su saldo actual.
type ProductResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Quantity   int64            `json:"quantity"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}
