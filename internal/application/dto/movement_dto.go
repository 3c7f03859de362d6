package dto

// Los dos flujos de registro usan variantes separadas en lugar de un único
// struct con campos condicionalmente ignorados: el formulario completo pide
// tipo y datos del solicitante; la salida rápida solo producto y cantidad.

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID     string `json:"product_id"`
	Type          string `json:"type"` // IN u OUT
	Quantity      int64  `json:"quantity"`
	Note          string `json:"note,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
	RequesterCPF  string `json:"requester_cpf,omitempty"` // acepta 000.000.000-00 o solo dígitos
}

// QuickExitRequest body para POST /api/inventory/quick-exit (flujo móvil:
// siempre una salida, sin datos de solicitante).
type QuickExitRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name,omitempty"`
	Type          string `json:"type"`
	Quantity      int64  `json:"quantity"`
	Note          string `json:"note,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
	RequesterCPF  string `json:"requester_cpf,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// MovementListResponse página del historial de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ReconcileResponse resumen de la pasada de reconciliación.
type ReconcileResponse struct {
	ProductsChecked   int `json:"products_checked"`
	ProductsCorrected int `json:"products_corrected"`
}
