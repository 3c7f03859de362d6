package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/cpf"
)

// InventoryHandler maneja movimientos, historial, export y reconciliación
// (protegido).
type InventoryHandler struct {
	apply     *ledger.ApplyMovementUseCase
	reconcile *ledger.ReconcileUseCase
	movRepo   repository.MovementRepository
	exporter  *report.CSVExporter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	apply *ledger.ApplyMovementUseCase,
	reconcile *ledger.ReconcileUseCase,
	movRepo repository.MovementRepository,
	exporter *report.CSVExporter,
) *InventoryHandler {
	return &InventoryHandler{apply: apply, reconcile: reconcile, movRepo: movRepo, exporter: exporter}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario (entrada o salida)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (IN/OUT), quantity; note, requester_name y requester_cpf opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.apply.ApplyFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov, ""))
}

// QuickExit godoc
// @Summary      Salida rápida (flujo móvil: siempre OUT, sin solicitante)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuickExitRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/quick-exit [post]
func (h *InventoryHandler) QuickExit(c *fiber.Ctx) error {
	var in dto.QuickExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.apply.QuickExitFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov, ""))
}

// ListMovements godoc
// @Summary      Historial de movimientos (del más reciente al más antiguo)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product      query  string  false  "subcadena del nombre del producto"
// @Param        type         query  string  false  "IN u OUT"
// @Param        category_id  query  string  false  "categoría del producto"
// @Param        from         query  string  false  "fecha inicial inclusiva (YYYY-MM-DD)"
// @Param        to           query  string  false  "fecha final inclusiva (YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter, err := parseMovementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()

	movements, err := h.movRepo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	total, err := h.movRepo.Count(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, toMovementResponse(&m.Movement, m.ProductName))
	}
	return c.JSON(out)
}

// ExportMovements godoc
// @Summary      Exportar historial filtrado como CSV
// @Tags         inventory
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/export [get]
func (h *InventoryHandler) ExportMovements(c *fiber.Ctx) error {
	filter, err := parseMovementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_almacen.csv"`)
	if err := h.exporter.Export(c.Response().BodyWriter(), filter); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return nil
}

// Reconcile godoc
// @Summary      Recalcular los saldos de todos los productos desde su historial
// @Description  Pasada de reparación idempotente: corrige solo los productos cuyo saldo persistido difiere de la suma de su historial.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	summary, err := h.reconcile.ReconcileAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReconcileResponse{
		ProductsChecked:   summary.ProductsChecked,
		ProductsCorrected: summary.ProductsCorrected,
	})
}

// ValidateCPF godoc
// @Summary      Validar un CPF y devolver su forma canónica
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        value  query  string  true  "CPF con o sin formato"
// @Success      200  {object}  map[string]string
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cpf/validate [get]
func (h *InventoryHandler) ValidateCPF(c *fiber.Ctx) error {
	normalized, err := cpf.Normalize(c.Query("value"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_CPF", Message: "CPF inválido, verifique los dígitos"})
	}
	return c.JSON(fiber.Map{"cpf": normalized})
}

// parseMovementFilter arma el filtro conjuntivo del historial desde la query.
func parseMovementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		ProductName: c.Query("product"),
		Type:        c.Query("type"),
		CategoryID:  c.Query("category_id"),
	}
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return filter, fmt.Errorf("type debe ser IN u OUT")
	}
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("from debe tener formato YYYY-MM-DD")
		}
		filter.From = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("to debe tener formato YYYY-MM-DD")
		}
		filter.To = &d
	}
	return filter, nil
}

func movementError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: revise tipo y cantidad"})
	case domain.ErrInvalidCPF:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CPF", Message: "CPF inválido, verifique los dígitos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrNegativeBalance:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_BALANCE", Message: "la operación dejaría el saldo negativo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toMovementResponse(m *entity.Movement, productName string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   productName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Note:          m.Note,
		RequesterName: m.RequesterName,
		RequesterCPF:  m.RequesterCPF,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
