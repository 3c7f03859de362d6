package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/cpf"
)

// ApplyMovementUseCase es el motor del libro de inventario: aplica un
// movimiento (entrada o salida) contra un producto de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento. UserID viene explícito
// desde el handler (claims del JWT), nunca de estado ambiente.
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      int64
	Note          string
	UserID        string
	RequesterName string
	RequesterCPF  string
}

// Apply valida la entrada y ejecuta la unidad atómica:
//
//  1. bloquea la fila del producto (frontera de serialización por producto),
//  2. para salidas, verifica suficiencia contra la cantidad persistida,
//  3. inserta el movimiento inmutable,
//  4. recalcula el saldo re-sumando TODO el historial (no un contador
//     incremental: el recálculo completo hace el saldo autocorrectivo ante
//     cualquier deriva previa),
//  5. rechaza la unidad entera si el saldo recalculado es negativo,
//  6. persiste la nueva cantidad del producto.
//
// Errores de negocio: domain.ErrInvalidInput, ErrInvalidCPF, ErrNotFound,
// ErrInsufficientStock, ErrNegativeBalance. Ningún reintento automático.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El CPF del solicitante es opcional; si viene, se valida el checksum y
	// se persiste la forma canónica de 11 dígitos, no la entrada cruda.
	requesterCPF := ""
	if input.RequesterCPF != "" {
		normalized, err := cpf.Normalize(input.RequesterCPF)
		if err != nil {
			return nil, domain.ErrInvalidCPF
		}
		requesterCPF = normalized
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		Note:          input.Note,
		UserID:        input.UserID,
		RequesterName: input.RequesterName,
		RequesterCPF:  requesterCPF,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos salidas concurrentes sobre el
		// mismo producto se serializan aquí y no pueden sobregirar el stock.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// La verificación usa la cantidad recién leída bajo el lock, no un
		// valor cacheado.
		if input.Type == entity.MovementTypeOut && input.Quantity > product.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		entries, exits, err := movRepo.SumByProduct(input.ProductID)
		if err != nil {
			return err
		}
		balance := entries - exits
		// Inalcanzable con la verificación de arriba, salvo historial
		// corrupto: aborta la transacción completa.
		if balance < 0 {
			return domain.ErrNegativeBalance
		}
		return productRepo.UpdateQuantity(input.ProductID, balance)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
