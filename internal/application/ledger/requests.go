package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Nombre fijo del solicitante para salidas rápidas desde el flujo móvil.
const quickExitRequester = "Salida rápida (móvil)"

// ApplyFromRequest adapta el request HTTP completo al caso de uso
// Apply(ctx, MovementInput). userID viene de los claims del token.
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	input := MovementInput{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Note:          in.Note,
		UserID:        userID,
		RequesterName: in.RequesterName,
		RequesterCPF:  in.RequesterCPF,
	}
	return uc.Apply(ctx, input)
}

// QuickExitFromRequest adapta la variante de salida rápida: siempre OUT, sin
// CPF y con el nombre de solicitante fijo del flujo móvil.
func (uc *ApplyMovementUseCase) QuickExitFromRequest(ctx context.Context, userID string, in dto.QuickExitRequest) (*entity.Movement, error) {
	input := MovementInput{
		ProductID:     in.ProductID,
		Type:          entity.MovementTypeOut,
		Quantity:      in.Quantity,
		UserID:        userID,
		RequesterName: quickExitRequester,
	}
	return uc.Apply(ctx, input)
}
