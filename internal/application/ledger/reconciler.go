package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReconcileUseCase recalcula el saldo de todos los productos desde su
// historial completo y corrige la deriva. Es una pasada de reparación, no una
// regla de negocio: no valida ni rechaza nada, e idempotente por diseño
// (una segunda pasada inmediata reporta cero correcciones).
type ReconcileUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ReconcileSummary resultado de una pasada completa.
type ReconcileSummary struct {
	ProductsChecked   int
	ProductsCorrected int
}

// ReconcileAll recorre todos los productos. Cada producto se repara en su
// propia transacción con la MISMA frontera de serialización que Apply
// (GetForUpdate): nunca corre en paralelo con un movimiento del mismo
// producto, y no bloquea movimientos de productos ajenos.
func (uc *ReconcileUseCase) ReconcileAll(ctx context.Context) (ReconcileSummary, error) {
	var summary ReconcileSummary

	ids, err := uc.productRepo.ListIDs()
	if err != nil {
		return summary, err
	}

	for _, id := range ids {
		corrected, err := uc.reconcileOne(ctx, id)
		if err != nil {
			return summary, err
		}
		summary.ProductsChecked++
		if corrected {
			summary.ProductsCorrected++
		}
	}
	return summary, nil
}

func (uc *ReconcileUseCase) reconcileOne(ctx context.Context, productID string) (bool, error) {
	corrected := false
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			// Borrado entre el listado y el lock: nada que reparar.
			return nil
		}
		entries, exits, err := movRepo.SumByProduct(productID)
		if err != nil {
			return err
		}
		balance := entries - exits
		// Piso defensivo: aunque el historial esté inconsistente, jamás se
		// persiste una cantidad negativa.
		if balance < 0 {
			balance = 0
		}
		if balance == product.Quantity {
			return nil
		}
		corrected = true
		return productRepo.UpdateQuantity(productID, balance)
	})
	return corrected, err
}
