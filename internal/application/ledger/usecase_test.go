package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func newTestEngine() (*ledger.ApplyMovementUseCase, *memStore) {
	store := newMemStore()
	runner := &memTxRunner{store: store}
	return ledger.NewApplyMovementUseCase(runner), store
}

func seedProduct(store *memStore, id string, quantity int64) {
	store.putProduct(entity.Product{ID: id, Name: "Guaraná", Quantity: quantity})
	if quantity > 0 {
		// Historial coherente con la cantidad inicial.
		store.appendMovement(entity.Movement{ID: "seed-" + id, ProductID: id, Type: entity.MovementTypeIn, Quantity: quantity})
	}
}

func TestApply_EntradaAumentaSaldo(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 0)

	mov, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIn,
		Quantity:  10,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, int64(10), store.productQuantity("p1"))
}

// TestApply_FlujoCompleto reproduce la secuencia extremo a extremo:
// 0 → entrada 10 → 10 → salida 3 → 7 → salida 20 → rechazada, sigue en 7.
func TestApply_FlujoCompleto(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 0)
	ctx := context.Background()

	_, err := uc.Apply(ctx, ledger.MovementInput{ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), store.productQuantity("p1"))

	_, err = uc.Apply(ctx, ledger.MovementInput{ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.productQuantity("p1"))

	_, err = uc.Apply(ctx, ledger.MovementInput{ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 20})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(7), store.productQuantity("p1"), "una salida rechazada no debe tocar el saldo")
}

func TestApply_SalidaInsuficienteNoDejaRastro(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 5)
	before := store.movementCount()

	_, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  6,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), store.productQuantity("p1"))
	assert.Equal(t, before, store.movementCount(), "el rechazo no debe persistir ningún movimiento")
}

func TestApply_CantidadInvalida(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 5)

	for _, qty := range []int64{0, -3} {
		_, err := uc.Apply(context.Background(), ledger.MovementInput{
			ProductID: "p1",
			Type:      entity.MovementTypeIn,
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestApply_TipoInvalido(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 5)

	_, err := uc.Apply(context.Background(), ledger.MovementInput{ProductID: "p1", Type: "TRANSFER", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ProductoInexistente(t *testing.T) {
	uc, _ := newTestEngine()

	_, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID: "no-existe",
		Type:      entity.MovementTypeIn,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_CPFInvalidoRechaza(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 5)
	before := store.movementCount()

	_, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID:    "p1",
		Type:         entity.MovementTypeOut,
		Quantity:     1,
		RequesterCPF: "111.111.111-11",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCPF)
	assert.Equal(t, before, store.movementCount())
	assert.Equal(t, int64(5), store.productQuantity("p1"))
}

// TestApply_CPFSePersisteNormalizado: se guarda la forma canónica de 11
// dígitos, no la entrada con puntos y guion.
func TestApply_CPFSePersisteNormalizado(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 5)

	mov, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID:     "p1",
		Type:          entity.MovementTypeOut,
		Quantity:      2,
		RequesterName: "María Souza",
		RequesterCPF:  "529.982.247-25",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", mov.RequesterCPF)
}

// TestApply_SaldoAutocorrectivo: la cantidad persistida tiene deriva (quedó
// en 3 aunque el historial suma 8). Aplicar cualquier movimiento re-suma el
// historial completo y converge al valor correcto.
func TestApply_SaldoAutocorrectivo(t *testing.T) {
	uc, store := newTestEngine()
	store.putProduct(entity.Product{ID: "p1", Name: "Doritos", Quantity: 3})
	store.appendMovement(entity.Movement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 8})

	_, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIn,
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), store.productQuantity("p1"), "8 del historial + 2 nuevas, no 3 + 2")
}

// TestApply_HistorialCorruptoAborta: el guard de saldo negativo es
// inalcanzable en operación normal, pero con historial corrupto (salidas >
// entradas) debe abortar la unidad completa y hacer rollback.
func TestApply_HistorialCorruptoAborta(t *testing.T) {
	uc, store := newTestEngine()
	store.putProduct(entity.Product{ID: "p1", Name: "Cheetos", Quantity: 10})
	store.appendMovement(entity.Movement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 5})
	before := store.movementCount()

	_, err := uc.Apply(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  2,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	assert.Equal(t, before, store.movementCount(), "rollback: el movimiento no debe quedar persistido")
	assert.Equal(t, int64(10), store.productQuantity("p1"))
}

// TestApply_SalidasConcurrentes: con stock 10, dos salidas simultáneas de 6
// deben terminar en exactamente un éxito y un ErrInsufficientStock, nunca en
// un sobregiro conjunto.
func TestApply_SalidasConcurrentes(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 10)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Apply(context.Background(), ledger.MovementInput{
				ProductID: "p1",
				Type:      entity.MovementTypeOut,
				Quantity:  6,
			})
		}(i)
	}
	wg.Wait()

	okCount, insufficientCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe aplicarse")
	assert.Equal(t, 1, insufficientCount)
	assert.Equal(t, int64(4), store.productQuantity("p1"))
}

func TestApplyFromRequest_MapeaCampos(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 0)

	mov, err := uc.ApplyFromRequest(context.Background(), "user-7", dto.RegisterMovementRequest{
		ProductID:     "p1",
		Type:          entity.MovementTypeIn,
		Quantity:      4,
		Note:          "reposición semanal",
		RequesterName: "João",
		RequesterCPF:  "52998224725",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-7", mov.UserID)
	assert.Equal(t, "reposición semanal", mov.Note)
	assert.Equal(t, "João", mov.RequesterName)
	assert.Equal(t, "52998224725", mov.RequesterCPF)
}

// TestQuickExitFromRequest: la variante rápida siempre es una salida con el
// solicitante fijo del flujo móvil y sin CPF.
func TestQuickExitFromRequest(t *testing.T) {
	uc, store := newTestEngine()
	seedProduct(store, "p1", 9)

	mov, err := uc.QuickExitFromRequest(context.Background(), "user-1", dto.QuickExitRequest{
		ProductID: "p1",
		Quantity:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	assert.Equal(t, "Salida rápida (móvil)", mov.RequesterName)
	assert.Empty(t, mov.RequesterCPF)
	assert.Equal(t, int64(5), store.productQuantity("p1"))
}
